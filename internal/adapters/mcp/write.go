package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"smartctx/internal/application/commands"
)

// RegisterWriteTools adds the mutating tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, deps *Deps) {
	s.AddTool(addItemsTool(), addItemsHandler(deps))
	s.AddTool(importBlocksTool(), importBlocksHandler(deps))
	s.AddTool(removeItemTool(), removeItemHandler(deps))
	s.AddTool(excludeItemTool(), excludeItemHandler(deps))
	s.AddTool(syncTool(), syncHandler(deps))
}

// --- add_items ---

func addItemsTool() mcp.Tool {
	return mcp.NewTool("add_items",
		mcp.WithDescription("Add file or folder references to a context. Folders expand recursively to their text files."),
		mcp.WithString("context",
			mcp.Description("Context name"),
			mcp.Required(),
		),
		mcp.WithString("refs",
			mcp.Description("Newline-separated file/folder references"),
			mcp.Required(),
		),
	)
}

func addItemsHandler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("context", "")
		refsArg := req.GetString("refs", "")
		if name == "" || refsArg == "" {
			return toolError(fmt.Errorf("context and refs are required"))
		}

		var refs []string
		for _, line := range strings.Split(refsArg, "\n") {
			if t := strings.TrimSpace(line); t != "" {
				refs = append(refs, t)
			}
		}

		sc := deps.Registry.Get(name)
		added, err := commands.NewAddItemsCommand(deps.Source, sc, refs, deps.Ignore).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		deps.Store.Invalidate(sc.Key)

		return mcp.NewToolResultText(fmt.Sprintf("Added %d items.", len(added))), nil
	}
}

// --- import_blocks ---

func importBlocksTool() mcp.Tool {
	return mcp.NewTool("import_blocks",
		mcp.WithDescription("Read a note's smart-context fenced blocks and add the referenced items to a context."),
		mcp.WithString("context",
			mcp.Description("Context name"),
			mcp.Required(),
		),
		mcp.WithString("note",
			mcp.Description("Vault-relative key of the note carrying the blocks"),
			mcp.Required(),
		),
	)
}

func importBlocksHandler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("context", "")
		note := req.GetString("note", "")
		if name == "" || note == "" {
			return toolError(fmt.Errorf("context and note are required"))
		}

		sc := deps.Registry.Get(name)
		cmd := commands.NewImportBlocksCommand(deps.Content, deps.Source, sc, note, deps.Ignore)
		added, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		deps.Store.Invalidate(sc.Key)

		return mcp.NewToolResultText(fmt.Sprintf("Added %d items from %s.", len(added), note)), nil
	}
}

// --- remove_item ---

func removeItemTool() mcp.Tool {
	return mcp.NewTool("remove_item",
		mcp.WithDescription("Remove a key (and its descendant keys) from a context. Removing a missing key is a no-op."),
		mcp.WithString("context",
			mcp.Description("Context name"),
			mcp.Required(),
		),
		mcp.WithString("key",
			mcp.Description("Item key to remove"),
			mcp.Required(),
		),
	)
}

func removeItemHandler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("context", "")
		key := req.GetString("key", "")
		if name == "" || key == "" {
			return toolError(fmt.Errorf("context and key are required"))
		}

		sc := deps.Registry.Get(name)
		if err := commands.NewRemoveItemCommand(sc, key).Execute(ctx); err != nil {
			return toolError(err)
		}
		deps.Store.Invalidate(sc.Key)

		return mcp.NewToolResultText(fmt.Sprintf("Removed %s.", key)), nil
	}
}

// --- exclude_item ---

func excludeItemTool() mcp.Tool {
	return mcp.NewTool("exclude_item",
		mcp.WithDescription("Flag or unflag an item as excluded. Excluded items stay in the context but are never compiled or re-added by traversal."),
		mcp.WithString("context",
			mcp.Description("Context name"),
			mcp.Required(),
		),
		mcp.WithString("key",
			mcp.Description("Item key"),
			mcp.Required(),
		),
		mcp.WithBoolean("excluded",
			mcp.Description("Exclusion state (default true)"),
		),
	)
}

func excludeItemHandler(deps *Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("context", "")
		key := req.GetString("key", "")
		if name == "" || key == "" {
			return toolError(fmt.Errorf("context and key are required"))
		}

		sc := deps.Registry.Get(name)
		sc.SetExcluded(key, req.GetBool("excluded", true))
		deps.Store.Invalidate(sc.Key)

		return mcp.NewToolResultText("OK."), nil
	}
}

// --- sync ---

func syncTool() mcp.Tool {
	return mcp.NewTool("sync",
		mcp.WithDescription("Refresh the link-graph index from the vault."),
		mcp.WithBoolean("full",
			mcp.Description("Force a full rebuild instead of an incremental sync"),
		),
	)
}

func syncHandler(deps *Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		full := req.GetBool("full", false) || deps.Index.NeedsFullRebuild()

		sync := deps.Index.SyncIncremental
		if full {
			sync = deps.Index.SyncFull
		}
		stats, err := sync()
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf(
			"Scanned %d files: +%d/~%d/-%d nodes, +%d edges in %s.",
			stats.FilesScanned, stats.NodesAdded, stats.NodesUpdated,
			stats.NodesDeleted, stats.EdgesAdded, stats.Duration.Round(time.Millisecond))), nil
	}
}
