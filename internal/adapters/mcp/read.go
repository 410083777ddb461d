package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"smartctx/internal/application"
	"smartctx/internal/application/commands"
	"smartctx/internal/application/compiler"
	"smartctx/internal/ports"
)

// Deps are the collaborators the MCP tools operate on. Contexts live in
// the registry for the lifetime of the server process.
type Deps struct {
	Engine   *compiler.Engine
	Registry *application.ContextRegistry
	Source   ports.ItemSource
	Content  ports.ContentProvider
	Index    ports.LinkIndex
	Store    *compiler.DepthCacheStore
	MaxDepth int
	Ignore   []string
}

// RegisterReadTools adds all read-only tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, deps *Deps) {
	s.AddTool(compileTool(), compileHandler(deps))
	s.AddTool(depthScanTool(), depthScanHandler(deps))
	s.AddTool(listItemsTool(), listItemsHandler(deps))
	s.AddTool(linksTool(), linksHandler(deps))
}

// --- compile ---

func compileTool() mcp.Tool {
	return mcp.NewTool("compile",
		mcp.WithDescription("Compile a context into one prompt-ready text blob. Expands the link graph to the requested depth, filters excluded headings, inlines embeds, and applies the configured templates."),
		mcp.WithString("context",
			mcp.Description("Context name"),
			mcp.Required(),
		),
		mcp.WithNumber("depth",
			mcp.Description("Link depth to expand to (defaults to the configured link depth)"),
		),
		mcp.WithBoolean("inlinks",
			mcp.Description("Also follow inbound links"),
		),
	)
}

func compileHandler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("context", "")
		if name == "" {
			return toolError(fmt.Errorf("context is required"))
		}

		sc := deps.Registry.Get(name)
		opts := compiler.Options{
			LinkDepth:      req.GetInt("depth", sc.Settings.LinkDepth),
			IncludeInlinks: req.GetBool("inlinks", sc.Settings.IncludeInlinks),
		}

		result, err := commands.NewCompileCommand(deps.Engine, sc, opts).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString(result.Context)
		fmt.Fprintf(&sb, "\n\n[%d items, %d links, %d chars]",
			result.Stats.ItemCount, result.Stats.LinkCount, result.Stats.CharCount)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- depth_scan ---

func depthScanTool() mcp.Tool {
	return mcp.NewTool("depth_scan",
		mcp.WithDescription("Report per-depth item/link/token statistics for a context, so a depth can be chosen before compiling."),
		mcp.WithString("context",
			mcp.Description("Context name"),
			mcp.Required(),
		),
	)
}

func depthScanHandler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("context", "")
		if name == "" {
			return toolError(fmt.Errorf("context is required"))
		}

		sc := deps.Registry.Get(name)
		cache, err := commands.NewDepthScanCommand(deps.Engine, deps.Store, sc, deps.MaxDepth).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		for _, info := range cache.Depths {
			sb.WriteString(info.Label)
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_items ---

func listItemsTool() mcp.Tool {
	return mcp.NewTool("list_items",
		mcp.WithDescription("List a context's items with their depth and provenance flags."),
		mcp.WithString("context",
			mcp.Description("Context name"),
			mcp.Required(),
		),
	)
}

func listItemsHandler(deps *Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("context", "")
		if name == "" {
			return toolError(fmt.Errorf("context is required"))
		}

		sc := deps.Registry.Get(name)
		keys := sc.Keys()
		if len(keys) == 0 {
			return mcp.NewToolResultText("Context is empty."), nil
		}

		var sb strings.Builder
		for _, key := range keys {
			item := sc.Items[key]
			var flags []string
			if item.IsLink {
				flags = append(flags, "link")
			}
			if item.IsInlink {
				flags = append(flags, "inlink")
			}
			if item.Excluded {
				flags = append(flags, "excluded")
			}
			fmt.Fprintf(&sb, "%s  depth=%d  %s\n", item.Key, item.Depth, strings.Join(flags, ","))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- links ---

func linksTool() mcp.Tool {
	return mcp.NewTool("links",
		mcp.WithDescription("List the indexed links from or to a note."),
		mcp.WithString("key",
			mcp.Description("Vault-relative note key (e.g. projects/plan.md)"),
			mcp.Required(),
		),
		mcp.WithString("direction",
			mcp.Description("\"out\" (default) or \"in\""),
		),
	)
}

func linksHandler(deps *Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key := req.GetString("key", "")
		if key == "" {
			return toolError(fmt.Errorf("key is required"))
		}

		var err error
		var edges []edgeView
		if req.GetString("direction", "out") == "in" {
			raw, e := deps.Index.LinksTo(key)
			err = e
			for _, edge := range raw {
				edges = append(edges, edgeView{other: edge.SourcePath, embed: edge.IsEmbed})
			}
		} else {
			raw, e := deps.Index.LinksFrom(key)
			err = e
			for _, edge := range raw {
				edges = append(edges, edgeView{other: edge.Target, embed: edge.IsEmbed})
			}
		}
		if err != nil {
			return toolError(err)
		}
		if len(edges) == 0 {
			return mcp.NewToolResultText("No links."), nil
		}

		var sb strings.Builder
		for _, e := range edges {
			if e.embed {
				fmt.Fprintf(&sb, "%s (embed)\n", e.other)
			} else {
				fmt.Fprintln(&sb, e.other)
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

type edgeView struct {
	other string
	embed bool
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
