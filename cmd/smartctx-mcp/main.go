package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"smartctx/internal/adapters/filesystem"
	mcpadapter "smartctx/internal/adapters/mcp"
	"smartctx/internal/adapters/sqlite"
	"smartctx/internal/application"
	"smartctx/internal/application/compiler"
	"smartctx/internal/config"
)

func main() {
	vaultFlag := flag.String("vault", config.VaultPath(), "path to the vault")
	flag.Parse()

	vault := filesystem.NewVault(*vaultFlag)
	index := sqlite.NewIndex(vault)
	if err := index.Open(*vaultFlag); err != nil {
		log.Fatalf("smartctx-mcp: %v", err)
	}
	defer index.Close()

	if index.NeedsFullRebuild() {
		if _, err := index.SyncFull(); err != nil {
			log.Fatalf("smartctx-mcp: %v", err)
		}
	} else if _, err := index.SyncIncremental(); err != nil {
		log.Fatalf("smartctx-mcp: %v", err)
	}

	cfg, err := config.LoadConfig(vault.Root())
	if err != nil {
		log.Fatalf("smartctx-mcp: %v", err)
	}

	deps := &mcpadapter.Deps{
		Engine:   compiler.New(vault, vault, index),
		Registry: application.NewContextRegistry(cfg.Settings),
		Source:   vault,
		Content:  vault,
		Index:    index,
		Store:    compiler.NewDepthCacheStore(),
		MaxDepth: cfg.MaxDepth,
		Ignore:   cfg.Ignore,
	}

	mcpServer := server.NewMCPServer(
		"smartctx-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, deps)
	mcpadapter.RegisterWriteTools(mcpServer, deps)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("smartctx-mcp: %v", err)
	}
}
