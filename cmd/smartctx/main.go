package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"smartctx/internal/adapters/filesystem"
	"smartctx/internal/adapters/sqlite"
	"smartctx/internal/adapters/tui"
	"smartctx/internal/application/compiler"
	"smartctx/internal/config"
	"smartctx/internal/domain"
)

func main() {
	vaultPath := config.VaultPath()

	// Initialize adapters
	vault := filesystem.NewVault(vaultPath)
	index := sqlite.NewIndex(vault)
	if err := index.Open(vaultPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer index.Close()

	if index.NeedsFullRebuild() {
		index.SyncFull()
	} else {
		index.SyncIncremental()
	}

	cfg, err := config.LoadConfig(vault.Root())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	engine := compiler.New(vault, vault, index)
	store := compiler.NewDepthCacheStore()
	sc := domain.NewSmartContext("scratch", cfg.Settings)

	// Create and run TUI app
	app := tui.NewApp(engine, vault, store, sc, cfg.MaxDepth, cfg.Ignore)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
