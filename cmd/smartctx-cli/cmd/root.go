package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"smartctx/internal/adapters/filesystem"
	"smartctx/internal/adapters/sqlite"
	"smartctx/internal/application/compiler"
	"smartctx/internal/config"
)

var (
	vaultPath string
	vault     *filesystem.Vault
	index     *sqlite.Index
	engine    *compiler.Engine
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "smartctx-cli",
	Short: "Compile linked notes into LLM-ready context",
	Long: `smartctx-cli assembles a curated set of notes and their linked
neighbors into a single formatted text blob suitable for pasting into a
language model prompt.

It walks the vault's wiki-link graph to a bounded depth, strips excluded
heading sections, inlines embedded notes, and wraps everything in the
configured templates.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		vault = filesystem.NewVault(vaultPath)
		index = sqlite.NewIndex(vault)
		if err := index.Open(vaultPath); err != nil {
			return err
		}

		var err error
		cfg, err = config.LoadConfig(vault.Root())
		if err != nil {
			return err
		}

		engine = compiler.New(vault, vault, index)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if index != nil {
			index.Close()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&vaultPath, "vault", "v", config.VaultPath(), "path to the vault")
}

// ensureSynced refreshes the link index before graph-dependent commands.
func ensureSynced() error {
	if index.NeedsFullRebuild() {
		_, err := index.SyncFull()
		return err
	}
	_, err := index.SyncIncremental()
	return err
}
