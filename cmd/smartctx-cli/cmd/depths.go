package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"smartctx/internal/application/commands"
	"smartctx/internal/application/compiler"
)

var depthsNote string

var depthsCmd = &cobra.Command{
	Use:   "depths [refs...]",
	Short: "Show per-depth size estimates for a set of notes",
	Long: `Compile the references at every depth up to the configured maximum
and print the item/link/token statistics per depth, so a depth can be
chosen before compiling for real.

Example:
  smartctx-cli depths projects/plan.md`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && depthsNote == "" {
			return fmt.Errorf("no references given: pass refs or --note")
		}
		if err := ensureSynced(); err != nil {
			return err
		}

		ctx := context.Background()
		sc, err := buildContext(ctx, args, depthsNote)
		if err != nil {
			return err
		}

		store := compiler.NewDepthCacheStore()
		cache, err := commands.NewDepthScanCommand(engine, store, sc, cfg.MaxDepth).Execute(ctx)
		if err != nil {
			return err
		}

		for _, info := range cache.Depths {
			fmt.Println(info.Label)
		}
		return nil
	},
}

func init() {
	depthsCmd.Flags().StringVar(&depthsNote, "note", "", "note whose smart-context blocks supply the item set")
	rootCmd.AddCommand(depthsCmd)
}
