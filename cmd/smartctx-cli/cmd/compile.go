package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"smartctx/internal/application/commands"
	"smartctx/internal/application/compiler"
	"smartctx/internal/domain"
)

var (
	compileDepth   int
	compileInlinks bool
	compileCopy    bool
	compileNote    string
	extraHeadings  []string
)

var compileCmd = &cobra.Command{
	Use:   "compile [refs...]",
	Short: "Compile notes and their linked neighbors into one text blob",
	Long: `Compile the given file/folder references (and everything reachable
within the link depth) into a single formatted context.

Example:
  smartctx-cli compile projects/plan.md --depth 2 --copy
  smartctx-cli compile --note projects/plan.md`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && compileNote == "" {
			return fmt.Errorf("no references given: pass refs or --note")
		}
		if err := ensureSynced(); err != nil {
			return err
		}

		ctx := context.Background()
		sc, err := buildContext(ctx, args, compileNote)
		if err != nil {
			return err
		}

		opts := compiler.Options{
			LinkDepth:      cfg.Settings.LinkDepth,
			IncludeInlinks: compileInlinks || cfg.Settings.IncludeInlinks,
		}
		if cmd.Flags().Changed("depth") {
			opts.LinkDepth = compileDepth
		}

		result, err := commands.NewCompileCommand(engine, sc, opts).Execute(ctx)
		if err != nil {
			return err
		}

		if compileCopy {
			if err := clipboard.WriteAll(result.Context); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
		} else {
			fmt.Println(result.Context)
		}

		fmt.Fprintf(os.Stderr, "%d items, %d links, %d chars (~%d tokens)\n",
			result.Stats.ItemCount, result.Stats.LinkCount,
			result.Stats.CharCount, domain.TokenEstimate(result.Stats.CharCount))
		for heading, count := range result.Exclusions {
			fmt.Fprintf(os.Stderr, "excluded %q x%d\n", heading, count)
		}
		return nil
	},
}

// buildContext assembles a one-shot context from CLI references and an
// optional note carrying smart-context blocks.
func buildContext(ctx context.Context, refs []string, note string) (*domain.SmartContext, error) {
	settings := cfg.Settings
	settings.ExcludedHeadings = append(settings.ExcludedHeadings, extraHeadings...)
	sc := domain.NewSmartContext("cli", settings)

	if len(refs) > 0 {
		if _, err := commands.NewAddItemsCommand(vault, sc, refs, cfg.Ignore).Execute(ctx); err != nil {
			return nil, err
		}
	}
	if note != "" {
		cmd := commands.NewImportBlocksCommand(vault, vault, sc, note, cfg.Ignore)
		if _, err := cmd.Execute(ctx); err != nil {
			return nil, err
		}
	}
	if len(sc.Keys()) == 0 {
		return nil, fmt.Errorf("nothing to compile: references resolved to no items")
	}
	return sc, nil
}

func init() {
	compileCmd.Flags().IntVarP(&compileDepth, "depth", "d", 1, "link depth to expand to")
	compileCmd.Flags().BoolVar(&compileInlinks, "inlinks", false, "also follow inbound links")
	compileCmd.Flags().BoolVarP(&compileCopy, "copy", "c", false, "copy the result to the clipboard instead of stdout")
	compileCmd.Flags().StringVar(&compileNote, "note", "", "note whose smart-context blocks supply the item set")
	compileCmd.Flags().StringArrayVar(&extraHeadings, "exclude-heading", nil, "additional heading to exclude (repeatable)")
	rootCmd.AddCommand(compileCmd)
}
