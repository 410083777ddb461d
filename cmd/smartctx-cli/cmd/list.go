package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"smartctx/internal/application/compiler"
)

var (
	listDepth     int
	listDirection string
)

var listCmd = &cobra.Command{
	Use:   "list [refs...]",
	Short: "List the notes reachable from the given roots",
	Long: `Walk the link graph from the given notes and print every reachable
key with its depth and direction.

Example:
  smartctx-cli list projects/plan.md --depth 2 --direction both`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureSynced(); err != nil {
			return err
		}

		var roots []string
		for _, ref := range args {
			keys, err := vault.Expand(ref, cfg.Ignore)
			if err != nil {
				return fmt.Errorf("cannot expand %q: %w", ref, err)
			}
			roots = append(roots, keys...)
		}

		var dir compiler.Direction
		switch listDirection {
		case "out":
			dir = compiler.DirectionOut
		case "in":
			dir = compiler.DirectionIn
		case "both":
			dir = compiler.DirectionBoth
		default:
			return fmt.Errorf("invalid direction %q (want out, in, or both)", listDirection)
		}

		entries := engine.Traverse(roots, dir, listDepth, true)
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Depth != entries[j].Depth {
				return entries[i].Depth < entries[j].Depth
			}
			return entries[i].Key < entries[j].Key
		})

		for _, entry := range entries {
			arrow := "→"
			if entry.Direction == compiler.DirectionIn {
				arrow = "←"
			}
			fmt.Printf("%d %s %s\n", entry.Depth, arrow, entry.Key)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&listDepth, "depth", "d", 1, "traversal depth bound")
	listCmd.Flags().StringVar(&listDirection, "direction", "out", "edge direction: out, in, or both")
	rootCmd.AddCommand(listCmd)
}
