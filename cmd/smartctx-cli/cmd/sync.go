package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var syncFull bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the link-graph index",
	Long: `Scan the vault's markdown files and refresh the SQLite link index.
By default only files changed since the last sync are re-indexed.

Example:
  smartctx-cli sync --full`,
	RunE: func(cmd *cobra.Command, args []string) error {
		full := syncFull || index.NeedsFullRebuild()

		sync := index.SyncIncremental
		if full {
			sync = index.SyncFull
		}
		stats, err := sync()
		if err != nil {
			return err
		}

		fmt.Printf("Scanned %d files in %s\n", stats.FilesScanned, stats.Duration.Round(time.Millisecond))
		fmt.Printf("Nodes: +%d ~%d -%d\n", stats.NodesAdded, stats.NodesUpdated, stats.NodesDeleted)
		fmt.Printf("Edges: +%d\n", stats.EdgesAdded)
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncFull, "full", false, "force a full rebuild")
	rootCmd.AddCommand(syncCmd)
}
