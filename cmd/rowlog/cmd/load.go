package cmd

import (
	"context"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/spf13/cobra"

	"github.com/rowlog/rowlog/pkg/changelog"
	"github.com/rowlog/rowlog/pkg/export"
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load <segment>",
	Short: "Replay a segment into a pebble database",
	Long: `Apply every record of a changelog segment to a pebble database:
inserts and updates become sets, deletes become deletes.

Example:
  rowlog load --db ./data/db ./backup/users.seg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbDir, _ := cmd.Flags().GetString("db")
		sync, _ := cmd.Flags().GetBool("sync")

		stats, err := loadSegment(cmd.Context(), dbDir, segmentReaderConfig(args[0]), sync)
		if err != nil {
			return err
		}
		cmd.Printf("Applied %d records to %s (%d inserts, %d updates, %d deletes)\n",
			stats.Total(), dbDir, stats.Inserts, stats.Updates, stats.Deletes)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().String("db", "", "pebble database directory")
	loadCmd.Flags().Bool("sync", true, "flush the database after the replay")
	if err := loadCmd.MarkFlagRequired("db"); err != nil {
		panic(err)
	}
}

// loadSegment opens the database and replays the segment into it.
func loadSegment(ctx context.Context, dbDir string, rc changelog.ReaderConfig, sync bool) (export.ApplyStats, error) {
	var stats export.ApplyStats

	db, err := pebble.Open(dbDir, &pebble.Options{})
	if err != nil {
		return stats, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	reader, err := changelog.NewReader(rc)
	if err != nil {
		return stats, err
	}
	defer reader.Close()

	return export.NewImporter(db, export.ImporterConfig{Sync: sync}).Apply(ctx, reader)
}
