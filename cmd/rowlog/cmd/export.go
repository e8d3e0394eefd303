package cmd

import (
	"context"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/spf13/cobra"

	"github.com/rowlog/rowlog/pkg/changelog"
	"github.com/rowlog/rowlog/pkg/export"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Snapshot a pebble database into a segment",
	Long: `Walk every key of a pebble database and write it to a changelog
segment as an insert record.

Example:
  rowlog export --db ./data/db --out ./backup/users.seg --table users`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbDir, _ := cmd.Flags().GetString("db")
		outPath, _ := cmd.Flags().GetString("out")
		table, _ := cmd.Flags().GetString("table")
		if table == "" && cfg != nil {
			table = cfg.Table
		}

		stats, err := exportSnapshot(cmd.Context(), dbDir, segmentWriterConfig(outPath), table)
		if err != nil {
			return err
		}
		cmd.Printf("Exported %d records (%d bytes) to %s\n", stats.Records, stats.Bytes, outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("db", "", "pebble database directory")
	exportCmd.Flags().String("out", "", "segment file to write")
	exportCmd.Flags().String("table", "", "table name stamped on records (default from config)")
	if err := exportCmd.MarkFlagRequired("db"); err != nil {
		panic(err)
	}
	if err := exportCmd.MarkFlagRequired("out"); err != nil {
		panic(err)
	}
}

// exportSnapshot opens the database and streams every key into a new segment.
func exportSnapshot(ctx context.Context, dbDir string, wc changelog.WriterConfig, table string) (export.ExportStats, error) {
	var stats export.ExportStats

	db, err := pebble.Open(dbDir, &pebble.Options{})
	if err != nil {
		return stats, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	writer, err := changelog.NewWriter(wc)
	if err != nil {
		return stats, err
	}

	stats, err = export.NewExporter(db, writer, export.ExporterConfig{Table: table}).Run(ctx)
	if err != nil {
		writer.Close()
		return stats, err
	}
	return stats, writer.Close()
}
