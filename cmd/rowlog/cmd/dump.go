package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/rowlog/rowlog/pkg/changelog"
	"github.com/rowlog/rowlog/pkg/tuple"
)

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump <segment>",
	Short: "Print the records in a segment",
	Long: `Print every record in a changelog segment.

Example:
  rowlog dump ./data/changes.seg
  rowlog dump --json ./data/changes.seg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return dumpSegment(cmd.OutOrStdout(), segmentReaderConfig(args[0]), asJSON)
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().Bool("json", false, "emit records as JSON")
}

// dumpSegment writes every record of a segment to out.
func dumpSegment(out io.Writer, rc changelog.ReaderConfig, asJSON bool) error {
	reader, err := changelog.NewReader(rc)
	if err != nil {
		return err
	}
	defer reader.Close()

	var records []*tuple.Record
	it := reader.Iterator()
	for it.Next() {
		records = append(records, it.Record())
	}
	if err := it.Err(); err != nil {
		return err
	}

	if asJSON {
		return outputRecordsJSON(out, records)
	}
	return outputRecordsTable(out, records)
}
