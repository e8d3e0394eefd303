package export

import (
	"github.com/rowlog/rowlog/pkg/tuple"
)

// Sink receives the records an export produces. *changelog.Writer satisfies
// it.
type Sink interface {
	Append(record *tuple.Record) (int64, error)
}

// Source yields the records a replay consumes, ending with io.EOF.
// *changelog.Reader satisfies it.
type Source interface {
	ReadNext() (*tuple.Record, error)
}

// ExporterConfig configures a snapshot export.
type ExporterConfig struct {
	// Table is stamped on every exported record.
	Table string

	// StartTxnID seeds the running transaction sequence. Zero or negative
	// starts the sequence at 1.
	StartTxnID int64
}

// ExportStats reports what an export produced.
type ExportStats struct {
	Records int64
	Bytes   int64
}

// ImporterConfig configures a segment replay.
type ImporterConfig struct {
	// Sync flushes the database once after the replay so the restored keys
	// survive a crash without replaying the segment again.
	Sync bool
}

// ApplyStats reports what a replay did, by operation.
type ApplyStats struct {
	Inserts int64
	Updates int64
	Deletes int64
}

// Total returns the number of records applied.
func (s ApplyStats) Total() int64 {
	return s.Inserts + s.Updates + s.Deletes
}
