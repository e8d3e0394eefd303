package changelog

import (
	"errors"
	"time"

	"github.com/rowlog/rowlog/pkg/tuple"
)

const (
	// DefaultBufferSize is the write buffer size used when WriterConfig
	// leaves BufferSize zero.
	DefaultBufferSize = 64 * 1024

	// DefaultMaxRecordSize caps individual records when the configs leave
	// MaxRecordSize zero.
	DefaultMaxRecordSize = 1 << 20
)

// WriterConfig holds configuration for a segment writer.
type WriterConfig struct {
	Path          string        // Segment file path
	FsyncInterval time.Duration // How often to fsync (0 = every append)
	BufferSize    int           // Write buffer size
	MaxRecordSize int           // Largest encodable record, prefix included
	Metrics       *Metrics      // Optional instrumentation
}

// ReaderConfig holds configuration for a segment reader.
type ReaderConfig struct {
	Path          string   // Segment file path
	MaxRecordSize int      // Largest record accepted while decoding
	Metrics       *Metrics // Optional instrumentation
}

// RecordIterator provides streaming access to the records of a segment.
// Next returns false at the end of the segment or on error; Err tells the
// two apart.
type RecordIterator interface {
	Next() bool
	Record() *tuple.Record
	Err() error
	Close() error
}

// Errors
var (
	ErrBadMagic       = errors.New("changelog: bad segment magic")
	ErrVersion        = errors.New("changelog: unsupported segment version")
	ErrTruncated      = errors.New("changelog: truncated segment")
	ErrRecordTooLarge = errors.New("changelog: record exceeds max size")
)
