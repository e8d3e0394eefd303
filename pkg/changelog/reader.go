package changelog

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/segmentio/ksuid"
	"github.com/sirupsen/logrus"

	"github.com/rowlog/rowlog/pkg/tuple"
	"github.com/rowlog/rowlog/pkg/wire"
)

// Reader provides sequential access to the records in a segment file.
type Reader struct {
	file   *os.File
	reader *bufio.Reader
	header Header
	config ReaderConfig
	offset int64
}

// NewReader opens the segment at config.Path and validates its header.
func NewReader(config ReaderConfig) (*Reader, error) {
	if config.MaxRecordSize <= 0 {
		config.MaxRecordSize = DefaultMaxRecordSize
	}

	file, err := os.Open(config.Path)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(file)

	raw := make([]byte, headerSize)
	if _, err := io.ReadFull(br, raw); err != nil {
		file.Close()
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("segment header: %w", ErrTruncated)
		}
		return nil, err
	}

	header, err := decodeHeader(raw)
	if err != nil {
		file.Close()
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"path":    config.Path,
		"session": header.Session.String(),
	}).Debug("changelog: segment opened for read")

	return &Reader{
		file:   file,
		reader: br,
		header: header,
		config: config,
		offset: headerSize,
	}, nil
}

// ReadNext reads the record at the current offset. It returns io.EOF at a
// clean end of segment and ErrTruncated when the file stops partway through
// a record, which is what a crashed producer leaves behind.
func (r *Reader) ReadNext() (*tuple.Record, error) {
	// Read the 4-byte payload length prefix
	prefix := make([]byte, 4)
	if _, err := io.ReadFull(r.reader, prefix); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		if err == io.ErrUnexpectedEOF {
			r.config.Metrics.RecordTruncation()
			return nil, fmt.Errorf("record prefix at offset %d: %w", r.offset, ErrTruncated)
		}
		return nil, err
	}

	payloadLen, err := wire.NewReader(prefix).ReadInt32()
	if err != nil {
		return nil, err
	}
	if payloadLen < 0 {
		return nil, fmt.Errorf("record payload length %d at offset %d: %w",
			payloadLen, r.offset, wire.ErrInvalidLength)
	}
	if int(payloadLen)+4 > r.config.MaxRecordSize {
		return nil, fmt.Errorf("record of %d bytes at offset %d, max is %d: %w",
			int(payloadLen)+4, r.offset, r.config.MaxRecordSize, ErrRecordTooLarge)
	}

	// Reassemble prefix plus body so the record decodes in one pass
	full := make([]byte, 4+int(payloadLen))
	copy(full, prefix)
	if _, err := io.ReadFull(r.reader, full[4:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			r.config.Metrics.RecordTruncation()
			return nil, fmt.Errorf("record body at offset %d: %w", r.offset, ErrTruncated)
		}
		return nil, err
	}

	rec, err := tuple.DecodeRecord(wire.NewReader(full))
	if err != nil {
		return nil, err
	}

	r.offset += int64(len(full))
	r.config.Metrics.RecordRead()

	return rec, nil
}

// Header returns the segment header read at open.
func (r *Reader) Header() Header {
	return r.header
}

// Session returns the session id the segment was created under.
func (r *Reader) Session() ksuid.KSUID {
	return r.header.Session
}

// Offset returns the file offset of the next unread record.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Iterator returns a streaming iterator over the remaining records.
func (r *Reader) Iterator() RecordIterator {
	return &segmentIterator{reader: r}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// segmentIterator implements RecordIterator for streaming access
type segmentIterator struct {
	reader *Reader
	record *tuple.Record
	err    error
}

func (it *segmentIterator) Next() bool {
	rec, err := it.reader.ReadNext()
	if err != nil {
		if err != io.EOF {
			it.err = err
		}
		it.record = nil
		return false
	}
	it.record = rec
	return true
}

func (it *segmentIterator) Record() *tuple.Record {
	return it.record
}

func (it *segmentIterator) Err() error {
	return it.err
}

func (it *segmentIterator) Close() error {
	// Don't close the underlying reader as it's owned by the caller
	return nil
}
