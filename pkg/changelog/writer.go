package changelog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/sirupsen/logrus"

	"github.com/rowlog/rowlog/pkg/tuple"
	"github.com/rowlog/rowlog/pkg/wire"
)

// Writer handles append-only writes to a segment file. Records are encoded
// into a reusable scratch buffer sized MaxRecordSize, then handed to a
// buffered file writer.
type Writer struct {
	file       *os.File
	writer     *bufio.Writer
	enc        *wire.Writer
	fsyncTimer *time.Timer
	config     WriterConfig
	header     Header
	mutex      sync.Mutex
	offset     int64 // Current write offset
}

// NewWriter opens the segment at config.Path for appending, creating it with
// a fresh header and session id when empty. An existing segment must carry a
// valid header; its session is adopted so one file never mixes sessions.
func NewWriter(config WriterConfig) (*Writer, error) {
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultBufferSize
	}
	if config.MaxRecordSize <= 0 {
		config.MaxRecordSize = DefaultMaxRecordSize
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(config.Path), 0750); err != nil {
		return nil, err
	}

	// Read-write: adopting the header of a nonempty segment needs reads.
	file, err := os.OpenFile(config.Path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, err
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	var header Header
	offset := stat.Size()
	switch {
	case offset == 0:
		header = Header{Version: Version, Session: ksuid.New()}
		buf, err := encodeHeader(header)
		if err != nil {
			file.Close()
			return nil, err
		}
		if _, err := file.Write(buf); err != nil {
			file.Close()
			return nil, err
		}
		offset = headerSize
	case offset < headerSize:
		file.Close()
		return nil, fmt.Errorf("segment %s holds %d bytes, header needs %d: %w",
			config.Path, offset, headerSize, ErrTruncated)
	default:
		raw := make([]byte, headerSize)
		if _, err := io.ReadFull(file, raw); err != nil {
			file.Close()
			return nil, err
		}
		header, err = decodeHeader(raw)
		if err != nil {
			file.Close()
			return nil, err
		}
	}

	// Seek to end for append behavior
	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		file.Close()
		return nil, err
	}

	w := &Writer{
		file:   file,
		writer: bufio.NewWriterSize(file, config.BufferSize),
		enc:    wire.NewWriter(make([]byte, config.MaxRecordSize)),
		config: config,
		header: header,
		offset: offset,
	}

	// Set up fsync timer if interval is configured
	if config.FsyncInterval > 0 {
		w.fsyncTimer = time.AfterFunc(config.FsyncInterval, func() {
			w.mutex.Lock()
			defer w.mutex.Unlock()
			_ = w.sync() // Ignore error in timer callback
		})
	}

	logrus.WithFields(logrus.Fields{
		"path":    config.Path,
		"session": header.Session.String(),
		"offset":  offset,
	}).Info("changelog: segment opened for append")

	return w, nil
}

// Append encodes rec and appends it to the segment, returning the offset
// the record starts at.
func (w *Writer) Append(rec *tuple.Record) (int64, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	start := time.Now()

	if size := rec.EncodedSize(); size > w.config.MaxRecordSize {
		w.config.Metrics.RecordAppendError()
		return 0, fmt.Errorf("record of %d bytes, max is %d: %w",
			size, w.config.MaxRecordSize, ErrRecordTooLarge)
	}

	// Encode into the scratch buffer
	w.enc.Reset()
	if err := tuple.EncodeRecord(w.enc, rec); err != nil {
		w.config.Metrics.RecordAppendError()
		return 0, err
	}

	// Write to buffer
	n, err := w.writer.Write(w.enc.Bytes())
	if err != nil {
		w.config.Metrics.RecordAppendError()
		return 0, err
	}

	recordOffset := w.offset
	w.offset += int64(n)

	// Sync immediately if no fsync interval configured
	if w.config.FsyncInterval == 0 {
		if err := w.sync(); err != nil {
			w.config.Metrics.RecordAppendError()
			return 0, err
		}
	} else {
		// Reset fsync timer
		if w.fsyncTimer != nil {
			w.fsyncTimer.Reset(w.config.FsyncInterval)
		}
	}

	w.config.Metrics.RecordAppend(rec.Op.String(), n, time.Since(start))

	return recordOffset, nil
}

// Sync forces a fsync to disk
func (w *Writer) Sync() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.sync()
}

// sync performs the actual fsync operation (internal method)
func (w *Writer) sync() error {
	// Flush buffered writes
	if err := w.writer.Flush(); err != nil {
		return err
	}

	// Fsync to disk
	return w.file.Sync()
}

// Close closes the writer and ensures all data is synced
func (w *Writer) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	// Cancel fsync timer
	if w.fsyncTimer != nil {
		w.fsyncTimer.Stop()
	}

	// Final sync
	if err := w.sync(); err != nil {
		w.file.Close()
		return err
	}

	logrus.WithField("path", w.config.Path).Debug("changelog: segment closed")

	return w.file.Close()
}

// Size returns the current size of the segment in bytes, header included.
func (w *Writer) Size() int64 {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.offset
}

// Path returns the segment file path.
func (w *Writer) Path() string {
	return w.config.Path
}

// Session returns the session id the segment was created under.
func (w *Writer) Session() ksuid.KSUID {
	return w.header.Session
}
