// Package export moves tuple data between a pebble database and changelog
// segments. An Exporter snapshots every key/value pair into a segment; an
// Importer replays a segment back into a database.
package export

import (
	"context"

	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rowlog/rowlog/pkg/tuple"
)

// Exporter walks a pebble database in key order and writes one insert record
// per key to a sink.
type Exporter struct {
	db     *pebble.DB
	sink   Sink
	config ExporterConfig
}

// NewExporter returns an Exporter over db that appends to sink.
func NewExporter(db *pebble.DB, sink Sink, config ExporterConfig) *Exporter {
	if config.StartTxnID <= 0 {
		config.StartTxnID = 1
	}
	return &Exporter{db: db, sink: sink, config: config}
}

// Run snapshots every key/value pair into the sink. Each pair becomes an
// insert record carrying the key and value as byte fields and a transaction
// id from a running sequence. Cancellation is honored between records.
func (e *Exporter) Run(ctx context.Context) (stats ExportStats, err error) {
	iter, err := e.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return stats, errors.Wrap(err, "open iterator")
	}
	defer func() {
		if cerr := iter.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close iterator")
		}
	}()

	txn := e.config.StartTxnID
	for iter.First(); iter.Valid(); iter.Next() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		record := &tuple.Record{
			TxnID: txn,
			Op:    tuple.OpInsert,
			Table: e.config.Table,
			Fields: []tuple.Value{
				tuple.Bytes(iter.Key()),
				tuple.Bytes(iter.Value()),
			},
		}
		if _, err := e.sink.Append(record); err != nil {
			return stats, errors.Wrapf(err, "append record for key %q", iter.Key())
		}

		txn++
		stats.Records++
		stats.Bytes += int64(record.EncodedSize())
	}
	if err := iter.Error(); err != nil {
		return stats, errors.Wrap(err, "iterate database")
	}

	logrus.WithFields(logrus.Fields{
		"table":   e.config.Table,
		"records": stats.Records,
		"bytes":   stats.Bytes,
	}).Info("export: snapshot complete")

	return stats, nil
}
