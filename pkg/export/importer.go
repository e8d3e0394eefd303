package export

import (
	"context"
	"io"

	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rowlog/rowlog/pkg/tuple"
)

// Importer replays segment records into a pebble database.
type Importer struct {
	db     *pebble.DB
	config ImporterConfig
}

// NewImporter returns an Importer writing into db.
func NewImporter(db *pebble.DB, config ImporterConfig) *Importer {
	return &Importer{db: db, config: config}
}

// Apply replays records from src until a clean end of segment. Inserts and
// updates become sets, deletes become deletes; the first field of a record
// is the key, the second the value. Writes go in unsynced, with one flush at
// the end when Sync is set.
func (i *Importer) Apply(ctx context.Context, src Source) (ApplyStats, error) {
	var stats ApplyStats

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		record, err := src.ReadNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, errors.Wrap(err, "read record")
		}

		if err := i.applyRecord(record); err != nil {
			return stats, err
		}

		switch record.Op {
		case tuple.OpInsert:
			stats.Inserts++
		case tuple.OpUpdate:
			stats.Updates++
		case tuple.OpDelete:
			stats.Deletes++
		}
	}

	if i.config.Sync {
		if err := i.db.Flush(); err != nil {
			return stats, errors.Wrap(err, "flush database")
		}
	}

	logrus.WithFields(logrus.Fields{
		"inserts": stats.Inserts,
		"updates": stats.Updates,
		"deletes": stats.Deletes,
	}).Info("export: replay complete")

	return stats, nil
}

func (i *Importer) applyRecord(record *tuple.Record) error {
	key, err := keyField(record)
	if err != nil {
		return err
	}

	switch record.Op {
	case tuple.OpInsert, tuple.OpUpdate:
		if len(record.Fields) < 2 {
			return errors.Errorf("record txn %d has no value field", record.TxnID)
		}
		value := record.Fields[1]
		if value.Kind() != tuple.KindBytes && value.Kind() != tuple.KindString {
			return errors.Errorf("record txn %d value is %s, want bytes or string",
				record.TxnID, value.Kind())
		}
		return i.db.Set(key, value.Data(), pebble.NoSync)
	case tuple.OpDelete:
		return i.db.Delete(key, pebble.NoSync)
	default:
		return errors.Errorf("record txn %d has unknown op %s", record.TxnID, record.Op)
	}
}

func keyField(record *tuple.Record) ([]byte, error) {
	if len(record.Fields) == 0 {
		return nil, errors.Errorf("record txn %d has no key field", record.TxnID)
	}
	key := record.Fields[0]
	if key.Kind() != tuple.KindBytes && key.Kind() != tuple.KindString {
		return nil, errors.Errorf("record txn %d key is %s, want bytes or string",
			record.TxnID, key.Kind())
	}
	return key.Data(), nil
}
