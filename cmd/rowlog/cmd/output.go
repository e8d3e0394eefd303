package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rowlog/rowlog/pkg/tuple"
)

// recordJSON is the JSON shape of one dumped record
type recordJSON struct {
	TxnID  int64       `json:"txn_id"`
	Op     string      `json:"op"`
	Table  string      `json:"table"`
	Fields []fieldJSON `json:"fields"`
}

// fieldJSON is the JSON shape of one field value
type fieldJSON struct {
	Kind  string      `json:"kind"`
	Value interface{} `json:"value"`
}

// outputRecordsTable displays records in table format
func outputRecordsTable(out io.Writer, records []*tuple.Record) error {
	if len(records) == 0 {
		fmt.Fprintln(out, "No records found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "TXN\tOP\tTABLE\tFIELDS")

	for _, rec := range records {
		fields := make([]string, len(rec.Fields))
		for i, f := range rec.Fields {
			fields[i] = f.String()
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", rec.TxnID, rec.Op, rec.Table, strings.Join(fields, ", "))
	}

	return nil
}

// outputRecordsJSON displays records in JSON format
func outputRecordsJSON(out io.Writer, records []*tuple.Record) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(toRecordJSON(records))
}

func toRecordJSON(records []*tuple.Record) []recordJSON {
	out := make([]recordJSON, 0, len(records))
	for _, rec := range records {
		rj := recordJSON{
			TxnID:  rec.TxnID,
			Op:     rec.Op.String(),
			Table:  rec.Table,
			Fields: make([]fieldJSON, 0, len(rec.Fields)),
		}
		for _, f := range rec.Fields {
			rj.Fields = append(rj.Fields, fieldJSON{Kind: f.Kind().String(), Value: fieldValue(f)})
		}
		out = append(out, rj)
	}
	return out
}

// fieldValue converts a field payload to its natural JSON type
func fieldValue(v tuple.Value) interface{} {
	switch v.Kind() {
	case tuple.KindBool:
		return v.Bool()
	case tuple.KindInt8, tuple.KindInt16, tuple.KindInt32, tuple.KindInt64:
		return v.Int()
	case tuple.KindFloat32, tuple.KindFloat64:
		return v.Float()
	case tuple.KindBytes:
		return fmt.Sprintf("0x%x", v.Data())
	case tuple.KindString:
		return v.Text()
	default:
		return nil
	}
}
