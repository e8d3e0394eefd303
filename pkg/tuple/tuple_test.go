package tuple

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/rowlog/rowlog/pkg/wire"
)

// encodeRecord is a test helper that encodes into an exact-size buffer.
func encodeRecord(t *testing.T, rec *Record) []byte {
	t.Helper()
	buf := make([]byte, rec.EncodedSize())
	w := wire.NewWriter(buf)
	if err := EncodeRecord(w, rec); err != nil {
		t.Fatalf("EncodeRecord failed: %v", err)
	}
	if w.Size() != rec.EncodedSize() {
		t.Fatalf("EncodedSize mismatch: wrote %d, predicted %d", w.Size(), rec.EncodedSize())
	}
	return w.Bytes()
}

// valuesEqual compares by kind and payload; byte payloads compare by content
// so a nil input matches an empty decoded view.
func valuesEqual(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindBool:
		return a.Bool() == b.Bool()
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return a.Int() == b.Int()
	case KindFloat32, KindFloat64:
		return math.Float64bits(a.Float()) == math.Float64bits(b.Float())
	default:
		return bytes.Equal(a.Data(), b.Data())
	}
}

func TestRecord_EncodeDecodeRoundTrip(t *testing.T) {
	testCases := []struct {
		name   string
		record *Record
	}{
		{
			name: "all primitive kinds",
			record: &Record{
				TxnID: 900913,
				Op:    OpInsert,
				Table: "users",
				Fields: []Value{
					Bool(true),
					Int8(-5),
					Int16(300),
					Int32(-70000),
					Int64(1 << 40),
					Float32(1.5),
					Float64(-2.25),
				},
			},
		},
		{
			name: "string and bytes fields",
			record: &Record{
				TxnID: 1,
				Op:    OpUpdate,
				Table: "orders",
				Fields: []Value{
					String("pending"),
					Bytes([]byte{0xDE, 0xAD, 0xBE, 0xEF}),
				},
			},
		},
		{
			name:   "delete with no fields",
			record: &Record{TxnID: 7, Op: OpDelete, Table: "sessions"},
		},
		{
			name: "empty table name",
			record: &Record{
				TxnID:  0,
				Op:     OpInsert,
				Table:  "",
				Fields: []Value{Int32(1)},
			},
		},
		{
			name: "empty string and empty bytes",
			record: &Record{
				TxnID:  2,
				Op:     OpInsert,
				Table:  "blobs",
				Fields: []Value{String(""), Bytes(nil)},
			},
		},
		{
			name: "unicode table and text",
			record: &Record{
				TxnID:  3,
				Op:     OpUpdate,
				Table:  "métriques",
				Fields: []Value{String("🎯 cible")},
			},
		},
		{
			name: "large blob",
			record: &Record{
				TxnID:  4,
				Op:     OpInsert,
				Table:  "files",
				Fields: []Value{Bytes(bytes.Repeat([]byte{0x42}, 10240))},
			},
		},
		{
			name: "negative extremes",
			record: &Record{
				TxnID: math.MinInt64,
				Op:    OpDelete,
				Table: "t",
				Fields: []Value{
					Int8(math.MinInt8),
					Int16(math.MinInt16),
					Int32(math.MinInt32),
					Int64(math.MinInt64),
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := encodeRecord(t, tc.record)

			got, err := DecodeRecord(wire.NewReader(encoded))
			if err != nil {
				t.Fatalf("DecodeRecord failed: %v", err)
			}

			if got.TxnID != tc.record.TxnID {
				t.Errorf("TxnID mismatch: got %d, want %d", got.TxnID, tc.record.TxnID)
			}
			if got.Op != tc.record.Op {
				t.Errorf("Op mismatch: got %v, want %v", got.Op, tc.record.Op)
			}
			if got.Table != tc.record.Table {
				t.Errorf("Table mismatch: got %q, want %q", got.Table, tc.record.Table)
			}
			if len(got.Fields) != len(tc.record.Fields) {
				t.Fatalf("field count mismatch: got %d, want %d", len(got.Fields), len(tc.record.Fields))
			}
			for i := range got.Fields {
				if !valuesEqual(got.Fields[i], tc.record.Fields[i]) {
					t.Errorf("field %d mismatch: got %v, want %v", i, got.Fields[i], tc.record.Fields[i])
				}
			}
		})
	}
}

func TestRecord_PayloadLengthPrefix(t *testing.T) {
	rec := &Record{
		TxnID:  10,
		Op:     OpInsert,
		Table:  "users",
		Fields: []Value{Int64(5), String("ada")},
	}
	encoded := encodeRecord(t, rec)

	// The back-patched prefix must equal the byte count that follows it.
	r := wire.NewReader(encoded)
	payloadLen, err := r.ReadInt32()
	if err != nil {
		t.Fatalf("reading payload length failed: %v", err)
	}
	if int(payloadLen) != len(encoded)-4 {
		t.Errorf("payload length mismatch: prefix says %d, body is %d", payloadLen, len(encoded)-4)
	}
}

func TestRecord_EncodeValidation(t *testing.T) {
	t.Run("unknown op", func(t *testing.T) {
		rec := &Record{TxnID: 1, Op: 9, Table: "t"}
		w := wire.NewWriter(make([]byte, 64))
		if err := EncodeRecord(w, rec); !errors.Is(err, ErrUnknownOp) {
			t.Errorf("expected ErrUnknownOp, got %v", err)
		}
	})

	t.Run("zero value field", func(t *testing.T) {
		rec := &Record{TxnID: 1, Op: OpInsert, Table: "t", Fields: []Value{{}}}
		w := wire.NewWriter(make([]byte, 64))
		if err := EncodeRecord(w, rec); !errors.Is(err, ErrUnknownKind) {
			t.Errorf("expected ErrUnknownKind, got %v", err)
		}
	})

	t.Run("too many fields", func(t *testing.T) {
		rec := &Record{
			TxnID:  1,
			Op:     OpInsert,
			Table:  "t",
			Fields: make([]Value, MaxFields+1),
		}
		w := wire.NewWriter(make([]byte, 64))
		if err := EncodeRecord(w, rec); !errors.Is(err, ErrTooManyFields) {
			t.Errorf("expected ErrTooManyFields, got %v", err)
		}
	})

	t.Run("buffer one byte short", func(t *testing.T) {
		rec := &Record{TxnID: 1, Op: OpInsert, Table: "t", Fields: []Value{Bool(true)}}
		w := wire.NewWriter(make([]byte, rec.EncodedSize()-1))
		if err := EncodeRecord(w, rec); !errors.Is(err, wire.ErrBufferOverrun) {
			t.Errorf("expected ErrBufferOverrun, got %v", err)
		}
	})
}

func TestRecord_DecodeMalformed(t *testing.T) {
	valid := encodeRecord(t, &Record{
		TxnID:  5,
		Op:     OpInsert,
		Table:  "t",
		Fields: []Value{Bool(true)},
	})
	// Layout: [len 0:4][txn 4:12][op 12][table 13:18][count 18:20][kind 20][bool 21]

	corrupt := func(mutate func(b []byte) []byte) []byte {
		b := append([]byte(nil), valid...)
		return mutate(b)
	}

	testCases := []struct {
		name string
		data []byte
		want error
	}{
		{
			name: "empty input",
			data: []byte{},
			want: wire.ErrBufferOverrun,
		},
		{
			name: "negative payload length",
			data: []byte{0xFF, 0xFF, 0xFF, 0xFF},
			want: wire.ErrInvalidLength,
		},
		{
			name: "unknown op",
			data: corrupt(func(b []byte) []byte { b[12] = 9; return b }),
			want: ErrUnknownOp,
		},
		{
			name: "negative field count",
			data: corrupt(func(b []byte) []byte { b[18], b[19] = 0xFF, 0xFF; return b }),
			want: wire.ErrInvalidLength,
		},
		{
			name: "unknown field kind",
			data: corrupt(func(b []byte) []byte { b[20] = 0x63; return b }),
			want: ErrUnknownKind,
		},
		{
			name: "declared payload longer than body",
			data: corrupt(func(b []byte) []byte { b[0]++; return b }),
			want: ErrPayloadMismatch,
		},
		{
			name: "truncated mid-field",
			data: valid[:len(valid)-1],
			want: wire.ErrBufferOverrun,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeRecord(wire.NewReader(tc.data))
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestPeekKind(t *testing.T) {
	buf := make([]byte, 16)
	w := wire.NewWriter(buf)
	if err := writeValue(w, Int32(42)); err != nil {
		t.Fatalf("writeValue failed: %v", err)
	}

	r := wire.NewReader(w.Bytes())
	kind, err := PeekKind(r)
	if err != nil {
		t.Fatalf("PeekKind failed: %v", err)
	}
	if kind != KindInt32 {
		t.Errorf("expected KindInt32, got %v", kind)
	}
	if r.Offset() != 0 {
		t.Errorf("peek must not consume, cursor at %d", r.Offset())
	}

	// The full field must still decode after the peek.
	v, err := readValue(r)
	if err != nil {
		t.Fatalf("readValue after peek failed: %v", err)
	}
	if v.Kind() != KindInt32 || v.Int() != 42 {
		t.Errorf("unexpected value after peek: %v", v)
	}
}

func TestValue_String(t *testing.T) {
	testCases := []struct {
		value Value
		want  string
	}{
		{Bool(true), "bool:true"},
		{Int8(-5), "int8:-5"},
		{Int64(42), "int64:42"},
		{Float64(19.99), "float64:19.99"},
		{Bytes([]byte{0xDE, 0xAD}), "bytes:0xdead"},
		{String("hi"), `string:"hi"`},
	}

	for _, tc := range testCases {
		if got := tc.value.String(); got != tc.want {
			t.Errorf("String mismatch: got %q, want %q", got, tc.want)
		}
	}
}

func TestOp_String(t *testing.T) {
	if OpInsert.String() != "insert" || OpUpdate.String() != "update" || OpDelete.String() != "delete" {
		t.Error("op names changed")
	}
	if Op(9).String() != "op(9)" {
		t.Errorf("unexpected unknown op rendering: %s", Op(9).String())
	}
}

func TestRecord_EncodedSize(t *testing.T) {
	testCases := []struct {
		name   string
		record *Record
		want   int
	}{
		{
			name:   "header only",
			record: &Record{Op: OpDelete, Table: ""},
			// len(4) + txn(8) + op(1) + table(4+0) + count(2)
			want: 19,
		},
		{
			name:   "one bool field",
			record: &Record{Op: OpInsert, Table: "t", Fields: []Value{Bool(true)}},
			want:   19 + 1 + 2,
		},
		{
			name:   "string field",
			record: &Record{Op: OpInsert, Table: "tab", Fields: []Value{String("hello")}},
			want:   19 + 3 + (1 + 4 + 5),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.record.EncodedSize(); got != tc.want {
				t.Errorf("EncodedSize mismatch: got %d, want %d", got, tc.want)
			}
			encoded := encodeRecord(t, tc.record)
			if len(encoded) != tc.want {
				t.Errorf("actual encoding is %d bytes, want %d", len(encoded), tc.want)
			}
		})
	}
}
