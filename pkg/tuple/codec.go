package tuple

import (
	"fmt"

	"github.com/rowlog/rowlog/pkg/wire"
)

// EncodeRecord writes r through w: a reserved payload length slot, the body,
// then the slot back-patched with the body size. On error the writer is left
// mid-record; callers encoding into a reusable scratch buffer discard it by
// resetting.
func EncodeRecord(w *wire.Writer, r *Record) error {
	if !r.Op.valid() {
		return fmt.Errorf("encode record op %d: %w", int8(r.Op), ErrUnknownOp)
	}
	if len(r.Fields) > MaxFields {
		return fmt.Errorf("encode record with %d fields: %w", len(r.Fields), ErrTooManyFields)
	}

	slot, err := w.ReserveBytes(4)
	if err != nil {
		return err
	}
	if err := w.WriteInt64(r.TxnID); err != nil {
		return err
	}
	if err := w.WriteEnumByte(int(r.Op)); err != nil {
		return err
	}
	if err := w.WriteString(r.Table); err != nil {
		return err
	}
	if err := w.WriteInt16(int16(len(r.Fields))); err != nil {
		return err
	}
	for i := range r.Fields {
		if err := writeValue(w, r.Fields[i]); err != nil {
			return err
		}
	}

	end := w.Position()
	if err := w.SetPosition(slot); err != nil {
		return err
	}
	if err := w.WriteInt32(int32(end - slot - 4)); err != nil {
		return err
	}
	return w.SetPosition(end)
}

// DecodeRecord reads one record from rd and verifies that the body consumed
// exactly the declared payload length. Bytes and String fields alias rd's
// buffer.
func DecodeRecord(rd *wire.Reader) (*Record, error) {
	payloadLen, err := rd.ReadInt32()
	if err != nil {
		return nil, err
	}
	if payloadLen < 0 {
		return nil, fmt.Errorf("record payload length %d: %w", payloadLen, wire.ErrInvalidLength)
	}
	body := rd.Offset()

	txnID, err := rd.ReadInt64()
	if err != nil {
		return nil, err
	}

	opByte, err := rd.ReadEnumByte()
	if err != nil {
		return nil, err
	}
	op := Op(opByte)
	if !op.valid() {
		return nil, fmt.Errorf("record op %d: %w", opByte, ErrUnknownOp)
	}

	table, err := rd.ReadString()
	if err != nil {
		return nil, err
	}

	count, err := rd.ReadInt16()
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("record field count %d: %w", count, wire.ErrInvalidLength)
	}

	fields := make([]Value, 0, count)
	for i := 0; i < int(count); i++ {
		v, err := readValue(rd)
		if err != nil {
			return nil, err
		}
		fields = append(fields, v)
	}

	if consumed := rd.Offset() - body; consumed != int(payloadLen) {
		return nil, fmt.Errorf("record declares %d payload bytes, body is %d: %w",
			payloadLen, consumed, ErrPayloadMismatch)
	}

	return &Record{TxnID: txnID, Op: op, Table: table, Fields: fields}, nil
}

// PeekKind returns the kind tag of the next field without consuming it.
func PeekKind(rd *wire.Reader) (Kind, error) {
	b, err := rd.ReadEnumByte()
	if err != nil {
		return 0, err
	}
	if err := rd.Rewind(1); err != nil {
		return 0, err
	}
	return Kind(b), nil
}

func writeValue(w *wire.Writer, v Value) error {
	if !v.kind.valid() {
		return fmt.Errorf("encode field kind %d: %w", int8(v.kind), ErrUnknownKind)
	}
	if err := w.WriteEnumByte(int(v.kind)); err != nil {
		return err
	}
	switch v.kind {
	case KindBool:
		return w.WriteBool(v.b)
	case KindInt8:
		return w.WriteInt8(int8(v.i))
	case KindInt16:
		return w.WriteInt16(int16(v.i))
	case KindInt32:
		return w.WriteInt32(int32(v.i))
	case KindInt64:
		return w.WriteInt64(v.i)
	case KindFloat32:
		return w.WriteFloat32(float32(v.f))
	case KindFloat64:
		return w.WriteFloat64(v.f)
	default: // KindBytes, KindString
		return w.WriteBinary(v.data)
	}
}

func readValue(rd *wire.Reader) (Value, error) {
	kindByte, err := rd.ReadEnumByte()
	if err != nil {
		return Value{}, err
	}
	kind := Kind(kindByte)

	switch kind {
	case KindBool:
		b, err := rd.ReadBool()
		return Value{kind: kind, b: b}, err
	case KindInt8:
		v, err := rd.ReadInt8()
		return Value{kind: kind, i: int64(v)}, err
	case KindInt16:
		v, err := rd.ReadInt16()
		return Value{kind: kind, i: int64(v)}, err
	case KindInt32:
		v, err := rd.ReadInt32()
		return Value{kind: kind, i: int64(v)}, err
	case KindInt64:
		v, err := rd.ReadInt64()
		return Value{kind: kind, i: v}, err
	case KindFloat32:
		v, err := rd.ReadFloat32()
		return Value{kind: kind, f: float64(v)}, err
	case KindFloat64:
		v, err := rd.ReadFloat64()
		return Value{kind: kind, f: v}, err
	case KindString, KindBytes:
		n, err := rd.ReadInt32()
		if err != nil {
			return Value{}, err
		}
		if n < 0 {
			return Value{}, fmt.Errorf("field payload length %d: %w", n, wire.ErrInvalidLength)
		}
		p, err := rd.Next(int(n))
		return Value{kind: kind, data: p}, err
	default:
		// Step back so the reported offset points at the bad tag.
		_ = rd.Rewind(1)
		return Value{}, fmt.Errorf("field kind %d at offset %d: %w", kindByte, rd.Offset(), ErrUnknownKind)
	}
}
