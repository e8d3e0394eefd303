package tuple

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnknownKind indicates a field kind tag outside the defined range.
	ErrUnknownKind = errors.New("tuple: unknown field kind")

	// ErrUnknownOp indicates an operation discriminant outside the defined
	// range.
	ErrUnknownOp = errors.New("tuple: unknown operation")

	// ErrTooManyFields indicates a record with more fields than the 16-bit
	// field count can describe.
	ErrTooManyFields = errors.New("tuple: too many fields")

	// ErrPayloadMismatch indicates a record whose declared payload length
	// does not match its decoded body.
	ErrPayloadMismatch = errors.New("tuple: payload length mismatch")
)

// MaxFields is the largest number of field values one record can carry.
const MaxFields = math.MaxInt16

// Op identifies the mutation a record describes.
type Op int8

const (
	OpInsert Op = 1
	OpUpdate Op = 2
	OpDelete Op = 3
)

func (o Op) valid() bool {
	return o >= OpInsert && o <= OpDelete
}

func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return fmt.Sprintf("op(%d)", int8(o))
	}
}

// Kind identifies the type of a field value on the wire.
type Kind int8

const (
	KindBool    Kind = 1
	KindInt8    Kind = 2
	KindInt16   Kind = 3
	KindInt32   Kind = 4
	KindInt64   Kind = 5
	KindFloat32 Kind = 6
	KindFloat64 Kind = 7
	KindBytes   Kind = 8
	KindString  Kind = 9
)

func (k Kind) valid() bool {
	return k >= KindBool && k <= KindString
}

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int8(k))
	}
}

// Value is one typed field of a record. The zero Value has no kind and does
// not encode; build values with the constructor functions.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	data []byte
}

// Bool returns a boolean field value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Int8 returns an 8-bit integer field value.
func Int8(v int8) Value { return Value{kind: KindInt8, i: int64(v)} }

// Int16 returns a 16-bit integer field value.
func Int16(v int16) Value { return Value{kind: KindInt16, i: int64(v)} }

// Int32 returns a 32-bit integer field value.
func Int32(v int32) Value { return Value{kind: KindInt32, i: int64(v)} }

// Int64 returns a 64-bit integer field value.
func Int64(v int64) Value { return Value{kind: KindInt64, i: v} }

// Float32 returns a 32-bit float field value.
func Float32(v float32) Value { return Value{kind: KindFloat32, f: float64(v)} }

// Float64 returns a 64-bit float field value.
func Float64(v float64) Value { return Value{kind: KindFloat64, f: v} }

// Bytes returns a raw byte field value. The slice is referenced, not copied.
func Bytes(p []byte) Value { return Value{kind: KindBytes, data: p} }

// String returns a text field value.
func String(s string) Value { return Value{kind: KindString, data: []byte(s)} }

// Kind returns the value's type tag.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean payload. Meaningful only for KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload widened to 64 bits. Meaningful for the
// integer kinds.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload widened to 64 bits. Meaningful for the
// float kinds.
func (v Value) Float() float64 { return v.f }

// Data returns the raw payload of a Bytes or String value, nil otherwise.
// The slice may alias a decode buffer; see the package documentation.
func (v Value) Data() []byte { return v.data }

// Text returns the payload of a String or Bytes value as a string.
func (v Value) Text() string { return string(v.data) }

// String renders the value as kind:payload for logs and dumps.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("bool:%t", v.b)
	case KindInt8:
		return fmt.Sprintf("int8:%d", v.i)
	case KindInt16:
		return fmt.Sprintf("int16:%d", v.i)
	case KindInt32:
		return fmt.Sprintf("int32:%d", v.i)
	case KindInt64:
		return fmt.Sprintf("int64:%d", v.i)
	case KindFloat32:
		return fmt.Sprintf("float32:%g", v.f)
	case KindFloat64:
		return fmt.Sprintf("float64:%g", v.f)
	case KindBytes:
		return fmt.Sprintf("bytes:0x%x", v.data)
	case KindString:
		return fmt.Sprintf("string:%q", v.data)
	default:
		return v.kind.String()
	}
}

// EncodedSize returns the number of bytes the value occupies on the wire,
// kind tag included.
func (v Value) EncodedSize() int {
	switch v.kind {
	case KindBool, KindInt8:
		return 1 + 1
	case KindInt16:
		return 1 + 2
	case KindInt32, KindFloat32:
		return 1 + 4
	case KindInt64, KindFloat64:
		return 1 + 8
	case KindBytes, KindString:
		return 1 + 4 + len(v.data)
	default:
		return 1
	}
}

// Record is one tuple mutation in a changelog.
type Record struct {
	TxnID  int64
	Op     Op
	Table  string
	Fields []Value
}

// EncodedSize returns the full wire size of the record, the payload length
// prefix included. Callers use it to size buffers exactly.
func (r *Record) EncodedSize() int {
	n := 4 + 8 + 1 + 4 + len(r.Table) + 2
	for i := range r.Fields {
		n += r.Fields[i].EncodedSize()
	}
	return n
}
