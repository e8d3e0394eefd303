package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Writer encodes primitives into a caller-owned byte buffer of fixed
// capacity, advancing a cursor from the start. The buffer is borrowed: the
// Writer never grows, frees, or retains it. When the buffer is full, writes
// fail with ErrBufferOverrun and the bytes already written stay intact.
type Writer struct {
	buf []byte
	pos int
}

// NewWriter returns a Writer positioned at the start of buf. len(buf) is the
// capacity; it never changes.
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf}
}

// ensure reports ErrBufferOverrun if n bytes do not fit at the current
// position. Every write checks before storing anything, so a failed call is
// a no-op.
func (w *Writer) ensure(n int) error {
	if w.pos+n > len(w.buf) {
		return fmt.Errorf("write %d bytes at offset %d, capacity %d: %w", n, w.pos, len(w.buf), ErrBufferOverrun)
	}
	return nil
}

// WriteByte stores a single raw byte.
func (w *Writer) WriteByte(b byte) error {
	if err := w.ensure(1); err != nil {
		return err
	}
	w.buf[w.pos] = b
	w.pos++
	return nil
}

// WriteInt8 stores one byte holding a signed integer.
func (w *Writer) WriteInt8(v int8) error {
	return w.WriteByte(byte(v))
}

// WriteInt16 stores two bytes, little-endian, as the value's unsigned bit
// pattern.
func (w *Writer) WriteInt16(v int16) error {
	if err := w.ensure(2); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(w.buf[w.pos:], uint16(v))
	w.pos += 2
	return nil
}

// WriteInt32 stores four bytes, little-endian.
func (w *Writer) WriteInt32(v int32) error {
	if err := w.ensure(4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(w.buf[w.pos:], uint32(v))
	w.pos += 4
	return nil
}

// WriteInt64 stores eight bytes, little-endian.
func (w *Writer) WriteInt64(v int64) error {
	if err := w.ensure(8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(w.buf[w.pos:], uint64(v))
	w.pos += 8
	return nil
}

// WriteBool stores exactly one byte: 1 for true, 0 for false.
func (w *Writer) WriteBool(v bool) error {
	b := byte(0)
	if v {
		b = 1
	}
	return w.WriteByte(b)
}

// WriteEnumByte stores a small enum discriminant in a single signed byte.
// Values outside the int8 range fail with ErrValueOutOfRange rather than
// truncating silently.
func (w *Writer) WriteEnumByte(v int) error {
	if v < math.MinInt8 || v > math.MaxInt8 {
		return fmt.Errorf("enum value %d does not fit one byte: %w", v, ErrValueOutOfRange)
	}
	return w.WriteByte(byte(int8(v)))
}

// WriteFloat32 stores the value's IEEE-754 bit pattern in four bytes,
// little-endian.
func (w *Writer) WriteFloat32(v float32) error {
	if err := w.ensure(4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(w.buf[w.pos:], math.Float32bits(v))
	w.pos += 4
	return nil
}

// WriteFloat64 stores the value's IEEE-754 bit pattern in eight bytes,
// little-endian.
func (w *Writer) WriteFloat64(v float64) error {
	if err := w.ensure(8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(w.buf[w.pos:], math.Float64bits(v))
	w.pos += 8
	return nil
}

// WriteString stores s as a signed 32-bit length followed by its bytes. The
// operation is atomic: on overrun neither the prefix nor any payload byte is
// written.
func (w *Writer) WriteString(s string) error {
	if err := w.prefix(len(s)); err != nil {
		return err
	}
	copy(w.buf[w.pos:], s)
	w.pos += len(s)
	return nil
}

// WriteBinary stores p as a signed 32-bit length followed by its bytes, with
// the same atomicity as WriteString.
func (w *Writer) WriteBinary(p []byte) error {
	if err := w.prefix(len(p)); err != nil {
		return err
	}
	copy(w.buf[w.pos:], p)
	w.pos += len(p)
	return nil
}

// prefix validates a length-prefixed write of n payload bytes and stores the
// prefix, leaving the cursor at the payload start.
func (w *Writer) prefix(n int) error {
	if n > MaxLen {
		return fmt.Errorf("payload of %d bytes exceeds length prefix range: %w", n, ErrValueOutOfRange)
	}
	if err := w.ensure(4 + n); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(w.buf[w.pos:], uint32(int32(n)))
	w.pos += 4
	return nil
}

// WriteBytes stores p verbatim with no length prefix.
func (w *Writer) WriteBytes(p []byte) error {
	if err := w.ensure(len(p)); err != nil {
		return err
	}
	copy(w.buf[w.pos:], p)
	w.pos += len(p)
	return nil
}

// WriteZeros stores n zero bytes. The region is cleared explicitly; the
// borrowed buffer may hold stale data from earlier use.
func (w *Writer) WriteZeros(n int) error {
	if n < 0 {
		return fmt.Errorf("zero fill of %d bytes: %w", n, ErrInvalidLength)
	}
	if err := w.ensure(n); err != nil {
		return err
	}
	region := w.buf[w.pos : w.pos+n]
	for i := range region {
		region[i] = 0
	}
	w.pos += n
	return nil
}

// ReserveBytes advances the cursor past n bytes without storing anything and
// returns the offset of the reserved region. The contents are unspecified
// until the caller patches them via SetPosition; reserve only what will be
// overwritten.
func (w *Writer) ReserveBytes(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("reservation of %d bytes: %w", n, ErrInvalidLength)
	}
	if err := w.ensure(n); err != nil {
		return 0, err
	}
	start := w.pos
	w.pos += n
	return start, nil
}

// Position returns the current cursor offset.
func (w *Writer) Position() int {
	return w.pos
}

// SetPosition moves the cursor to an absolute offset, typically to fill in a
// reserved slot and then jump back. Negative offsets fail with
// ErrRewindUnderflow, offsets past the capacity with ErrBufferOverrun.
func (w *Writer) SetPosition(pos int) error {
	if pos < 0 {
		return fmt.Errorf("set position %d: %w", pos, ErrRewindUnderflow)
	}
	if pos > len(w.buf) {
		return fmt.Errorf("set position %d, capacity %d: %w", pos, len(w.buf), ErrBufferOverrun)
	}
	w.pos = pos
	return nil
}

// Size returns the number of bytes written so far.
func (w *Writer) Size() int {
	return w.pos
}

// Bytes returns the written region buf[:Size()] without copying. The slice
// aliases the caller's buffer and is invalidated by further writes after a
// Reset.
func (w *Writer) Bytes() []byte {
	return w.buf[:w.pos]
}

// Capacity returns the fixed size of the underlying buffer.
func (w *Writer) Capacity() int {
	return len(w.buf)
}

// Reset moves the cursor back to the start so the buffer can be reused for
// another encode pass. The buffer contents are left as they are.
func (w *Writer) Reset() {
	w.pos = 0
}
