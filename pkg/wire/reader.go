package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Reader decodes primitives from a caller-owned byte buffer, advancing a
// cursor from the start toward the end. The buffer is borrowed: the Reader
// never copies, frees, or mutates it, and views returned by Next alias it
// directly.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// require reports ErrBufferOverrun if n bytes are not available at the
// current offset. Every read checks before committing, so failed operations
// leave the cursor unmoved.
func (r *Reader) require(n int) error {
	if r.off+n > len(r.buf) {
		return fmt.Errorf("read %d bytes at offset %d, buffer size %d: %w", n, r.off, len(r.buf), ErrBufferOverrun)
	}
	return nil
}

// ReadByte consumes and returns a single raw byte.
func (r *Reader) ReadByte() (byte, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

// ReadInt8 consumes one byte as a signed integer.
func (r *Reader) ReadInt8() (int8, error) {
	b, err := r.ReadByte()
	return int8(b), err
}

// ReadInt16 consumes two bytes as a signed little-endian integer.
func (r *Reader) ReadInt16() (int16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	v := int16(binary.LittleEndian.Uint16(r.buf[r.off:]))
	r.off += 2
	return v, nil
}

// ReadInt32 consumes four bytes as a signed little-endian integer.
func (r *Reader) ReadInt32() (int32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	v := int32(binary.LittleEndian.Uint32(r.buf[r.off:]))
	r.off += 4
	return v, nil
}

// ReadInt64 consumes eight bytes as a signed little-endian integer.
func (r *Reader) ReadInt64() (int64, error) {
	if err := r.require(8); err != nil {
		return 0, err
	}
	v := int64(binary.LittleEndian.Uint64(r.buf[r.off:]))
	r.off += 8
	return v, nil
}

// ReadBool consumes one byte; any nonzero value decodes as true.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	return b != 0, err
}

// ReadEnumByte consumes a single-byte enum discriminant. Range validation
// against a particular enum's values is up to the caller.
func (r *Reader) ReadEnumByte() (int8, error) {
	return r.ReadInt8()
}

// ReadFloat32 consumes four bytes as an IEEE-754 bit pattern. Values round
// trip bit-identically, NaN payloads included.
func (r *Reader) ReadFloat32() (float32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	v := math.Float32frombits(binary.LittleEndian.Uint32(r.buf[r.off:]))
	r.off += 4
	return v, nil
}

// ReadFloat64 consumes eight bytes as an IEEE-754 bit pattern.
func (r *Reader) ReadFloat64() (float64, error) {
	if err := r.require(8); err != nil {
		return 0, err
	}
	v := math.Float64frombits(binary.LittleEndian.Uint64(r.buf[r.off:]))
	r.off += 8
	return v, nil
}

// ReadString consumes a length-prefixed string: a signed 32-bit length
// followed by that many bytes. The operation is atomic; if the length is
// negative or the payload runs past the buffer, the cursor stays where it
// was, still pointing at the prefix.
func (r *Reader) ReadString() (string, error) {
	if err := r.require(4); err != nil {
		return "", err
	}
	n := int32(binary.LittleEndian.Uint32(r.buf[r.off:]))
	if n < 0 {
		return "", fmt.Errorf("string length %d at offset %d: %w", n, r.off, ErrInvalidLength)
	}
	if err := r.require(4 + int(n)); err != nil {
		return "", err
	}
	s := string(r.buf[r.off+4 : r.off+4+int(n)])
	r.off += 4 + int(n)
	return s, nil
}

// ReadBytes fills dst with the next len(dst) bytes.
func (r *Reader) ReadBytes(dst []byte) error {
	if err := r.require(len(dst)); err != nil {
		return err
	}
	copy(dst, r.buf[r.off:])
	r.off += len(dst)
	return nil
}

// Next consumes n bytes and returns them as a view into the underlying
// buffer without copying. The view is only valid for the buffer's lifetime
// and must be treated as read-only.
func (r *Reader) Next(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("view of %d bytes: %w", n, ErrInvalidLength)
	}
	if err := r.require(n); err != nil {
		return nil, err
	}
	v := r.buf[r.off : r.off+n]
	r.off += n
	return v, nil
}

// Skip consumes n bytes without decoding them.
func (r *Reader) Skip(n int) error {
	if n < 0 {
		return fmt.Errorf("skip of %d bytes: %w", n, ErrInvalidLength)
	}
	if err := r.require(n); err != nil {
		return err
	}
	r.off += n
	return nil
}

// Rewind moves the cursor back n bytes so previously consumed data can be
// read again. Rewinding past the start of the buffer fails with
// ErrRewindUnderflow and leaves the cursor unmoved.
func (r *Reader) Rewind(n int) error {
	if n < 0 {
		return fmt.Errorf("rewind of %d bytes: %w", n, ErrInvalidLength)
	}
	if n > r.off {
		return fmt.Errorf("rewind %d bytes at offset %d: %w", n, r.off, ErrRewindUnderflow)
	}
	r.off -= n
	return nil
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the number of bytes left to read.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}
