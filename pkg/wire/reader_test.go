package wire

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_Primitives(t *testing.T) {
	t.Run("byte", func(t *testing.T) {
		r := NewReader([]byte{0xAB})
		v, err := r.ReadByte()
		require.NoError(t, err)
		assert.Equal(t, byte(0xAB), v)
		assert.Equal(t, 1, r.Offset())
	})

	t.Run("int8", func(t *testing.T) {
		r := NewReader([]byte{0x80})
		v, err := r.ReadInt8()
		require.NoError(t, err)
		assert.Equal(t, int8(-128), v)
	})

	t.Run("int16", func(t *testing.T) {
		r := NewReader([]byte{0x34, 0x12})
		v, err := r.ReadInt16()
		require.NoError(t, err)
		assert.Equal(t, int16(0x1234), v)
		assert.Equal(t, 2, r.Offset())
	})

	t.Run("int32", func(t *testing.T) {
		r := NewReader([]byte{0x78, 0x56, 0x34, 0x12})
		v, err := r.ReadInt32()
		require.NoError(t, err)
		assert.Equal(t, int32(0x12345678), v)
	})

	t.Run("int64", func(t *testing.T) {
		r := NewReader([]byte{0xEF, 0xCD, 0xAB, 0x89, 0x67, 0x45, 0x23, 0x01})
		v, err := r.ReadInt64()
		require.NoError(t, err)
		assert.Equal(t, int64(0x0123456789ABCDEF), v)
	})

	t.Run("bool", func(t *testing.T) {
		r := NewReader([]byte{1, 0, 42})
		v, err := r.ReadBool()
		require.NoError(t, err)
		assert.True(t, v)

		v, err = r.ReadBool()
		require.NoError(t, err)
		assert.False(t, v)

		// Any nonzero byte decodes as true.
		v, err = r.ReadBool()
		require.NoError(t, err)
		assert.True(t, v)
	})

	t.Run("enum byte", func(t *testing.T) {
		r := NewReader([]byte{0xFF, 0x03})
		v, err := r.ReadEnumByte()
		require.NoError(t, err)
		assert.Equal(t, int8(-1), v)

		v, err = r.ReadEnumByte()
		require.NoError(t, err)
		assert.Equal(t, int8(3), v)
	})

	t.Run("float32", func(t *testing.T) {
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, math.Float32bits(1.5))
		r := NewReader(buf)
		v, err := r.ReadFloat32()
		require.NoError(t, err)
		assert.Equal(t, float32(1.5), v)
	})

	t.Run("float64", func(t *testing.T) {
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, math.Float64bits(-2.25))
		r := NewReader(buf)
		v, err := r.ReadFloat64()
		require.NoError(t, err)
		assert.Equal(t, -2.25, v)
	})
}

func TestReader_String(t *testing.T) {
	t.Run("consumes length plus payload", func(t *testing.T) {
		r := NewReader([]byte{5, 0, 0, 0, 'h', 'e', 'l', 'l', 'o'})
		s, err := r.ReadString()
		require.NoError(t, err)
		assert.Equal(t, "hello", s)
		assert.Equal(t, 9, r.Offset())
		assert.Equal(t, 0, r.Remaining())
	})

	t.Run("empty string", func(t *testing.T) {
		r := NewReader([]byte{0, 0, 0, 0})
		s, err := r.ReadString()
		require.NoError(t, err)
		assert.Equal(t, "", s)
		assert.Equal(t, 4, r.Offset())
	})

	t.Run("negative length is rejected", func(t *testing.T) {
		r := NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF, 'x'})
		_, err := r.ReadString()
		require.ErrorIs(t, err, ErrInvalidLength)
		// The failed read must not consume the prefix.
		assert.Equal(t, 0, r.Offset())
	})

	t.Run("truncated payload leaves cursor at prefix", func(t *testing.T) {
		r := NewReader([]byte{5, 0, 0, 0, 'h', 'e'})
		_, err := r.ReadString()
		require.ErrorIs(t, err, ErrBufferOverrun)
		assert.Equal(t, 0, r.Offset())
	})

	t.Run("truncated prefix", func(t *testing.T) {
		r := NewReader([]byte{5, 0})
		_, err := r.ReadString()
		require.ErrorIs(t, err, ErrBufferOverrun)
		assert.Equal(t, 0, r.Offset())
	})
}

func TestReader_Overrun(t *testing.T) {
	// Every read must fail when the buffer is one byte short of the value
	// width, without moving the cursor.
	ops := []struct {
		name  string
		width int
		op    func(*Reader) error
	}{
		{"byte", 1, func(r *Reader) error { _, err := r.ReadByte(); return err }},
		{"int8", 1, func(r *Reader) error { _, err := r.ReadInt8(); return err }},
		{"int16", 2, func(r *Reader) error { _, err := r.ReadInt16(); return err }},
		{"int32", 4, func(r *Reader) error { _, err := r.ReadInt32(); return err }},
		{"int64", 8, func(r *Reader) error { _, err := r.ReadInt64(); return err }},
		{"bool", 1, func(r *Reader) error { _, err := r.ReadBool(); return err }},
		{"enum", 1, func(r *Reader) error { _, err := r.ReadEnumByte(); return err }},
		{"float32", 4, func(r *Reader) error { _, err := r.ReadFloat32(); return err }},
		{"float64", 8, func(r *Reader) error { _, err := r.ReadFloat64(); return err }},
		{"string", 4, func(r *Reader) error { _, err := r.ReadString(); return err }},
		{"bytes", 3, func(r *Reader) error { return r.ReadBytes(make([]byte, 3)) }},
		{"view", 3, func(r *Reader) error { _, err := r.Next(3); return err }},
		{"skip", 3, func(r *Reader) error { return r.Skip(3) }},
	}

	for _, tc := range ops {
		t.Run(tc.name, func(t *testing.T) {
			r := NewReader(make([]byte, tc.width-1))
			err := tc.op(r)
			require.ErrorIs(t, err, ErrBufferOverrun)
			assert.Equal(t, 0, r.Offset())
		})
	}
}

func TestReader_BytesAndViews(t *testing.T) {
	t.Run("read into caller storage", func(t *testing.T) {
		r := NewReader([]byte{1, 2, 3, 4, 5})
		dst := make([]byte, 3)
		require.NoError(t, r.ReadBytes(dst))
		assert.Equal(t, []byte{1, 2, 3}, dst)
		assert.Equal(t, 3, r.Offset())
		assert.Equal(t, 2, r.Remaining())
	})

	t.Run("view aliases the buffer", func(t *testing.T) {
		buf := []byte{1, 2, 3, 4, 5}
		r := NewReader(buf)
		require.NoError(t, r.Skip(1))

		v, err := r.Next(3)
		require.NoError(t, err)
		assert.Equal(t, []byte{2, 3, 4}, v)
		assert.Equal(t, 4, r.Offset())

		// No copy: the view must observe writes to the backing buffer.
		buf[2] = 0xEE
		assert.Equal(t, []byte{2, 0xEE, 4}, v)
	})

	t.Run("empty view", func(t *testing.T) {
		r := NewReader([]byte{1})
		v, err := r.Next(0)
		require.NoError(t, err)
		assert.Len(t, v, 0)
		assert.Equal(t, 0, r.Offset())
	})

	t.Run("negative sizes are rejected", func(t *testing.T) {
		r := NewReader([]byte{1, 2, 3})
		_, err := r.Next(-1)
		require.ErrorIs(t, err, ErrInvalidLength)
		require.ErrorIs(t, r.Skip(-1), ErrInvalidLength)
		assert.Equal(t, 0, r.Offset())
	})
}

func TestReader_RewindAndReread(t *testing.T) {
	t.Run("rewound bytes decode identically", func(t *testing.T) {
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, uint64(987654321))
		r := NewReader(buf)

		first, err := r.ReadInt64()
		require.NoError(t, err)
		require.NoError(t, r.Rewind(8))
		assert.Equal(t, 0, r.Offset())

		second, err := r.ReadInt64()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("rewind past start underflows", func(t *testing.T) {
		r := NewReader([]byte{1, 2, 3, 4})
		_, err := r.ReadInt16()
		require.NoError(t, err)

		err = r.Rewind(3)
		require.ErrorIs(t, err, ErrRewindUnderflow)
		// A failed rewind leaves the cursor where it was.
		assert.Equal(t, 2, r.Offset())
	})

	t.Run("negative rewind is rejected", func(t *testing.T) {
		r := NewReader([]byte{1, 2})
		require.ErrorIs(t, r.Rewind(-1), ErrInvalidLength)
	})
}
