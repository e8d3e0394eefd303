package wire

import "errors"

// Sentinel errors reported by Reader and Writer operations. Failures are
// wrapped with positional context, so match them with errors.Is.
var (
	// ErrBufferOverrun indicates an operation would move a cursor past the
	// end of its buffer.
	ErrBufferOverrun = errors.New("wire: buffer overrun")

	// ErrInvalidLength indicates a negative length, either decoded from a
	// length prefix or passed as a size argument.
	ErrInvalidLength = errors.New("wire: invalid length")

	// ErrRewindUnderflow indicates a rewind past the start of the buffer.
	ErrRewindUnderflow = errors.New("wire: rewind underflow")

	// ErrValueOutOfRange indicates a value that does not fit its encoded
	// form, such as an enum tag outside the single-byte range.
	ErrValueOutOfRange = errors.New("wire: value out of range")
)

// MaxLen is the largest length a length-prefixed field can carry. Lengths
// are encoded as signed 32-bit integers, so this caps both strings and
// binary payloads.
const MaxLen = 1<<31 - 1
