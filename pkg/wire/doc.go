// Package wire implements the flat binary encoding used by rowlog changelog
// records.
//
// The package provides two cursor types that operate over caller-owned byte
// regions: a Reader that decodes typed primitives from an immutable buffer,
// and a Writer that encodes them into a fixed-capacity mutable buffer.
// Neither type allocates, grows, frees, or retains the memory it is given;
// the caller is responsible for keeping the buffer alive for as long as the
// cursor is in use.
//
// # Encoding
//
// All multi-byte values are little-endian, independent of the host:
//
//   - Integers (16/32/64-bit) are signed two's-complement.
//   - Booleans are one byte: 1 for true, 0 for false. Any nonzero byte
//     decodes as true.
//   - Enum tags are one signed byte holding a small discriminant.
//   - Floats are stored as their IEEE-754 bit patterns, 32-bit values as a
//     uint32 and 64-bit values as a uint64.
//   - Variable-length data is a signed 32-bit length followed by exactly
//     that many raw bytes. A negative length is always invalid.
//
// No checksum, version tag, or schema is part of this layer; framing of that
// kind belongs to the callers (see package changelog).
//
// # Back-patching
//
// A Writer supports encoding values whose content is only known after later
// bytes have been written, such as a length prefix computed after its
// payload. The caller reserves a slot with ReserveBytes, writes the payload,
// then uses Position/SetPosition to return to the slot, fill it in, and
// restore the cursor:
//
//	slot, _ := w.ReserveBytes(4)
//	// ... write payload ...
//	end := w.Position()
//	w.SetPosition(slot)
//	w.WriteInt32(int32(end - slot - 4))
//	w.SetPosition(end)
//
// # Error Handling
//
// Every operation validates its bounds unconditionally and reports failures
// as wrapped sentinel errors (ErrBufferOverrun, ErrInvalidLength,
// ErrRewindUnderflow, ErrValueOutOfRange) that callers match with errors.Is.
// A failed operation is a no-op: the cursor does not move and, for writes,
// the buffer contents are untouched. There is no partial commit of a logical
// operation; a length-prefixed write either stores the prefix and the full
// payload or nothing.
//
// # Concurrency
//
// Reader and Writer instances are not safe for concurrent use. The intended
// pattern is a short-lived cursor scoped to a single encode or decode pass,
// with any sharing of the underlying buffer coordinated by the caller.
package wire
