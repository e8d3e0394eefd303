// Package tuple defines the changelog record model for rowlog.
//
// A Record describes one mutation of a table row: the transaction that made
// it, the operation (insert, update, delete), the table name, and the row's
// typed field values. Records are the unit the changelog layer appends to
// and reads from segment files.
//
// # Record Format
//
// Records are serialized through package wire, little-endian throughout:
//
//	[PayloadLen(4)][TxnID(8)][Op(1)][Table(4+n)][FieldCount(2)][Fields...]
//
// Fields:
//   - PayloadLen: signed 32-bit count of the bytes that follow it. It is
//     back-patched after the body is encoded, so producers do not need to
//     know the record size up front.
//   - TxnID: signed 64-bit transaction identifier.
//   - Op: single-byte operation discriminant (Insert=1, Update=2, Delete=3).
//   - Table: length-prefixed table name.
//   - FieldCount: signed 16-bit number of field values.
//
// Each field value is a one-byte kind tag followed by its payload:
//
//	Bool=1(1B) Int8=2(1B) Int16=3(2B) Int32=4(4B) Int64=5(8B)
//	Float32=6(4B) Float64=7(8B) Bytes=8(4B+n) String=9(4B+n)
//
// Unknown kind tags and operation values are decode errors; there is no
// skip-and-continue, a record either decodes fully or not at all.
//
// # Usage
//
//	rec := &tuple.Record{
//	    TxnID: 42,
//	    Op:    tuple.OpInsert,
//	    Table: "users",
//	    Fields: []tuple.Value{
//	        tuple.String("ada"),
//	        tuple.Int64(1815),
//	    },
//	}
//
//	buf := make([]byte, rec.EncodedSize())
//	w := wire.NewWriter(buf)
//	if err := tuple.EncodeRecord(w, rec); err != nil {
//	    return err
//	}
//
//	got, err := tuple.DecodeRecord(wire.NewReader(w.Bytes()))
//	if err != nil {
//	    return err
//	}
//
// # Memory
//
// Decoding aliases where it can: Bytes and String field payloads reference
// the reader's buffer rather than copying it. A decoded Record is only valid
// while that buffer is; callers that reuse buffers must copy what they keep.
package tuple
