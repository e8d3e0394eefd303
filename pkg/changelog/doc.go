// Package changelog reads and writes rowlog segment files.
//
// A segment is an append-only file holding a fixed header followed by
// length-prefixed tuple records (see package tuple). The header carries the
// file-level framing that the record encoding itself stays free of:
//
//	[Magic "RWLG"(4)][Version(1)][Flags(1)][Reserved(10)][SessionID(20)]
//
// Fields:
//   - Magic: the four bytes 'R' 'W' 'L' 'G'.
//   - Version: format version, currently 1.
//   - Flags: reserved, currently 0.
//   - Reserved: ten zero bytes for future use.
//   - SessionID: a KSUID naming the producing session, so segments from
//     different runs can be told apart and ordered by creation time.
//
// The Writer appends records through a reusable scratch buffer, flushing
// through a buffered writer with the same fsync policy as any write-ahead
// log: immediately when FsyncInterval is zero, otherwise on a timer. The
// Reader streams records back and distinguishes a clean end of file (io.EOF)
// from a record cut off mid-write (ErrTruncated), which is what a crashed
// producer leaves behind.
package changelog
