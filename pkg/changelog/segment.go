package changelog

import (
	"fmt"

	"github.com/segmentio/ksuid"

	"github.com/rowlog/rowlog/pkg/wire"
)

const (
	// Magic identifies a rowlog segment file.
	Magic = "RWLG"

	// Version is the current segment format version.
	Version = 1

	headerSize   = 36
	reservedSize = 10
	sessionSize  = 20
)

// Header is the fixed-size prologue of every segment file.
type Header struct {
	Version byte
	Flags   byte
	Session ksuid.KSUID
}

func encodeHeader(h Header) ([]byte, error) {
	buf := make([]byte, headerSize)
	w := wire.NewWriter(buf)
	if err := w.WriteBytes([]byte(Magic)); err != nil {
		return nil, err
	}
	if err := w.WriteByte(h.Version); err != nil {
		return nil, err
	}
	if err := w.WriteByte(h.Flags); err != nil {
		return nil, err
	}
	if err := w.WriteZeros(reservedSize); err != nil {
		return nil, err
	}
	if err := w.WriteBytes(h.Session.Bytes()); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func decodeHeader(buf []byte) (Header, error) {
	r := wire.NewReader(buf)

	magic, err := r.Next(len(Magic))
	if err != nil {
		return Header{}, err
	}
	if string(magic) != Magic {
		return Header{}, fmt.Errorf("segment starts with %q: %w", magic, ErrBadMagic)
	}

	version, err := r.ReadByte()
	if err != nil {
		return Header{}, err
	}
	if version != Version {
		return Header{}, fmt.Errorf("segment version %d: %w", version, ErrVersion)
	}

	flags, err := r.ReadByte()
	if err != nil {
		return Header{}, err
	}
	if err := r.Skip(reservedSize); err != nil {
		return Header{}, err
	}

	var raw [sessionSize]byte
	if err := r.ReadBytes(raw[:]); err != nil {
		return Header{}, err
	}
	session, err := ksuid.FromBytes(raw[:])
	if err != nil {
		return Header{}, fmt.Errorf("segment session id: %w", err)
	}

	return Header{Version: version, Flags: flags, Session: session}, nil
}
