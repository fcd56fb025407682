// Package dataset decodes the FVE dataset header and delimits the region of
// the metadata buffer that holds its datum records.
package dataset

import (
	"time"

	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-fve/internal/binary"
	"github.com/robert-malhotra/go-fve/internal/guid"
)

/*
Dataset Header Layout (0x30 bytes):
Offset  Size  Description
0x00    4     Size (header + records)
0x04    4     Unknown (always 1)
0x08    4     Header size (always 0x30)
0x0c    4     Copy size
0x10    16    Dataset GUID
0x20    4     Next counter
0x24    2     Encryption algorithm
0x26    2     Trash
0x28    8     Timestamp (100ns ticks since 1601-01-01 UTC)
*/

// HeaderSize is the on-disk size of the dataset header.
const HeaderSize = 0x30

// MinRecordSpace is the least room that must follow the header for the
// dataset to hold one record header.
const MinRecordSpace = 8

var (
	// ErrBufferTooSmall is returned when the buffer cannot hold a dataset header.
	ErrBufferTooSmall = binary.ErrBufferTooSmall

	// ErrInvalidDataset is returned when the size fields are inconsistent.
	ErrInvalidDataset = errors.New("invalid dataset")
)

// Header is a decoded dataset header.
type Header struct {
	Size        uint32
	Unknown     uint32
	HeaderSize  uint32
	CopySize    uint32
	GUID        guid.GUID
	NextCounter uint32
	Algorithm   Algorithm
	Trash       uint16
	Timestamp   uint64
}

// Decode parses the dataset header at off in buf.
func Decode(buf []byte, off int) (*Header, error) {
	r := binary.NewReader(buf).At(off)
	if err := r.Check(HeaderSize); err != nil {
		return nil, errors.Wrap(err, "dataset header")
	}

	h := &Header{}
	h.Size, _ = r.ReadUint32()
	h.Unknown, _ = r.ReadUint32()
	h.HeaderSize, _ = r.ReadUint32()
	h.CopySize, _ = r.ReadUint32()
	r.ReadInto(h.GUID[:])
	h.NextCounter, _ = r.ReadUint32()
	alg, _ := r.ReadUint16()
	h.Algorithm = Algorithm(alg)
	h.Trash, _ = r.ReadUint16()
	h.Timestamp, _ = r.ReadUint64()

	return h, nil
}

// Validate checks the size invariants that make a dataset walkable.
// The comparisons are ordered so that copy_size - header_size never wraps.
func (h *Header) Validate() error {
	switch {
	case h.CopySize < h.HeaderSize:
		return errors.Wrapf(ErrInvalidDataset, "copy size %#x below header size %#x", h.CopySize, h.HeaderSize)
	case h.Size > h.CopySize:
		return errors.Wrapf(ErrInvalidDataset, "size %#x exceeds copy size %#x", h.Size, h.CopySize)
	case h.CopySize-h.HeaderSize < MinRecordSpace:
		return errors.Wrapf(ErrInvalidDataset, "copy size %#x leaves %d bytes after header size %#x",
			h.CopySize, h.CopySize-h.HeaderSize, h.HeaderSize)
	}
	return nil
}

// Seconds between 1601-01-01 and 1970-01-01.
const ntfsEpochOffset = 11644473600

// Time converts the timestamp to UTC.
func (h *Header) Time() time.Time {
	return FiletimeToTime(h.Timestamp)
}

// Cipher returns the display name of the volume encryption algorithm.
func (h *Header) Cipher() string {
	return h.Algorithm.String()
}

// FiletimeToTime converts 100ns ticks since 1601-01-01 to a UTC time.
func FiletimeToTime(ticks uint64) time.Time {
	sec := int64(ticks/10_000_000) - ntfsEpochOffset
	nsec := int64(ticks%10_000_000) * 100
	return time.Unix(sec, nsec).UTC()
}

// TimeToFiletime is the inverse of FiletimeToTime for times after 1601.
func TimeToFiletime(t time.Time) uint64 {
	return uint64(t.Unix()+ntfsEpochOffset)*10_000_000 + uint64(t.Nanosecond()/100)
}

// Encode serializes the header into HeaderSize bytes.
func (h *Header) Encode() []byte {
	w := binary.NewWriter(HeaderSize)
	w.WriteUint32(h.Size).
		WriteUint32(h.Unknown).
		WriteUint32(h.HeaderSize).
		WriteUint32(h.CopySize).
		WriteBytes(h.GUID[:]).
		WriteUint32(h.NextCounter).
		WriteUint16(uint16(h.Algorithm)).
		WriteUint16(h.Trash).
		WriteUint64(h.Timestamp)
	return w.Bytes()
}
