package metadata

import (
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-fve/internal/binary"
)

/*
Metadata Header Layout (0x40 bytes):
Offset  Size  Description
0x00    8     Signature ("-FVE-FS-")
0x08    2     Size, in 16-byte units (header + dataset)
0x0a    2     Version
0x0c    20    Version-dependent block (see versionLayouts)
0x20    24    Metadata header offsets (3 x 8)
0x38    8     Boot sectors backup address (MFT mirror on Vista)

Version 2 block:
0x0c    4     Reserved
0x10    8     Encrypted volume size
0x18    4     Reserved
0x1c    4     Number of boot sectors backed up
*/

// Size is the on-disk size of the metadata header. The dataset header
// starts immediately after it.
const Size = 0x40

// Signature opens every metadata header.
var Signature = [8]byte{'-', 'F', 'V', 'E', '-', 'F', 'S', '-'}

// ErrBufferTooSmall is returned when the buffer cannot hold a metadata header.
var ErrBufferTooSmall = binary.ErrBufferTooSmall

// Version is the metadata format version.
type Version uint16

const (
	VersionVista Version = 1
	VersionSeven Version = 2
)

func (v Version) String() string {
	switch v {
	case VersionVista:
		return "Vista"
	case VersionSeven:
		return "Seven"
	default:
		return "unknown"
	}
}

// Header is a decoded metadata header.
type Header struct {
	// Offset is the position of the header within the decoded buffer.
	Offset int

	Signature [8]byte

	// RawSize is the stored size field; see TotalSize.
	RawSize uint16
	Version Version

	// Fields holds the version-dependent block.
	Fields Fields

	MetadataOffsets   [3]uint64
	BootSectorsBackup uint64
}

// Decode parses the metadata header at off in buf.
func Decode(buf []byte, off int) (*Header, error) {
	r := binary.NewReader(buf).At(off)
	if err := r.Check(Size); err != nil {
		return nil, errors.Wrap(err, "metadata header")
	}

	h := &Header{Offset: off}
	r.ReadInto(h.Signature[:])
	h.RawSize, _ = r.ReadUint16()
	v, _ := r.ReadUint16()
	h.Version = Version(v)

	block, _ := r.ReadBytes(variableBlockSize)
	h.Fields = layoutFor(h.Version).decode(block)

	for i := range h.MetadataOffsets {
		h.MetadataOffsets[i], _ = r.ReadUint64()
	}
	h.BootSectorsBackup, _ = r.ReadUint64()

	return h, nil
}

// TotalSize returns the size in bytes of the header and its dataset.
// The stored value counts 16-byte units.
func (h *Header) TotalSize() uint32 {
	return uint32(h.RawSize) << 4
}

// HasSignature reports whether the header carries the FVE signature.
func (h *Header) HasSignature() bool {
	return h.Signature == Signature
}

// Extended returns the version-specific numeric fields, if the version
// carries them.
func (h *Header) Extended() (*ExtendedFields, bool) {
	ext, ok := h.Fields.(*ExtendedFields)
	return ext, ok
}

// DatasetOffset returns the position of the dataset header in the buffer.
func (h *Header) DatasetOffset() int {
	return h.Offset + Size
}

// Encode serializes the header into Size bytes.
func (h *Header) Encode() []byte {
	w := binary.NewWriter(Size)
	w.WriteBytes(h.Signature[:]).
		WriteUint16(h.RawSize).
		WriteUint16(uint16(h.Version))

	fields := h.Fields
	if fields == nil {
		fields = layoutFor(h.Version).decode(make([]byte, variableBlockSize))
	}
	w.WriteBytes(fields.encode())

	for _, off := range h.MetadataOffsets {
		w.WriteUint64(off)
	}
	w.WriteUint64(h.BootSectorsBackup)
	return w.Bytes()
}
