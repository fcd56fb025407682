package volume

import (
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-fve/internal/binary"
	"github.com/robert-malhotra/go-fve/internal/guid"
)

/*
Volume Header Layout (512 bytes):
Offset  Size  Description
0x000   3     Jump instruction
0x003   8     Signature ("-FVE-FS-" or "MSWIN4.1")
0x00b   2     Sector size
0x00d   1     Sectors per cluster
0x00e   2     Reserved clusters
0x010   1     FAT count
0x011   2     Root entries
0x013   2     Number of sectors (16 bits)
0x015   1     Media descriptor
0x016   2     Sectors per FAT
0x018   2     Sectors per track
0x01a   2     Number of heads
0x01c   4     Hidden sectors
0x020   4     Number of sectors (32 bits)
0x024   4     Unknown
0x028   8     Number of sectors (64 bits)
0x030   8     MFT start cluster
0x038   8     Metadata LCN (Vista)
0x040   96    Unknown
0x0a0   16    Volume GUID
0x0b0   24    Metadata header offsets (3 x 8)
0x0c8   224   Unknown
0x1a8   16    To Go volume GUID
0x1b8   24    To Go metadata header offsets (3 x 8)
0x1d0   46    Unknown
0x1fe   2     Boot partition identifier (0xaa55)
*/

// Size is the on-disk size of the volume header.
const Size = 512

// Field offsets.
const (
	offSignature      = 0x003
	offGUID           = 0x0a0
	offMetadata       = 0x0b0
	offToGoGUID       = 0x1a8
	offToGoMetadata   = 0x1b8
	offBootIdentifier = 0x1fe
)

// Signatures recognised at offset 3.
var (
	Signature     = [8]byte{'-', 'F', 'V', 'E', '-', 'F', 'S', '-'}
	ToGoSignature = [8]byte{'M', 'S', 'W', 'I', 'N', '4', '.', '1'}
)

// BootIdentifier is the expected value of the last two bytes of the sector.
const BootIdentifier = 0xaa55

// ErrBufferTooSmall is returned when the buffer cannot hold a volume header.
var ErrBufferTooSmall = binary.ErrBufferTooSmall

// Kind identifies the flavour of volume from its signature.
type Kind int

const (
	KindUnknown Kind = iota
	KindBitLocker
	KindToGo
)

func (k Kind) String() string {
	switch k {
	case KindBitLocker:
		return "BitLocker"
	case KindToGo:
		return "BitLocker To Go"
	default:
		return "unknown"
	}
}

// Header is a decoded volume header.
type Header struct {
	Jump              [3]byte
	Signature         [8]byte
	SectorSize        uint16
	SectorsPerCluster uint8
	ReservedClusters  uint16
	FATCount          uint8
	RootEntries       uint16
	Sectors16         uint16
	MediaDescriptor   uint8
	SectorsPerFAT     uint16
	SectorsPerTrack   uint16
	Heads             uint16
	HiddenSectors     uint32
	Sectors32         uint32
	Sectors64         uint64
	MFTStartCluster   uint64
	MetadataLCN       uint64

	GUID            guid.GUID
	MetadataOffsets [3]uint64

	// Only meaningful when Kind() is KindToGo.
	ToGoGUID            guid.GUID
	ToGoMetadataOffsets [3]uint64

	BootPartitionIdentifier uint16
}

// Decode parses the volume header at the start of buf.
func Decode(buf []byte) (*Header, error) {
	r := binary.NewReader(buf)
	if err := r.Check(Size); err != nil {
		return nil, errors.Wrap(err, "volume header")
	}

	h := &Header{}
	// Every read below is inside the Size bytes checked above.
	r.ReadInto(h.Jump[:])
	r.ReadInto(h.Signature[:])
	h.SectorSize, _ = r.ReadUint16()
	h.SectorsPerCluster, _ = r.ReadUint8()
	h.ReservedClusters, _ = r.ReadUint16()
	h.FATCount, _ = r.ReadUint8()
	h.RootEntries, _ = r.ReadUint16()
	h.Sectors16, _ = r.ReadUint16()
	h.MediaDescriptor, _ = r.ReadUint8()
	h.SectorsPerFAT, _ = r.ReadUint16()
	h.SectorsPerTrack, _ = r.ReadUint16()
	h.Heads, _ = r.ReadUint16()
	h.HiddenSectors, _ = r.ReadUint32()
	h.Sectors32, _ = r.ReadUint32()
	r.Skip(4)
	h.Sectors64, _ = r.ReadUint64()
	h.MFTStartCluster, _ = r.ReadUint64()
	h.MetadataLCN, _ = r.ReadUint64()

	r.At(offGUID).ReadInto(h.GUID[:])
	mr := r.At(offMetadata)
	for i := range h.MetadataOffsets {
		h.MetadataOffsets[i], _ = mr.ReadUint64()
	}

	r.At(offToGoGUID).ReadInto(h.ToGoGUID[:])
	tr := r.At(offToGoMetadata)
	for i := range h.ToGoMetadataOffsets {
		h.ToGoMetadataOffsets[i], _ = tr.ReadUint64()
	}

	h.BootPartitionIdentifier, _ = r.At(offBootIdentifier).ReadUint16()

	return h, nil
}

// Kind reports the volume flavour from the signature.
func (h *Header) Kind() Kind {
	switch h.Signature {
	case Signature:
		return KindBitLocker
	case ToGoSignature:
		return KindToGo
	default:
		return KindUnknown
	}
}

// SectorCount returns the authoritative sector count: the widest of the
// three fields that is non-zero.
func (h *Header) SectorCount() uint64 {
	switch {
	case h.Sectors64 != 0:
		return h.Sectors64
	case h.Sectors32 != 0:
		return uint64(h.Sectors32)
	default:
		return uint64(h.Sectors16)
	}
}

// ClusterSize returns the cluster size in bytes.
func (h *Header) ClusterSize() uint64 {
	return uint64(h.SectorSize) * uint64(h.SectorsPerCluster)
}

// Candidates returns the metadata header offsets to try, in order.
// Zero entries are skipped. Offsets are not validated against the volume size.
func (h *Header) Candidates() []uint64 {
	table := h.MetadataOffsets
	if h.Kind() == KindToGo {
		table = h.ToGoMetadataOffsets
	}

	var out []uint64
	for _, off := range table {
		if off != 0 {
			out = append(out, off)
		}
	}

	if len(out) == 0 && h.MetadataLCN != 0 {
		// Vista: only the first copy is reachable from the boot sector.
		out = append(out, h.MetadataLCN*h.ClusterSize())
	}
	return out
}
