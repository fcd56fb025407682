package metadata

import "github.com/robert-malhotra/go-fve/internal/binary"

// variableBlockSize is the length of the version-dependent block.
const variableBlockSize = 20

// Fields is the version-dependent part of a metadata header.
// It is either *LegacyFields or *ExtendedFields.
type Fields interface {
	// Reserved returns the opaque bytes of the block.
	Reserved() []byte

	encode() []byte
}

// LegacyFields is a block made only of reserved bytes.
type LegacyFields struct {
	Raw []byte
}

func (f *LegacyFields) Reserved() []byte { return f.Raw }

func (f *LegacyFields) encode() []byte {
	out := make([]byte, variableBlockSize)
	copy(out, f.Raw)
	return out
}

// ExtendedFields is the Windows 7 block.
type ExtendedFields struct {
	Reserved1           [4]byte
	EncryptedVolumeSize uint64
	Reserved2           [4]byte
	BackupSectors       uint32
}

func (f *ExtendedFields) Reserved() []byte {
	return append(f.Reserved1[:len(f.Reserved1):len(f.Reserved1)], f.Reserved2[:]...)
}

func (f *ExtendedFields) encode() []byte {
	w := binary.NewWriter(variableBlockSize)
	w.WriteBytes(f.Reserved1[:]).
		WriteUint64(f.EncryptedVolumeSize).
		WriteBytes(f.Reserved2[:]).
		WriteUint32(f.BackupSectors)
	return w.Bytes()
}

// versionLayout describes the version-dependent block of one version.
type versionLayout struct {
	// reservedLen is the number of opaque bytes in the block.
	reservedLen int
	// extended is set when the block carries the volume size and backup
	// sector count.
	extended bool
}

var versionLayouts = map[Version]versionLayout{
	VersionVista: {reservedLen: 20},
	VersionSeven: {reservedLen: 8, extended: true},
}

var defaultLayout = versionLayout{reservedLen: 20}

func layoutFor(v Version) versionLayout {
	if l, ok := versionLayouts[v]; ok {
		return l
	}
	return defaultLayout
}

// decode splits a variableBlockSize block according to the layout.
func (l versionLayout) decode(block []byte) Fields {
	if !l.extended {
		raw := make([]byte, l.reservedLen)
		copy(raw, block)
		return &LegacyFields{Raw: raw}
	}

	f := &ExtendedFields{}
	r := binary.NewReader(block)
	r.ReadInto(f.Reserved1[:])
	f.EncryptedVolumeSize, _ = r.ReadUint64()
	r.ReadInto(f.Reserved2[:])
	f.BackupSectors, _ = r.ReadUint32()
	return f
}
