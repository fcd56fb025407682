package metadata

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSeven(t *testing.T) {
	want := &Header{
		Offset:    0,
		Signature: Signature,
		RawSize:   0x0100,
		Version:   VersionSeven,
		Fields: &ExtendedFields{
			Reserved1:           [4]byte{1, 2, 3, 4},
			EncryptedVolumeSize: 0x3b9ac00000,
			Reserved2:           [4]byte{5, 6, 7, 8},
			BackupSectors:       0x10,
		},
		MetadataOffsets:   [3]uint64{0x02100000, 0x0a0b1000, 0x12f20000},
		BootSectorsBackup: 0x02110000,
	}

	buf := want.Encode()
	require.Len(t, buf, Size)

	got, err := Decode(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, got.HasSignature())
	assert.Equal(t, uint32(0x1000), got.TotalSize())

	ext, ok := got.Extended()
	require.True(t, ok)
	assert.Equal(t, uint64(0x3b9ac00000), ext.EncryptedVolumeSize)
	assert.Equal(t, uint32(0x10), ext.BackupSectors)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, ext.Reserved())
}

func TestDecodeSevenFieldOffsets(t *testing.T) {
	h := &Header{
		Signature: Signature,
		Version:   VersionSeven,
		Fields:    &ExtendedFields{EncryptedVolumeSize: 0x1122334455667788, BackupSectors: 0xaabbccdd},
	}
	buf := h.Encode()

	assert.Equal(t, byte(0x88), buf[0x10])
	assert.Equal(t, byte(0x11), buf[0x17])
	assert.Equal(t, byte(0xdd), buf[0x1c])
}

func TestDecodeVista(t *testing.T) {
	reserved := make([]byte, 20)
	for i := range reserved {
		reserved[i] = byte(i + 1)
	}
	h := &Header{
		Signature: Signature,
		RawSize:   0x80,
		Version:   VersionVista,
		Fields:    &LegacyFields{Raw: reserved},
	}

	got, err := Decode(h.Encode(), 0)
	require.NoError(t, err)

	_, ok := got.Extended()
	assert.False(t, ok)
	assert.Equal(t, reserved, got.Fields.Reserved())
}

func TestDecodeUnknownVersionUsesLegacyLayout(t *testing.T) {
	h := &Header{Signature: Signature, Version: 7}
	got, err := Decode(h.Encode(), 0)
	require.NoError(t, err)

	legacy, ok := got.Fields.(*LegacyFields)
	require.True(t, ok)
	assert.Len(t, legacy.Raw, 20)
	assert.Equal(t, "unknown", got.Version.String())
}

func TestVersionLayouts(t *testing.T) {
	tests := []struct {
		version     Version
		reservedLen int
		extended    bool
	}{
		{VersionVista, 20, false},
		{VersionSeven, 8, true},
		{0, 20, false},
		{0xffff, 20, false},
	}

	for _, tt := range tests {
		l := layoutFor(tt.version)
		assert.Equal(t, tt.reservedLen, l.reservedLen, "version %d", tt.version)
		assert.Equal(t, tt.extended, l.extended, "version %d", tt.version)
		assert.Len(t, l.decode(make([]byte, variableBlockSize)).Reserved(), tt.reservedLen)
	}
}

func TestDecodeAtOffset(t *testing.T) {
	h := &Header{Signature: Signature, RawSize: 0x20, Version: VersionSeven}
	buf := append(make([]byte, 0x100), h.Encode()...)

	got, err := Decode(buf, 0x100)
	require.NoError(t, err)
	assert.Equal(t, 0x100, got.Offset)
	assert.Equal(t, 0x140, got.DatasetOffset())
	assert.True(t, got.HasSignature())
}

func TestDecodeBufferTooSmall(t *testing.T) {
	buf := make([]byte, Size)

	_, err := Decode(buf[:Size-1], 0)
	assert.True(t, errors.Is(err, ErrBufferTooSmall), "got %v", err)

	_, err = Decode(buf, 1)
	assert.True(t, errors.Is(err, ErrBufferTooSmall), "got %v", err)

	_, err = Decode(nil, 0)
	assert.True(t, errors.Is(err, ErrBufferTooSmall), "got %v", err)
}

func TestHasSignature(t *testing.T) {
	h := &Header{}
	assert.False(t, h.HasSignature())
}
