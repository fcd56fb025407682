package fve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-fve/internal/binary"
	"github.com/robert-malhotra/go-fve/internal/dataset"
	"github.com/robert-malhotra/go-fve/internal/datum"
	"github.com/robert-malhotra/go-fve/internal/metadata"
	"github.com/robert-malhotra/go-fve/internal/volume"
)

// metadataBlock lays out a Seven metadata header, the dataset header and
// the given records. bufLen pads or truncates the result.
func metadataBlock(t *testing.T, ds dataset.Header, bufLen int, records ...datum.Header) []byte {
	t.Helper()

	mh := metadata.Header{
		Signature: metadata.Signature,
		RawSize:   uint16((metadata.Size + ds.Size + 15) >> 4),
		Version:   metadata.VersionSeven,
		Fields:    &metadata.ExtendedFields{EncryptedVolumeSize: 1 << 30, BackupSectors: 16},
	}

	w := binary.NewWriter(bufLen)
	w.WriteBytes(mh.Encode()).WriteBytes(ds.Encode())
	w.Seek(metadata.Size + int(ds.HeaderSize))
	for _, rec := range records {
		w.WriteBytes(rec.Encode())
		if n := int(rec.Size) - datum.HeaderSize; n > 0 {
			w.WriteZeros(n)
		}
	}
	return w.Bytes()[:bufLen]
}

var fixedTime = time.Date(2016, 3, 12, 10, 20, 0, 0, time.UTC)

// healthyDataset holds two records in a 0x48-byte dataset.
func healthyDataset(t *testing.T) []byte {
	t.Helper()
	ds := dataset.Header{
		Size:       0x48,
		Unknown:    1,
		HeaderSize: dataset.HeaderSize,
		CopySize:   0x60,
		Algorithm:  dataset.AlgAESXTS128,
		Timestamp:  dataset.TimeToFiletime(fixedTime),
	}
	return metadataBlock(t, ds, metadata.Size+0x60,
		datum.Header{Size: 0x08, EntryType: datum.EntryProperty, ValueType: datum.ValueErased},
		datum.Header{Size: 0x10, EntryType: datum.EntryVMK, ValueType: datum.ValueVMK},
	)
}

var copyOffsets = [3]uint64{0x1000, 0x2000, 0x3000}

// volumeImage builds an image with a BitLocker volume header and one block
// per copy offset. A nil block leaves the copy zeroed.
func volumeImage(t *testing.T, blocks ...[]byte) []byte {
	t.Helper()
	require.LessOrEqual(t, len(blocks), len(copyOffsets))

	h := volume.Header{
		Jump:                    [3]byte{0xeb, 0x58, 0x90},
		Signature:               volume.Signature,
		SectorSize:              512,
		SectorsPerCluster:       8,
		Sectors64:               0x20,
		MetadataOffsets:         copyOffsets,
		BootPartitionIdentifier: volume.BootIdentifier,
	}

	w := binary.NewWriter(0x4000)
	w.WriteBytes(h.Encode())
	for i, b := range blocks {
		w.Seek(int(copyOffsets[i])).WriteBytes(b)
	}
	return w.Bytes()
}
