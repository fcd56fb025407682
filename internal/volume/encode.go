package volume

import "github.com/robert-malhotra/go-fve/internal/binary"

// Encode serializes the header into a 512-byte sector.
func (h *Header) Encode() []byte {
	w := binary.NewWriter(Size)
	w.WriteBytes(h.Jump[:]).
		WriteBytes(h.Signature[:]).
		WriteUint16(h.SectorSize).
		WriteUint8(h.SectorsPerCluster).
		WriteUint16(h.ReservedClusters).
		WriteUint8(h.FATCount).
		WriteUint16(h.RootEntries).
		WriteUint16(h.Sectors16).
		WriteUint8(h.MediaDescriptor).
		WriteUint16(h.SectorsPerFAT).
		WriteUint16(h.SectorsPerTrack).
		WriteUint16(h.Heads).
		WriteUint32(h.HiddenSectors).
		WriteUint32(h.Sectors32).
		WriteZeros(4).
		WriteUint64(h.Sectors64).
		WriteUint64(h.MFTStartCluster).
		WriteUint64(h.MetadataLCN)

	w.Seek(offGUID).WriteBytes(h.GUID[:])
	for _, off := range h.MetadataOffsets {
		w.WriteUint64(off)
	}

	w.Seek(offToGoGUID).WriteBytes(h.ToGoGUID[:])
	for _, off := range h.ToGoMetadataOffsets {
		w.WriteUint64(off)
	}

	w.Seek(offBootIdentifier).WriteUint16(h.BootPartitionIdentifier)
	return w.Bytes()
}
