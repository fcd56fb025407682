// Package render prints decoded FVE structures through a logrus logger.
//
// Every method takes the level to log at, so one renderer can send headers
// to info and record dumps to debug without touching global state.
package render

import (
	"encoding/hex"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/robert-malhotra/go-fve/internal/dataset"
	"github.com/robert-malhotra/go-fve/internal/datum"
	"github.com/robert-malhotra/go-fve/internal/metadata"
	"github.com/robert-malhotra/go-fve/internal/volume"
)

// Renderer formats structures as log lines.
type Renderer struct {
	log     *logrus.Logger
	payload bool
}

// New returns a renderer writing to log. A nil logger uses the logrus
// standard logger.
func New(log *logrus.Logger) *Renderer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Renderer{log: log}
}

// WithPayload makes Record dump the raw bytes of each record.
func (r *Renderer) WithPayload(on bool) *Renderer {
	return &Renderer{log: r.log, payload: on}
}

func (r *Renderer) printf(level logrus.Level, format string, args ...interface{}) {
	r.log.Logf(level, format, args...)
}

func (r *Renderer) hexdump(level logrus.Level, b []byte) {
	if len(b) == 0 || !r.log.IsLevelEnabled(level) {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(hex.Dump(b), "\n"), "\n") {
		r.printf(level, "    %s", line)
	}
}

// VolumeHeader prints the volume header.
func (r *Renderer) VolumeHeader(level logrus.Level, h *volume.Header) {
	r.printf(level, "=====[ Volume header informations ]=====")
	r.printf(level, "  Signature: '%.8s' (%s)", h.Signature[:], h.Kind())
	r.printf(level, "  Sector size: %#04x (%d) bytes", h.SectorSize, h.SectorSize)
	r.printf(level, "  Sector per cluster: %#02x (%d) bytes", h.SectorsPerCluster, h.SectorsPerCluster)
	r.printf(level, "  Reserved clusters: %#04x (%d) bytes", h.ReservedClusters, h.ReservedClusters)
	r.printf(level, "  Fat count: %#02x (%d) bytes", h.FATCount, h.FATCount)
	r.printf(level, "  Root entries: %#04x (%d) bytes", h.RootEntries, h.RootEntries)
	r.printf(level, "  Number of sectors (16 bits): %#04x (%d) bytes", h.Sectors16, h.Sectors16)
	r.printf(level, "  Media descriptor: %#02x (%d) bytes", h.MediaDescriptor, h.MediaDescriptor)
	r.printf(level, "  Sectors per fat: %#04x (%d) bytes", h.SectorsPerFAT, h.SectorsPerFAT)
	r.printf(level, "  Hidden sectors: %#08x (%d) bytes", h.HiddenSectors, h.HiddenSectors)
	r.printf(level, "  Number of sectors (32 bits): %#08x (%d) bytes", h.Sectors32, h.Sectors32)
	r.printf(level, "  Number of sectors (64 bits): %#016x (%d) bytes", h.Sectors64, h.Sectors64)
	r.printf(level, "  MFT start cluster: %#016x (%d) bytes", h.MFTStartCluster, h.MFTStartCluster)
	r.printf(level, "  Metadata Lcn: %#016x (%d) bytes", h.MetadataLCN, h.MetadataLCN)
	r.printf(level, "  Volume GUID: '%s'", h.GUID)
	r.printf(level, "  First metadata header offset:  %#016x", h.MetadataOffsets[0])
	r.printf(level, "  Second metadata header offset: %#016x", h.MetadataOffsets[1])
	r.printf(level, "  Third metadata header offset:  %#016x", h.MetadataOffsets[2])
	if h.Kind() == volume.KindToGo {
		r.printf(level, "  To Go GUID: '%s'", h.ToGoGUID)
		for i, off := range h.ToGoMetadataOffsets {
			r.printf(level, "  To Go metadata header offset %d: %#016x", i+1, off)
		}
	}
	r.printf(level, "  Boot Partition Identifier: '%#04x'", h.BootPartitionIdentifier)
	r.printf(level, "========================================")
}

// MetadataHeader prints the metadata header. The dataset header is printed
// separately with Dataset.
func (r *Renderer) MetadataHeader(level logrus.Level, h *metadata.Header) {
	r.printf(level, "=====================[ BitLocker metadata informations ]=====================")
	r.printf(level, "  Signature: '%.8s'", h.Signature[:])
	r.printf(level, "  Total Size: %#04x (%d) bytes (including signature and data)", h.TotalSize(), h.TotalSize())
	r.printf(level, "  Version: %d (%s)", h.Version, h.Version)

	switch f := h.Fields.(type) {
	case *metadata.ExtendedFields:
		r.hexdump(level, f.Reserved1[:])
		r.printf(level, "  Encrypted volume size: %d bytes (%#x), ~%d MB",
			f.EncryptedVolumeSize, f.EncryptedVolumeSize, f.EncryptedVolumeSize/(1024*1024))
		r.hexdump(level, f.Reserved2[:])
		r.printf(level, "  Number of boot sectors backuped: %d sectors (%#x)", f.BackupSectors, f.BackupSectors)
	case *metadata.LegacyFields:
		r.hexdump(level, f.Raw)
	}

	r.printf(level, "  First metadata header offset:  %#x", h.MetadataOffsets[0])
	r.printf(level, "  Second metadata header offset: %#x", h.MetadataOffsets[1])
	r.printf(level, "  Third metadata header offset:  %#x", h.MetadataOffsets[2])
	r.printf(level, "  Boot sectors backup address:   %#x", h.BootSectorsBackup)
}

// Footer closes the block opened by MetadataHeader.
func (r *Renderer) Footer(level logrus.Level) {
	r.printf(level, "=============================================================================")
}

// Dataset prints the dataset header.
func (r *Renderer) Dataset(level logrus.Level, h *dataset.Header) {
	ts := h.Time()
	r.printf(level, "  ----------------------------{ Dataset header }----------------------------")
	r.printf(level, "    Dataset size: %#08x (%d) bytes (including data)", h.Size, h.Size)
	r.printf(level, "    Unknown data: %#08x (always 0x00000001)", h.Unknown)
	r.printf(level, "    Dataset header size: %#08x (always 0x00000030)", h.HeaderSize)
	r.printf(level, "    Dataset copy size: %#08x (%d) bytes", h.CopySize, h.CopySize)
	r.printf(level, "    Dataset GUID: '%s'", h.GUID)
	r.printf(level, "    Next counter: %d", h.NextCounter)
	r.printf(level, "    Encryption Type: %s (%#x)", h.Algorithm, uint16(h.Algorithm))
	r.printf(level, "    Epoch Timestamp: %d sec, that to say %s", ts.Unix(), ts.Format("Mon Jan _2 15:04:05 2006"))
	r.printf(level, "  --------------------------------------------------------------------------")
}

// Record prints one datum record. index is the 1-based position in the walk.
// raw holds the record bytes and is only dumped when payload output is on.
func (r *Renderer) Record(level logrus.Level, index int, rec datum.Record, raw []byte) {
	r.printf(level, "")
	r.printf(level, "======[ Datum n°%d informations ]======", index)
	r.printf(level, "  Offset: %#x", rec.Offset)
	r.printf(level, "  Total size: %#04x (%d) bytes", rec.Size, rec.Size)
	r.printf(level, "  Entry type: %s (%d)", rec.EntryType, uint16(rec.EntryType))
	r.printf(level, "  Value type: %s (%d)", rec.ValueType, uint16(rec.ValueType))
	r.printf(level, "  Status: %#x", rec.ErrorStatus)
	if r.payload && len(raw) > datum.HeaderSize {
		r.printf(level, "  Payload:")
		r.hexdump(level, raw[datum.HeaderSize:])
	}
	r.printf(level, "=========================================")
}
