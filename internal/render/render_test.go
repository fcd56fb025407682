package render

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-fve/internal/dataset"
	"github.com/robert-malhotra/go-fve/internal/datum"
	"github.com/robert-malhotra/go-fve/internal/metadata"
	"github.com/robert-malhotra/go-fve/internal/volume"
)

func newLogger() (*logrus.Logger, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return log, hook
}

func messages(hook *test.Hook) string {
	var lines []string
	for _, e := range hook.AllEntries() {
		lines = append(lines, e.Message)
	}
	return strings.Join(lines, "\n")
}

func TestVolumeHeader(t *testing.T) {
	log, hook := newLogger()
	h := &volume.Header{
		Signature:               volume.Signature,
		SectorSize:              512,
		MetadataOffsets:         [3]uint64{0x2100000, 0, 0},
		BootPartitionIdentifier: volume.BootIdentifier,
	}

	New(log).VolumeHeader(logrus.InfoLevel, h)

	out := messages(hook)
	assert.Contains(t, out, "Signature: '-FVE-FS-' (BitLocker)")
	assert.Contains(t, out, "Sector size: 0x0200 (512) bytes")
	assert.Contains(t, out, "First metadata header offset:  0x0000000002100000")
	assert.Contains(t, out, "Boot Partition Identifier: '0xaa55'")
	for _, e := range hook.AllEntries() {
		assert.Equal(t, logrus.InfoLevel, e.Level)
	}
}

func TestMetadataHeaderVariants(t *testing.T) {
	log, hook := newLogger()
	r := New(log)

	r.MetadataHeader(logrus.InfoLevel, &metadata.Header{
		Signature: metadata.Signature,
		RawSize:   0x100,
		Version:   metadata.VersionSeven,
		Fields:    &metadata.ExtendedFields{EncryptedVolumeSize: 64 << 20, BackupSectors: 16},
	})
	out := messages(hook)
	assert.Contains(t, out, "Total Size: 0x1000 (4096) bytes")
	assert.Contains(t, out, "Version: 2 (Seven)")
	assert.Contains(t, out, "~64 MB")
	assert.Contains(t, out, "backuped: 16 sectors (0x10)")

	hook.Reset()
	r.MetadataHeader(logrus.InfoLevel, &metadata.Header{
		Signature: metadata.Signature,
		Version:   metadata.VersionVista,
		Fields:    &metadata.LegacyFields{Raw: make([]byte, 20)},
	})
	out = messages(hook)
	assert.NotContains(t, out, "Encrypted volume size")
	assert.Contains(t, out, "Version: 1 (Vista)")
}

func TestDataset(t *testing.T) {
	log, hook := newLogger()
	New(log).Dataset(logrus.InfoLevel, &dataset.Header{
		Size:       0x2a8,
		Unknown:    1,
		HeaderSize: 0x30,
		CopySize:   0x2a8,
		Algorithm:  dataset.AlgAESXTS128,
		Timestamp:  116444736000000000,
	})

	out := messages(hook)
	assert.Contains(t, out, "Encryption Type: AES-XTS-128 (0x8004)")
	assert.Contains(t, out, "Epoch Timestamp: 0 sec, that to say Thu Jan  1 00:00:00 1970")
}

func TestRecordLevelIsPerCall(t *testing.T) {
	log, hook := newLogger()
	log.SetLevel(logrus.InfoLevel)
	r := New(log).WithPayload(true)

	rec := datum.Record{Offset: 0x70, Header: datum.Header{Size: 0x0c, EntryType: datum.EntryVMK, ValueType: datum.ValueVMK}}
	raw := []byte{0x0c, 0, 2, 0, 8, 0, 0, 0, 0xde, 0xad, 0xbe, 0xef}

	r.Record(logrus.DebugLevel, 1, rec, raw)
	assert.Empty(t, hook.AllEntries(), "debug output must be filtered at info level")

	r.Record(logrus.InfoLevel, 3, rec, raw)
	out := messages(hook)
	assert.Contains(t, out, "Datum n°3 informations")
	assert.Contains(t, out, "Entry type: VMK (2)")
	assert.Contains(t, out, "Value type: VMK (8)")
	assert.Contains(t, out, "de ad be ef")
}

func TestRecordWithoutPayload(t *testing.T) {
	log, hook := newLogger()
	rec := datum.Record{Offset: 0x70, Header: datum.Header{Size: 0x0c}}
	New(log).Record(logrus.InfoLevel, 1, rec, []byte{0x0c, 0, 0, 0, 0, 0, 0, 0, 0xde, 0xad, 0xbe, 0xef})
	assert.NotContains(t, messages(hook), "de ad be ef")
}

func TestLineFormatter(t *testing.T) {
	f := &LineFormatter{}
	out, err := f.Format(&logrus.Entry{
		Level:   logrus.WarnLevel,
		Message: "hello",
		Data:    logrus.Fields{"b": 2, "a": 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "[WARNING] hello a=1 b=2\n", string(out))

	f.DisableLevel = true
	out, err = f.Format(&logrus.Entry{Level: logrus.InfoLevel, Message: "x", Data: logrus.Fields{}})
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(out))
}
