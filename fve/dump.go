package fve

import (
	"github.com/sirupsen/logrus"

	"github.com/robert-malhotra/go-fve/internal/render"
)

// DumpVolume prints the volume header to log at the given level.
func DumpVolume(log *logrus.Logger, level logrus.Level, v *Volume) {
	render.New(log).VolumeHeader(level, v.Header())
}

// Dump prints the metadata header, the dataset header and every datum record
// to log at the given level, then returns the walk status. With payload set,
// the bytes following each record header are hex-dumped as well.
func Dump(log *logrus.Logger, level logrus.Level, m *Metadata, payload bool) Status {
	r := render.New(log).WithPayload(payload)

	r.MetadataHeader(level, m.Header())
	r.Dataset(level, m.Dataset())
	st := m.Walk(func(index int, rec Record, raw []byte) error {
		r.Record(level, index, rec, raw)
		return nil
	})
	r.Footer(level)

	if !st.OK() {
		log.WithError(st.Reason).WithField("status", st.String()).Log(level, "datum walk ended early")
	}
	return st
}
