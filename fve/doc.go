// Package fve reads the metadata of BitLocker full-volume-encryption volumes.
//
// A volume image is opened with Open, or NewVolume for an io.ReaderAt. The
// volume header names up to three redundant metadata copies; each copy holds
// a metadata header, a dataset header and a stream of datum records.
//
//	v, err := fve.Open("disk.img")
//	if err != nil {
//	    return err
//	}
//	defer v.Close()
//
//	m, err := v.FirstMetadata(ctx)
//	if err != nil {
//	    return err
//	}
//	for i, rec := range m.Records() {
//	    fmt.Println(i, rec.EntryType, rec.ValueType, rec.Size)
//	}
//
// Decoding is fail-soft: a malformed datum stream ends the walk with a
// Status describing how many records were valid, and nothing past the
// dataset bounds is ever read.
package fve
