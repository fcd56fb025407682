// Package datum walks the stream of datum records inside an FVE dataset.
//
// Every datum begins with an 8-byte header: total size (header included),
// entry type, value type and an error/status word. The [Walker] uses only
// the size to step from one record to the next; decoding the payload of a
// given value type is left to the caller.
//
// # Walking
//
// A walk starts at the first byte after the dataset header and ends at the
// dataset size, never at the larger copy size. Each step checks that the
// header and the whole declared record fit inside that bound:
//
//	w := datum.NewWalker(view)
//	for w.Next() {
//	    rec := w.Record()
//	    fmt.Println(w.Count(), rec.Offset, rec.Size, rec.ValueType)
//	}
//	if err := w.Err(); err != nil {
//	    // the stream ended early; records already seen are valid
//	}
//
// A record that does not fit, or that declares a size too small to hold its
// own header, ends the walk. Such failures are soft: [Walker.Err] reports
// them, and the records yielded before remain valid.
//
// # Errors
//
//   - [ErrTruncatedRecord]: a header or a declared size crosses the bound.
//   - [ErrZeroLengthRecord]: a record declares a size of zero.
package datum
