package fve

import (
	"fmt"

	"github.com/robert-malhotra/go-fve/internal/datum"
)

// StatusKind classifies how a walk ended.
type StatusKind int

const (
	// StatusOK means the walk reached the end of the dataset.
	StatusOK StatusKind = iota
	// StatusNoDataset means the dataset header failed validation and no
	// record was attempted.
	StatusNoDataset
	// StatusTruncated means a malformed record ended the walk early.
	StatusTruncated
	// StatusStopped means the WalkFunc returned an error.
	StatusStopped
)

// Status is the outcome of a walk.
type Status struct {
	Kind StatusKind
	// Count is the number of valid records handed to the WalkFunc.
	Count int
	// Reason holds the validation error, or the WalkFunc error, when Kind
	// is not StatusOK.
	Reason error
}

// OK reports whether the walk reached the end of the dataset.
func (s Status) OK() bool {
	return s.Kind == StatusOK
}

func (s Status) String() string {
	switch s.Kind {
	case StatusOK:
		return fmt.Sprintf("Ok(%d)", s.Count)
	case StatusNoDataset:
		return "NoDataset"
	case StatusTruncated:
		return fmt.Sprintf("Truncated(%d)", s.Count)
	default:
		return fmt.Sprintf("Stopped(%d)", s.Count)
	}
}

// WalkFunc is called for each valid datum record. index is 1-based and only
// meant for display. raw holds the record bytes, header included, and
// aliases the metadata buffer.
// Return nil to continue walking, or an error to stop.
type WalkFunc func(index int, rec Record, raw []byte) error

// Walk visits the datum records of the dataset in order.
//
// Malformed input never aborts the decode: an invalid dataset header gives
// StatusNoDataset with no callback, and a record that does not fit gives
// StatusTruncated after every record before it was visited.
//
// Example:
//
//	st := m.Walk(func(i int, rec fve.Record, raw []byte) error {
//	    fmt.Printf("#%d %s at %#x (%d bytes)\n", i, rec.ValueType, rec.Offset, rec.Size)
//	    return nil
//	})
//	fmt.Println(st) // Ok(5)
func (m *Metadata) Walk(fn WalkFunc) Status {
	v, err := m.view()
	if err != nil {
		m.opts.logger.WithError(err).Debug("dataset rejected")
		return Status{Kind: StatusNoDataset, Reason: err}
	}

	w := datum.NewWalker(v)
	for w.Next() {
		if fn == nil {
			continue
		}
		if err := fn(w.Count(), w.Record(), w.Bytes()); err != nil {
			return Status{Kind: StatusStopped, Count: w.Count(), Reason: err}
		}
	}

	if err := w.Err(); err != nil {
		m.opts.logger.WithError(err).WithField("records", w.Count()).Debug("datum stream ended early")
		return Status{Kind: StatusTruncated, Count: w.Count(), Reason: err}
	}
	return Status{Kind: StatusOK, Count: w.Count()}
}
