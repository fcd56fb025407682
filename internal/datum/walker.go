package datum

import (
	"iter"

	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-fve/internal/dataset"
)

var (
	ErrTruncatedRecord  = errors.New("truncated datum record")
	ErrZeroLengthRecord = errors.New("zero-length datum record")
)

// Record describes one datum found by the walker. Offset is absolute in the
// walked buffer; [Offset, Offset+Size) always lies inside the dataset.
type Record struct {
	Offset uint64
	Header
}

// End returns one past the last byte of the record.
func (r Record) End() uint64 {
	return r.Offset + uint64(r.Size)
}

// Walker iterates the datum records of a dataset view.
// A Walker is not safe for concurrent use; independent walkers over the same
// view are.
type Walker struct {
	view   dataset.View
	cursor uint64
	rec    Record
	count  int
	err    error
	done   bool
}

// NewWalker returns a walker positioned at the first record of v.
func NewWalker(v dataset.View) *Walker {
	w := &Walker{view: v}
	w.Reset()
	return w
}

// Reset rewinds the walker to the first record and clears its count.
func (w *Walker) Reset() {
	w.cursor = w.view.DataStart
	w.rec = Record{}
	w.count = 0
	w.err = nil
	w.done = false
}

// Next advances to the next record. It returns false at the end of the
// dataset or when the stream is malformed; Err distinguishes the two.
func (w *Walker) Next() bool {
	if w.done {
		return false
	}

	if w.cursor >= w.view.End {
		return w.stop(nil)
	}

	limit := w.view.Limit()
	if !w.view.Contains(w.cursor, HeaderSize) {
		return w.stop(errors.Wrapf(ErrTruncatedRecord,
			"header at %#x does not fit before %#x", w.cursor, limit))
	}

	h, err := DecodeHeader(w.view.Buffer(), int(w.cursor))
	if err != nil {
		return w.stop(errors.Wrap(ErrTruncatedRecord, err.Error()))
	}

	switch {
	case h.Size == 0:
		return w.stop(errors.Wrapf(ErrZeroLengthRecord, "record at %#x", w.cursor))
	case h.Size < HeaderSize:
		return w.stop(errors.Wrapf(ErrTruncatedRecord,
			"record at %#x declares %d bytes, less than its header", w.cursor, h.Size))
	case !w.view.Contains(w.cursor, uint64(h.Size)):
		return w.stop(errors.Wrapf(ErrTruncatedRecord,
			"record at %#x of %d bytes ends past %#x", w.cursor, h.Size, limit))
	}

	w.rec = Record{Offset: w.cursor, Header: h}
	w.cursor += uint64(h.Size)
	w.count++
	return true
}

func (w *Walker) stop(err error) bool {
	w.done = true
	w.err = err
	w.rec = Record{}
	return false
}

// Record returns the record found by the last successful call to Next.
func (w *Walker) Record() Record {
	return w.rec
}

// Bytes returns the raw bytes of the current record, header included.
// The slice aliases the walked buffer.
func (w *Walker) Bytes() []byte {
	if w.rec.Size == 0 {
		return nil
	}
	b, _ := w.view.Slice(w.rec.Offset, uint64(w.rec.Size))
	return b
}

// Count returns the number of records yielded since the last Reset.
// The first record has count 1.
func (w *Walker) Count() int {
	return w.count
}

// Err returns the reason the walk stopped early, or nil if it reached the
// end of the dataset or is still running.
func (w *Walker) Err() error {
	return w.err
}

// All returns a sequence of (count, record) pairs starting from the first
// record. Each iteration of the sequence restarts the walk.
func (w *Walker) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		w.Reset()
		for w.Next() {
			if !yield(w.count, w.rec) {
				return
			}
		}
	}
}

// Collect walks the whole view and returns every valid record with the
// reason the walk stopped.
func Collect(v dataset.View) ([]Record, error) {
	w := NewWalker(v)
	var out []Record
	for w.Next() {
		out = append(out, w.Record())
	}
	return out, w.Err()
}
