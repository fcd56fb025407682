package dataset

import (
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-fve/internal/binary"
)

// View is a validated window over the records of one dataset.
// All addresses are absolute offsets into the buffer the view was built on.
// The view borrows the buffer and never modifies it.
type View struct {
	buf []byte

	// Start is the offset of the dataset header.
	Start uint64
	// DataStart is the offset of the first record: Start + header_size.
	DataStart uint64
	// End is one past the last byte of live record data: Start + size.
	End uint64
	// CopyEnd is Start + copy_size. Records are never read from
	// [End, CopyEnd).
	CopyEnd uint64
}

// NewView validates h and returns the record region of the dataset whose
// header is at start in buf.
func NewView(buf []byte, start int, h *Header) (View, error) {
	if start < 0 {
		return View{}, errors.Wrapf(ErrInvalidDataset, "negative dataset offset %d", start)
	}
	if err := h.Validate(); err != nil {
		return View{}, err
	}

	base := uint64(start)
	return View{
		buf:       buf,
		Start:     base,
		DataStart: base + uint64(h.HeaderSize),
		End:       base + uint64(h.Size),
		CopyEnd:   base + uint64(h.CopySize),
	}, nil
}

// Buffer returns the borrowed buffer.
func (v View) Buffer() []byte {
	return v.buf
}

// Limit is the bound a walker must respect: End, clamped to the buffer
// length when the buffer is shorter than the dataset claims.
func (v View) Limit() uint64 {
	return min(v.End, uint64(len(v.buf)))
}

// Contains reports whether [off, off+n) lies within the data region and the
// buffer.
func (v View) Contains(off, n uint64) bool {
	if off < v.DataStart {
		return false
	}
	limit := v.Limit()
	return off <= limit && n <= limit-off && binary.InBounds(len(v.buf), off, n)
}

// Slice returns the bytes of [off, off+n) if Contains reports true.
func (v View) Slice(off, n uint64) ([]byte, bool) {
	if !v.Contains(off, n) {
		return nil, false
	}
	return v.buf[off : off+n : off+n], true
}
