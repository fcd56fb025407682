// Package binary provides bounds-checked little-endian decoding over an
// in-memory metadata buffer.
package binary

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ErrBufferTooSmall is returned when a read would run past the end of the
// buffer.
var ErrBufferTooSmall = errors.New("buffer too small")

// Reader reads fixed-width little-endian fields from a borrowed byte slice.
// Every read is checked against the slice length before any byte is touched.
type Reader struct {
	buf   []byte
	order binary.ByteOrder
	pos   int
}

// NewReader creates a reader positioned at the start of buf.
// FVE metadata is always little-endian.
func NewReader(buf []byte) *Reader {
	return &Reader{
		buf:   buf,
		order: binary.LittleEndian,
	}
}

// At returns a new reader positioned at the given offset.
// The new reader shares the underlying buffer but has an independent position.
func (r *Reader) At(offset int) *Reader {
	return &Reader{
		buf:   r.buf,
		order: r.order,
		pos:   offset,
	}
}

// Pos returns the current read position.
func (r *Reader) Pos() int {
	return r.pos
}

// Len returns the length of the underlying buffer.
func (r *Reader) Len() int {
	return len(r.buf)
}

// Remaining returns the number of bytes between the position and the end of
// the buffer, or 0 if the position is outside the buffer.
func (r *Reader) Remaining() int {
	if r.pos < 0 || r.pos >= len(r.buf) {
		return 0
	}
	return len(r.buf) - r.pos
}

// Check reports whether n bytes can be read at the current position.
func (r *Reader) Check(n int) error {
	if r.pos < 0 || n < 0 || !InBounds(len(r.buf), uint64(r.pos), uint64(n)) {
		return errors.Wrapf(ErrBufferTooSmall, "need %d bytes at offset %#x, buffer holds %#x", n, r.pos, len(r.buf))
	}
	return nil
}

// InBounds reports whether the range [off, off+n) lies inside a buffer of
// length bufLen. It does not overflow for any input.
func InBounds(bufLen int, off, n uint64) bool {
	limit := uint64(bufLen)
	return off <= limit && n <= limit-off
}

// ReadBytes returns the next n bytes as a sub-slice of the buffer.
// The returned slice aliases the buffer and must not be modified.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	if err := r.Check(n); err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadInto copies len(dst) bytes into dst.
func (r *Reader) ReadInto(dst []byte) error {
	b, err := r.ReadBytes(len(dst))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *Reader) ReadUint8() (uint8, error) {
	buf, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint16 reads an unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	buf, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(buf), nil
}

// ReadUint32 reads an unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(buf), nil
}

// ReadUint64 reads an unsigned 64-bit integer.
func (r *Reader) ReadUint64() (uint64, error) {
	buf, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(buf), nil
}

// Skip advances the position by n bytes. Bounds are checked on the next read.
func (r *Reader) Skip(n int) {
	r.pos += n
}

// Peek returns n bytes without advancing the position.
func (r *Reader) Peek(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	if err := r.Check(n); err != nil {
		return nil, err
	}
	return r.buf[r.pos : r.pos+n : r.pos+n], nil
}

// ByteOrder returns the configured byte order.
func (r *Reader) ByteOrder() binary.ByteOrder {
	return r.order
}
