package binary

import (
	"encoding/binary"
)

// Writer lays out fixed-width little-endian fields into a growable buffer.
// It is the inverse of Reader and is used to encode headers for fixtures and
// tooling.
type Writer struct {
	buf   []byte
	order binary.ByteOrder
	pos   int
}

// NewWriter creates a writer over a zeroed buffer of the given size.
func NewWriter(size int) *Writer {
	return &Writer{
		buf:   make([]byte, size),
		order: binary.LittleEndian,
	}
}

// Seek moves the write position to an absolute offset.
func (w *Writer) Seek(offset int) *Writer {
	w.pos = offset
	return w
}

// Pos returns the current write position.
func (w *Writer) Pos() int {
	return w.pos
}

// Bytes returns the written buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) grow(n int) []byte {
	if end := w.pos + n; end > len(w.buf) {
		next := make([]byte, end)
		copy(next, w.buf)
		w.buf = next
	}
	b := w.buf[w.pos : w.pos+n]
	w.pos += n
	return b
}

// WriteBytes writes the given bytes at the current position.
func (w *Writer) WriteBytes(data []byte) *Writer {
	copy(w.grow(len(data)), data)
	return w
}

// WriteUint8 writes an unsigned 8-bit integer.
func (w *Writer) WriteUint8(v uint8) *Writer {
	w.grow(1)[0] = v
	return w
}

// WriteUint16 writes an unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) *Writer {
	w.order.PutUint16(w.grow(2), v)
	return w
}

// WriteUint32 writes an unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) *Writer {
	w.order.PutUint32(w.grow(4), v)
	return w
}

// WriteUint64 writes an unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) *Writer {
	w.order.PutUint64(w.grow(8), v)
	return w
}

// WriteZeros writes n zero bytes.
func (w *Writer) WriteZeros(n int) *Writer {
	clear(w.grow(n))
	return w
}
