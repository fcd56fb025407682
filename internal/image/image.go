// Package image opens volume images for metadata inspection.
//
// Raw images are read in place through io.ReaderAt. Captures compressed with
// zstd or LZ4 (frame format) are recognised by their magic number and
// decompressed into memory, up to a size limit.
package image

import (
	"bytes"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// Compression identifies how an image file is stored.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZSTD
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionZSTD:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "none"
	}
}

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// DefaultLimit caps the decompressed size of a compressed image.
const DefaultLimit = 4 << 30

// ErrTooLarge is returned when a compressed image inflates past the limit.
var ErrTooLarge = errors.New("decompressed image exceeds limit")

// Image is a readable volume image.
type Image struct {
	r           io.ReaderAt
	size        int64
	compression Compression
	closer      io.Closer
}

// Detect returns the compression indicated by the first bytes of a file.
func Detect(head []byte) Compression {
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return CompressionZSTD
	case bytes.HasPrefix(head, lz4Magic):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// Open opens the image at path. limit bounds the decompressed size of a
// compressed image; zero or a negative value selects DefaultLimit.
func Open(path string, limit int64) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open image")
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "stat image")
	}

	head := make([]byte, 4)
	n, err := f.ReadAt(head, 0)
	if err != nil && err != io.EOF {
		f.Close()
		return nil, errors.Wrap(err, "read image magic")
	}

	c := Detect(head[:n])
	if c == CompressionNone {
		return &Image{r: f, size: st.Size(), closer: f}, nil
	}
	defer f.Close()

	data, err := inflate(io.NewSectionReader(f, 0, st.Size()), c, limit)
	if err != nil {
		return nil, errors.Wrapf(err, "decompress %s image", c)
	}
	return &Image{r: bytes.NewReader(data), size: int64(len(data)), compression: c}, nil
}

// FromReaderAt wraps an already open source of the given size.
func FromReaderAt(r io.ReaderAt, size int64) *Image {
	return &Image{r: r, size: size}
}

// FromBytes wraps an in-memory image, decompressing it if it carries a
// known magic number.
func FromBytes(data []byte, limit int64) (*Image, error) {
	c := Detect(data)
	if c != CompressionNone {
		var err error
		data, err = inflate(bytes.NewReader(data), c, limit)
		if err != nil {
			return nil, errors.Wrapf(err, "decompress %s image", c)
		}
	}
	return &Image{r: bytes.NewReader(data), size: int64(len(data)), compression: c}, nil
}

func inflate(src io.Reader, c Compression, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var r io.Reader
	switch c {
	case CompressionZSTD:
		dec, err := zstd.NewReader(src)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		r = dec
	case CompressionLZ4:
		r = lz4.NewReader(src)
	default:
		r = src
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errors.Wrapf(ErrTooLarge, "limit %d bytes", limit)
	}
	return data, nil
}

// ReadAt implements io.ReaderAt.
func (im *Image) ReadAt(p []byte, off int64) (int, error) {
	return im.r.ReadAt(p, off)
}

// Size returns the image size in bytes, or -1 if unknown.
func (im *Image) Size() int64 {
	return im.size
}

// Compression reports how the image file was stored.
func (im *Image) Compression() Compression {
	return im.compression
}

// ReadRange reads up to n bytes at off. A range that runs past the end of
// the image returns the bytes that exist and no error; callers bound their
// decoding by the returned length.
func (im *Image) ReadRange(off uint64, n int) ([]byte, error) {
	if off > uint64(1<<63-1) {
		return nil, errors.Errorf("offset %#x out of range", off)
	}
	buf := make([]byte, n)
	got, err := im.r.ReadAt(buf, int64(off))
	if err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "read %d bytes at %#x", n, off)
	}
	return buf[:got], nil
}

// Close releases the underlying file, if any.
func (im *Image) Close() error {
	if im.closer == nil {
		return nil
	}
	return im.closer.Close()
}
