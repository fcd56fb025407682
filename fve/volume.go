package fve

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/robert-malhotra/go-fve/internal/dataset"
	"github.com/robert-malhotra/go-fve/internal/image"
	"github.com/robert-malhotra/go-fve/internal/metadata"
	"github.com/robert-malhotra/go-fve/internal/volume"
)

// Volume is an open BitLocker volume image.
type Volume struct {
	path   string
	img    *image.Image
	header *volume.Header
	opts   *options
	closed bool
}

// Open opens a volume image file. Images compressed with zstd or LZ4 are
// decompressed in memory.
func Open(path string, opts ...Option) (*Volume, error) {
	o := applyOptions(opts)

	img, err := image.Open(path, o.imageLimit)
	if err != nil {
		return nil, err
	}

	v, err := newVolume(img, o)
	if err != nil {
		img.Close()
		return nil, err
	}
	v.path = path
	return v, nil
}

// NewVolume reads the volume header from r. size may be -1 if unknown.
// The caller keeps ownership of r; Close does not close it.
func NewVolume(r io.ReaderAt, size int64, opts ...Option) (*Volume, error) {
	return newVolume(image.FromReaderAt(r, size), applyOptions(opts))
}

func newVolume(img *image.Image, o *options) (*Volume, error) {
	buf, err := img.ReadRange(0, volume.Size)
	if err != nil {
		return nil, errors.Wrap(err, "reading volume header")
	}
	h, err := volume.Decode(buf)
	if err != nil {
		return nil, errors.Wrap(err, "decoding volume header")
	}
	if o.checkSignature && h.Kind() == volume.KindUnknown {
		return nil, errors.Wrapf(ErrBadSignature, "volume signature %q", h.Signature[:])
	}

	o.logger.WithField("kind", h.Kind().String()).
		WithField("candidates", len(h.Candidates())).
		Debug("volume header decoded")

	return &Volume{img: img, header: h, opts: o}, nil
}

// Close releases the image file, if Open created it.
func (v *Volume) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	return v.img.Close()
}

// Path returns the image path, or "" for volumes built with NewVolume.
func (v *Volume) Path() string {
	return v.path
}

// Header returns the volume header.
func (v *Volume) Header() *VolumeHeader {
	return v.header
}

// Compression reports how the image file was stored: "none", "zstd" or "lz4".
func (v *Volume) Compression() string {
	return v.img.Compression().String()
}

// Candidates returns the metadata header offsets to try, in order.
func (v *Volume) Candidates() []uint64 {
	return v.header.Candidates()
}

// ReadMetadata reads and decodes the metadata copy at an absolute offset.
func (v *Volume) ReadMetadata(ctx context.Context, off uint64) (*Metadata, error) {
	if v.closed {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	const prefix = metadata.Size + dataset.HeaderSize
	head, err := v.img.ReadRange(off, prefix)
	if err != nil {
		return nil, err
	}
	h, err := metadata.Decode(head, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "metadata at %#x", off)
	}
	if v.opts.checkSignature && !h.HasSignature() {
		return nil, errors.Wrapf(ErrBadSignature, "metadata at %#x", off)
	}

	// Vista headers may under-report their size; the dataset size is
	// authoritative when larger.
	total := uint64(h.TotalSize())
	if ds, err := dataset.Decode(head, metadata.Size); err == nil {
		total = max(total, metadata.Size+uint64(ds.Size))
	}
	total = max(min(total, uint64(v.opts.maxMetadataSize)), prefix)

	buf, err := v.img.ReadRange(off, int(total))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := parse(buf, v.opts)
	if err != nil {
		return nil, errors.Wrapf(err, "metadata at %#x", off)
	}
	m.Offset = off
	return m, nil
}

// Metadata reads the i-th metadata candidate (0-based).
func (v *Volume) Metadata(ctx context.Context, i int) (*Metadata, error) {
	candidates := v.Candidates()
	if i < 0 || i >= len(candidates) {
		return nil, errors.Wrapf(ErrCopyIndex, "copy %d of %d", i, len(candidates))
	}
	return v.ReadMetadata(ctx, candidates[i])
}

// FirstMetadata returns the first candidate copy that decodes.
func (v *Volume) FirstMetadata(ctx context.Context) (*Metadata, error) {
	for i, off := range v.Candidates() {
		m, err := v.ReadMetadata(ctx, off)
		if err == nil {
			return m, nil
		}
		if ctx.Err() != nil || errors.Is(err, ErrClosed) {
			return nil, err
		}
		v.opts.logger.WithError(err).
			WithField("copy", i).
			WithField("offset", off).
			Debug("skipping metadata copy")
	}
	return nil, ErrNoMetadata
}

// CopyResult is the outcome of reading one redundant metadata copy.
type CopyResult struct {
	Index    int
	Offset   uint64
	Metadata *Metadata
	Err      error
}

// AllMetadata reads every candidate copy concurrently. Per-copy failures are
// reported in the results; the returned error is set only when the context
// is cancelled or the volume is closed.
func (v *Volume) AllMetadata(ctx context.Context) ([]CopyResult, error) {
	if v.closed {
		return nil, ErrClosed
	}

	candidates := v.Candidates()
	results := make([]CopyResult, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	for i, off := range candidates {
		g.Go(func() error {
			m, err := v.ReadMetadata(gctx, off)
			results[i] = CopyResult{Index: i, Offset: off, Metadata: m, Err: err}
			if err := gctx.Err(); err != nil {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CompareCopies reports whether at least one copy decoded and every decoded
// copy has the same fingerprint.
func CompareCopies(copies []CopyResult) bool {
	var (
		first [32]byte
		seen  bool
	)
	for _, c := range copies {
		if c.Metadata == nil {
			continue
		}
		fp := c.Metadata.Fingerprint()
		if !seen {
			first, seen = fp, true
			continue
		}
		if fp != first {
			return false
		}
	}
	return seen
}
