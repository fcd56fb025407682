package fve

import (
	"iter"

	"github.com/pkg/errors"
	"lukechampine.com/blake3"

	"github.com/robert-malhotra/go-fve/internal/dataset"
	"github.com/robert-malhotra/go-fve/internal/datum"
	"github.com/robert-malhotra/go-fve/internal/metadata"
)

// Metadata is one decoded copy of the FVE metadata block: the metadata
// header, the dataset header and the bytes holding the datum records.
// It borrows buf; the caller must not modify it while the Metadata is in use.
type Metadata struct {
	// Offset is where the copy was read from in the volume, or 0 when the
	// block was handed to Parse directly.
	Offset uint64

	buf     []byte
	header  *metadata.Header
	dataset *dataset.Header
	opts    *options
}

// Parse decodes a metadata block that starts at buf[0]. A nil or empty
// buffer, or one too short for the dataset header, yields ErrNoDataset.
// A metadata header that cannot be decoded is a hard failure.
func Parse(buf []byte, opts ...Option) (*Metadata, error) {
	return parse(buf, applyOptions(opts))
}

func parse(buf []byte, o *options) (*Metadata, error) {
	if len(buf) == 0 {
		return nil, ErrNoDataset
	}

	h, err := metadata.Decode(buf, 0)
	if err != nil {
		return nil, errors.Wrap(err, "decoding metadata header")
	}
	if o.checkSignature && !h.HasSignature() {
		return nil, errors.Wrapf(ErrBadSignature, "metadata header signature %q", h.Signature[:])
	}

	ds, err := dataset.Decode(buf, h.DatasetOffset())
	if err != nil {
		return nil, errors.Wrapf(ErrNoDataset, "%v", err)
	}

	return &Metadata{
		buf:     buf,
		header:  h,
		dataset: ds,
		opts:    o,
	}, nil
}

// Header returns the metadata header.
func (m *Metadata) Header() *MetadataHeader {
	return m.header
}

// Dataset returns the dataset header.
func (m *Metadata) Dataset() *DatasetHeader {
	return m.dataset
}

// Bytes returns the metadata block as read.
func (m *Metadata) Bytes() []byte {
	return m.buf
}

func (m *Metadata) view() (dataset.View, error) {
	return dataset.NewView(m.buf, m.header.DatasetOffset(), m.dataset)
}

// Validate checks the dataset size invariants without walking.
func (m *Metadata) Validate() error {
	_, err := m.view()
	return err
}

// Records returns the datum records as a lazy sequence of (index, record)
// pairs, index starting at 1. The sequence stops silently at the first
// malformed record; use Walk to learn why a walk ended.
func (m *Metadata) Records() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		v, err := m.view()
		if err != nil {
			return
		}
		for i, rec := range datum.NewWalker(v).All() {
			if !yield(i, rec) {
				return
			}
		}
	}
}

// Fingerprint returns the BLAKE3-256 digest of the live part of the block:
// the metadata header and the dataset up to its declared size. Redundant
// copies of healthy metadata share the same fingerprint.
func (m *Metadata) Fingerprint() [32]byte {
	end := uint64(m.header.DatasetOffset()) + uint64(m.dataset.Size)
	return blake3.Sum256(m.buf[:min(end, uint64(len(m.buf)))])
}
