package fve

import (
	"io"

	"github.com/sirupsen/logrus"
)

// DefaultMaxMetadataSize bounds how many bytes are read for one metadata
// copy. The stored size field cannot describe more than 1 MiB.
const DefaultMaxMetadataSize = 1 << 20

// Option configures how volumes and metadata are read.
type Option func(*options)

type options struct {
	logger          *logrus.Logger
	maxMetadataSize int
	checkSignature  bool
	imageLimit      int64
}

func defaultOptions() *options {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return &options{
		logger:          discard,
		maxMetadataSize: DefaultMaxMetadataSize,
		checkSignature:  true,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger used for diagnostics, such as metadata copies
// that fail to decode. By default nothing is logged.
func WithLogger(l *logrus.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMaxMetadataSize caps the bytes read for one metadata copy.
func WithMaxMetadataSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxMetadataSize = n
		}
	}
}

// WithSignatureCheck controls whether headers without the FVE signature are
// rejected. It is on by default.
func WithSignatureCheck(on bool) Option {
	return func(o *options) {
		o.checkSignature = on
	}
}

// WithImageLimit caps the decompressed size of a compressed image.
func WithImageLimit(n int64) Option {
	return func(o *options) {
		o.imageLimit = n
	}
}
