package fve

import (
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-fve/internal/binary"
	"github.com/robert-malhotra/go-fve/internal/dataset"
	"github.com/robert-malhotra/go-fve/internal/datum"
)

// Common errors
var (
	ErrNoDataset    = errors.New("no dataset found")
	ErrNoMetadata   = errors.New("no readable metadata copy")
	ErrBadSignature = errors.New("bad signature")
	ErrCopyIndex    = errors.New("metadata copy index out of range")
	ErrClosed       = errors.New("volume is closed")

	ErrBufferTooSmall   = binary.ErrBufferTooSmall
	ErrInvalidDataset   = dataset.ErrInvalidDataset
	ErrTruncatedRecord  = datum.ErrTruncatedRecord
	ErrZeroLengthRecord = datum.ErrZeroLengthRecord
)
