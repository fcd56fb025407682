package fve

import (
	"github.com/robert-malhotra/go-fve/internal/dataset"
	"github.com/robert-malhotra/go-fve/internal/datum"
	"github.com/robert-malhotra/go-fve/internal/guid"
	"github.com/robert-malhotra/go-fve/internal/metadata"
	"github.com/robert-malhotra/go-fve/internal/volume"
)

type (
	// VolumeHeader is the decoded 512-byte volume header.
	VolumeHeader = volume.Header
	// MetadataHeader is the decoded versioned metadata header.
	MetadataHeader = metadata.Header
	// DatasetHeader is the decoded dataset header.
	DatasetHeader = dataset.Header
	// Record describes one datum: offset, size, entry type and value type.
	Record = datum.Record
	// GUID is an on-disk Windows GUID.
	GUID = guid.GUID
)
