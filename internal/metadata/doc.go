// Package metadata decodes the FVE metadata header.
//
// The metadata header ("-FVE-FS-" block) precedes the dataset and is stored
// at up to three offsets listed in the volume header. Its layout between
// offsets 0x0c and 0x20 depends on the version field; the mapping from
// version to layout lives in a single table so that new versions are added
// in one place.
//
//   - Version 1 (Vista): 20 opaque reserved bytes.
//   - Version 2 (Windows 7 and later): encrypted volume size and the number
//     of boot sectors backed up, around 8 reserved bytes.
//
// Unknown versions decode with the Vista layout.
package metadata
