// Package volume decodes the BitLocker volume header.
//
// The volume header occupies the first 512 bytes of an encrypted volume, in
// place of the NTFS or FAT boot sector. Most of the BIOS parameter block is
// kept for structural compatibility; the fields that matter to FVE are the
// signature, the volume GUID and the table of up to three metadata header
// offsets.
//
// # Signatures
//
//   - "-FVE-FS-": a BitLocker volume (Vista and later).
//   - "MSWIN4.1": a BitLocker To Go volume, whose metadata offsets live in
//     a second table near the end of the sector.
//
// # Metadata candidates
//
// The metadata header is stored redundantly. [Header.Candidates] lists the
// offsets to try, in order; a caller must not assume every copy is valid.
// Vista volumes leave the offset table empty and locate the first copy
// through the metadata LCN instead.
//
// # Errors
//
//   - [ErrBufferTooSmall]: fewer than [Size] bytes were supplied.
package volume
