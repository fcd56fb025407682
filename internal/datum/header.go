package datum

import (
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-fve/internal/binary"
)

/*
Datum Header Layout (8 bytes):
Offset  Size  Description
0x00    2     Datum size (header included)
0x02    2     Entry type
0x04    2     Value type
0x06    2     Error status
*/

// HeaderSize is the size of the fixed datum header. No record can be
// shorter.
const HeaderSize = 8

// Header is the fixed prefix of a datum record.
type Header struct {
	Size        uint16
	EntryType   EntryType
	ValueType   ValueType
	ErrorStatus uint16
}

// DecodeHeader parses the datum header at off in buf.
func DecodeHeader(buf []byte, off int) (Header, error) {
	r := binary.NewReader(buf).At(off)
	if err := r.Check(HeaderSize); err != nil {
		return Header{}, errors.Wrap(err, "datum header")
	}

	var h Header
	h.Size, _ = r.ReadUint16()
	et, _ := r.ReadUint16()
	vt, _ := r.ReadUint16()
	h.EntryType = EntryType(et)
	h.ValueType = ValueType(vt)
	h.ErrorStatus, _ = r.ReadUint16()
	return h, nil
}

// Encode serializes the header into HeaderSize bytes.
func (h Header) Encode() []byte {
	w := binary.NewWriter(HeaderSize)
	w.WriteUint16(h.Size).
		WriteUint16(uint16(h.EntryType)).
		WriteUint16(uint16(h.ValueType)).
		WriteUint16(h.ErrorStatus)
	return w.Bytes()
}
