package binary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterRoundTrip(t *testing.T) {
	w := NewWriter(4)
	w.WriteUint8(0x7F).WriteUint16(0x1234).WriteUint32(0xDEADBEEF).WriteUint64(0x0102030405060708)

	assert.Equal(t, 15, w.Pos())
	require.Len(t, w.Bytes(), 15)

	r := NewReader(w.Bytes())
	u8, _ := r.ReadUint8()
	u16, _ := r.ReadUint16()
	u32, _ := r.ReadUint32()
	u64, err := r.ReadUint64()
	require.NoError(t, err)

	assert.Equal(t, uint8(0x7F), u8)
	assert.Equal(t, uint16(0x1234), u16)
	assert.Equal(t, uint32(0xDEADBEEF), u32)
	assert.Equal(t, uint64(0x0102030405060708), u64)
}

func TestWriterSeek(t *testing.T) {
	w := NewWriter(8)
	w.Seek(6).WriteUint16(0xAA55)
	w.Seek(0).WriteBytes([]byte("ab"))

	assert.Equal(t, []byte{'a', 'b', 0, 0, 0, 0, 0x55, 0xAA}, w.Bytes())
}

func TestWriterZeros(t *testing.T) {
	w := NewWriter(0)
	w.WriteUint8(1).WriteZeros(3).WriteUint8(2)
	assert.Equal(t, []byte{1, 0, 0, 0, 2}, w.Bytes())
}
