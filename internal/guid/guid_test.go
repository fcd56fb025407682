package guid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	g := GUID{
		0x33, 0x22, 0x11, 0x00,
		0x55, 0x44,
		0x77, 0x66,
		0x88, 0x99,
		0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff,
	}
	assert.Equal(t, "00112233-4455-6677-8899-AABBCCDDEEFF", g.String())
}

func TestParseRoundTrip(t *testing.T) {
	const s = "4967D63B-2E29-4AD8-8399-F6A339E3D001"
	g, err := Parse(s)
	require.NoError(t, err)
	assert.Equal(t, s, g.String())
	assert.Equal(t, byte(0x3B), g[0])
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse("not-a-guid")
	assert.Error(t, err)
}

func TestIsZero(t *testing.T) {
	assert.True(t, GUID{}.IsZero())
	assert.False(t, FromBytes([]byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}).IsZero())
}
