// Package guid handles the mixed-endian GUIDs stored in FVE metadata.
package guid

import (
	"strings"

	"github.com/google/uuid"
)

// Size is the on-disk size of a GUID.
const Size = 16

// GUID is a Windows GUID in its on-disk byte order: the first three groups
// are little-endian, the last two are stored as-is.
type GUID [Size]byte

// FromBytes copies the first 16 bytes of b into a GUID.
// It panics if b is shorter than Size.
func FromBytes(b []byte) GUID {
	var g GUID
	copy(g[:], b[:Size])
	return g
}

// UUID converts the GUID to RFC 4122 byte order.
func (g GUID) UUID() uuid.UUID {
	var u uuid.UUID
	u[0], u[1], u[2], u[3] = g[3], g[2], g[1], g[0]
	u[4], u[5] = g[5], g[4]
	u[6], u[7] = g[7], g[6]
	copy(u[8:], g[8:])
	return u
}

// String formats the GUID the way Windows tools print it.
func (g GUID) String() string {
	return strings.ToUpper(g.UUID().String())
}

// IsZero reports whether every byte is zero.
func (g GUID) IsZero() bool {
	return g == GUID{}
}

// Parse reads a textual GUID back into on-disk order.
func Parse(s string) (GUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return GUID{}, err
	}
	var g GUID
	g[0], g[1], g[2], g[3] = u[3], u[2], u[1], u[0]
	g[4], g[5] = u[5], u[4]
	g[6], g[7] = u[7], u[6]
	copy(g[8:], u[8:])
	return g, nil
}
