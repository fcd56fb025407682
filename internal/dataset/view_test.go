package dataset

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewView(t *testing.T) {
	buf := make([]byte, 0x200)
	h := &Header{Size: 0x38, HeaderSize: 0x30, CopySize: 0x40}

	v, err := NewView(buf, 0x40, h)
	require.NoError(t, err)

	assert.Equal(t, uint64(0x40), v.Start)
	assert.Equal(t, uint64(0x70), v.DataStart)
	assert.Equal(t, uint64(0x78), v.End)
	assert.Equal(t, uint64(0x80), v.CopyEnd)
	assert.Equal(t, uint64(0x78), v.Limit(), "limit is bounded by size, not copy size")
}

func TestNewViewInvalid(t *testing.T) {
	tests := []struct {
		name  string
		h     *Header
		start int
	}{
		{"copy below header", &Header{Size: 0x10, HeaderSize: 0x30, CopySize: 0x20}, 0},
		{"size above copy", &Header{Size: 0x50, HeaderSize: 0x30, CopySize: 0x40}, 0},
		{"too little room", &Header{Size: 0x40, HeaderSize: 0x39, CopySize: 0x40}, 0},
		{"negative start", &Header{Size: 0x38, HeaderSize: 0x30, CopySize: 0x40}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewView(make([]byte, 0x100), tt.start, tt.h)
			assert.True(t, errors.Is(err, ErrInvalidDataset), "got %v", err)
		})
	}
}

func TestViewLimitClampedToBuffer(t *testing.T) {
	h := &Header{Size: 0x1000, HeaderSize: 0x30, CopySize: 0x1000}

	v, err := NewView(make([]byte, 0x80), 0, h)
	require.NoError(t, err)

	assert.Equal(t, uint64(0x1000), v.End)
	assert.Equal(t, uint64(0x80), v.Limit())
}

func TestViewContains(t *testing.T) {
	h := &Header{Size: 0x38, HeaderSize: 0x30, CopySize: 0x40}
	v, err := NewView(make([]byte, 0x40), 0, h)
	require.NoError(t, err)

	assert.True(t, v.Contains(0x30, 8))
	assert.False(t, v.Contains(0x30, 9), "one byte past size")
	assert.False(t, v.Contains(0x28, 8), "before data start")
	assert.True(t, v.Contains(0x38, 0))
	assert.False(t, v.Contains(0x39, 0))
	assert.False(t, v.Contains(0x30, ^uint64(0)))

	b, ok := v.Slice(0x30, 8)
	require.True(t, ok)
	assert.Len(t, b, 8)
	assert.Equal(t, 8, cap(b))

	_, ok = v.Slice(0x34, 8)
	assert.False(t, ok)
}
