package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClass(t *testing.T) {
	tests := []struct {
		n, class int
	}{
		{0, 0}, {1, 0}, {16, 0}, {17, 1}, {32, 1}, {33, 2}, {4096, 8}, {4097, 9},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.class, class(tt.n), "class(%d)", tt.n)
	}
}

func TestGetPut(t *testing.T) {
	var p Pool[int]
	b := p.Get(20)
	require.Len(t, b, 32)
	for i := range b {
		b[i] = i + 1
	}
	p.Put(b[:3])
	// sync.Pool may drop items at any time, but whatever we get must be
	// zeroed and large enough.
	c := p.Get(30)
	require.Len(t, c, 32)
	for _, v := range c {
		assert.Zero(t, v)
	}

	// odd capacities are dropped silently
	p.Put(make([]int, 0, 100))
	assert.Len(t, p.Get(100), 128)
}

func TestFor(t *testing.T) {
	assert.Same(t, For[rune](), For[rune]())
	assert.Same(t, For[byte](), For[uint8]())
	assert.NotNil(t, For[string]())
}
