package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameAddress(t *testing.T) {
	tests := []struct {
		name     string
		frame    Frame
		pageSize int
		offset   int
		expected int
	}{
		{name: "First frame start", frame: 0, pageSize: 100, offset: 0, expected: 0},
		{name: "First frame end", frame: 0, pageSize: 100, offset: 99, expected: 99},
		{name: "Third frame", frame: 2, pageSize: 100, offset: 5, expected: 205},
		{name: "Default page size", frame: 3, pageSize: 256, offset: 1, expected: 769},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := tt.frame.Address(tt.pageSize, tt.offset)
			assert.Equal(t, tt.expected, addr, "address")

			f, off := Of(addr, tt.pageSize)
			assert.Equal(t, tt.frame, f, "frame from address")
			assert.Equal(t, tt.offset, off, "offset from address")
		})
	}
}

func TestCount(t *testing.T) {
	assert.Equal(t, 4, Count(400, 100))
	assert.Equal(t, 4, Count(450, 100), "remainder bytes are dropped")
	assert.Equal(t, 0, Count(99, 100))
	assert.Equal(t, 0, Count(400, 0))
	assert.Equal(t, 0, Count(400, -1))
}

func TestSequence(t *testing.T) {
	assert.Equal(t, []Frame{0, 1, 2, 3}, Sequence(4))
	assert.Empty(t, Sequence(0))
	assert.Empty(t, Sequence(-3))
}

func TestFrameValid(t *testing.T) {
	assert.True(t, Frame(0).Valid())
	assert.False(t, InvalidFrame.Valid())
	assert.Equal(t, "frame#7", Frame(7).String())
}
