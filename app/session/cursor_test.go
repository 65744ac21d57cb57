package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursor_BackAtStartIsNoop(t *testing.T) {
	var c Cursor
	assert.False(t, c.Back())
	assert.Equal(t, 0, c.Current())
}

func TestCursor_NextStopsAtLastRow(t *testing.T) {
	var c Cursor
	assert.True(t, c.Next(3))
	assert.True(t, c.Next(3))
	assert.Equal(t, 2, c.Current())

	assert.False(t, c.Next(3))
	assert.Equal(t, 2, c.Current())
}

func TestCursor_BackAndForth(t *testing.T) {
	var c Cursor
	c.Next(5)
	c.Next(5)
	assert.True(t, c.Back())
	assert.Equal(t, 1, c.Current())
}

func TestCursor_JumpToClamps(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		target   int
		rowCount int
		want     int
		changed  bool
	}{
		{"within range", 0, 3, 5, 2, true},
		{"below one", 3, 0, 5, 0, true},
		{"negative", 3, -10, 5, 0, true},
		{"above count", 0, 99, 5, 4, true},
		{"same row", 2, 3, 5, 2, false},
		{"clamped onto current", 4, 50, 5, 4, false},
		{"single row", 0, 7, 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Cursor{index: tt.start}
			assert.Equal(t, tt.changed, c.JumpTo(tt.target, tt.rowCount))
			assert.Equal(t, tt.want, c.Current())
		})
	}
}

func TestCursor_ZeroRowsIsDegenerateButSafe(t *testing.T) {
	var c Cursor
	assert.False(t, c.Next(0))
	assert.False(t, c.JumpTo(1, 0))
	assert.False(t, c.Back())
	assert.Equal(t, 0, c.Current())
}
