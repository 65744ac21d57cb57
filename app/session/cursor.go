package session

// Cursor tracks the row under review. Its index stays within [0, rowCount)
// whenever rowCount > 0; moves that would leave the range are no-ops.
type Cursor struct {
	index int
}

// Current returns the zero-based index of the row under review.
func (c *Cursor) Current() int {
	return c.index
}

// Back moves to the previous row. It reports whether the index changed.
func (c *Cursor) Back() bool {
	if c.index <= 0 {
		c.index = 0
		return false
	}
	c.index--
	return true
}

// Next moves to the following row. It reports whether the index changed.
func (c *Cursor) Next(rowCount int) bool {
	if rowCount <= 0 || c.index >= rowCount-1 {
		return false
	}
	c.index++
	return true
}

// JumpTo moves to a one-based row number after clamping it to [1, rowCount].
// It reports whether the index changed.
func (c *Cursor) JumpTo(oneBasedRow, rowCount int) bool {
	if rowCount <= 0 {
		return false
	}
	oneBasedRow = min(max(oneBasedRow, 1), rowCount)
	target := oneBasedRow - 1
	if target == c.index {
		return false
	}
	c.index = target
	return true
}
