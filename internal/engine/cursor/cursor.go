package cursor

import "fmt"

// Text is the read-only buffer view cursor movement needs. *buffer.Buffer
// satisfies it.
type Text interface {
	LineCount() int
	LineLen(line int) int
	LineToChar(line int) int
}

// Cursor is an insertion point addressed by line and character column.
// Cursor is an immutable value type; movement returns a new cursor.
type Cursor struct {
	Line int
	Col  int
}

// New creates a cursor at the given position. Negative components are
// clamped to zero.
func New(line, col int) Cursor {
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	return Cursor{Line: line, Col: col}
}

// Clamp returns a cursor guaranteed to address a valid position in t:
// the line is clamped to the last line and the column to that line's
// length. Column == line length is valid (end-of-line insertion point).
func (c Cursor) Clamp(t Text) Cursor {
	if c.Line < 0 {
		c.Line = 0
	}
	if last := t.LineCount() - 1; c.Line > last {
		c.Line = last
	}
	if c.Col < 0 {
		c.Col = 0
	}
	if max := t.LineLen(c.Line); c.Col > max {
		c.Col = max
	}
	return c
}

// Left moves one character left, wrapping to the end of the previous
// line at column zero. At the start of the buffer it stays put.
func (c Cursor) Left(t Text) Cursor {
	if c.Col > 0 {
		c.Col--
		return c
	}
	if c.Line > 0 {
		c.Line--
		c.Col = t.LineLen(c.Line)
	}
	return c
}

// Right moves one character right, wrapping to the start of the next
// line at end-of-line. At the end of the buffer it stays put.
func (c Cursor) Right(t Text) Cursor {
	if c.Col < t.LineLen(c.Line) {
		c.Col++
		return c
	}
	if c.Line < t.LineCount()-1 {
		c.Line++
		c.Col = 0
	}
	return c
}

// Up moves one line up, clamping the column to the target line length.
func (c Cursor) Up(t Text) Cursor {
	if c.Line == 0 {
		return c
	}
	c.Line--
	if max := t.LineLen(c.Line); c.Col > max {
		c.Col = max
	}
	return c
}

// Down moves one line down, clamping the column to the target line length.
func (c Cursor) Down(t Text) Cursor {
	if c.Line >= t.LineCount()-1 {
		return c
	}
	c.Line++
	if max := t.LineLen(c.Line); c.Col > max {
		c.Col = max
	}
	return c
}

// LineStart moves to column zero of the current line.
func (c Cursor) LineStart() Cursor {
	c.Col = 0
	return c
}

// LineEnd moves past the last character of the current line.
func (c Cursor) LineEnd(t Text) Cursor {
	c.Col = t.LineLen(c.Line)
	return c
}

// DocumentStart moves to the first position of the buffer.
func (c Cursor) DocumentStart() Cursor {
	return Cursor{}
}

// DocumentEnd moves past the last character of the buffer.
func (c Cursor) DocumentEnd(t Text) Cursor {
	c.Line = t.LineCount() - 1
	c.Col = t.LineLen(c.Line)
	return c
}

// CharOffset returns the cursor position as a character offset into t.
func (c Cursor) CharOffset(t Text) int {
	return t.LineToChar(c.Line) + c.Col
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("Cursor(%d:%d)", c.Line, c.Col)
}
