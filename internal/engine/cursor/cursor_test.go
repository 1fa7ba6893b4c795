package cursor

import (
	"testing"

	"github.com/fathomedit/fathom/internal/engine/buffer"
)

func TestLeftRight(t *testing.T) {
	buf := buffer.FromString("ab\ncde")

	tests := []struct {
		name string
		from Cursor
		move func(Cursor) Cursor
		want Cursor
	}{
		{"right within line", New(0, 0), func(c Cursor) Cursor { return c.Right(buf) }, New(0, 1)},
		{"right wraps", New(0, 2), func(c Cursor) Cursor { return c.Right(buf) }, New(1, 0)},
		{"right at end stays", New(1, 3), func(c Cursor) Cursor { return c.Right(buf) }, New(1, 3)},
		{"left within line", New(1, 2), func(c Cursor) Cursor { return c.Left(buf) }, New(1, 1)},
		{"left wraps", New(1, 0), func(c Cursor) Cursor { return c.Left(buf) }, New(0, 2)},
		{"left at start stays", New(0, 0), func(c Cursor) Cursor { return c.Left(buf) }, New(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.move(tt.from); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpDownClampsColumn(t *testing.T) {
	buf := buffer.FromString("long line here\nab\nanother long line")

	c := New(0, 10).Down(buf)
	if c != New(1, 2) {
		t.Errorf("Down from long line = %v, want (1, 2)", c)
	}

	// The clamp is not sticky: moving on from the short line keeps the
	// clamped column.
	c = c.Down(buf)
	if c != New(2, 2) {
		t.Errorf("Down from short line = %v, want (2, 2)", c)
	}

	c = New(2, 15).Up(buf)
	if c != New(1, 2) {
		t.Errorf("Up onto short line = %v, want (1, 2)", c)
	}

	if got := New(0, 3).Up(buf); got != New(0, 3) {
		t.Errorf("Up at first line = %v, want (0, 3)", got)
	}
	if got := New(2, 3).Down(buf); got != New(2, 3) {
		t.Errorf("Down at last line = %v, want (2, 3)", got)
	}
}

func TestLineAndDocumentEdges(t *testing.T) {
	buf := buffer.FromString("abc\ndefg")

	if got := New(1, 2).LineStart(); got != New(1, 0) {
		t.Errorf("LineStart() = %v", got)
	}
	if got := New(1, 0).LineEnd(buf); got != New(1, 4) {
		t.Errorf("LineEnd() = %v", got)
	}
	if got := New(1, 2).DocumentStart(); got != New(0, 0) {
		t.Errorf("DocumentStart() = %v", got)
	}
	if got := New(0, 0).DocumentEnd(buf); got != New(1, 4) {
		t.Errorf("DocumentEnd() = %v", got)
	}
}

func TestClamp(t *testing.T) {
	buf := buffer.FromString("abc\nde")

	tests := []struct {
		in   Cursor
		want Cursor
	}{
		{Cursor{Line: 5, Col: 0}, New(1, 0)},
		{Cursor{Line: 1, Col: 99}, New(1, 2)},
		{Cursor{Line: -1, Col: -1}, New(0, 0)},
		{New(0, 3), New(0, 3)},
	}

	for _, tt := range tests {
		if got := tt.in.Clamp(buf); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCharOffset(t *testing.T) {
	buf := buffer.FromString("日本\nabc")

	tests := []struct {
		c    Cursor
		want int
	}{
		{New(0, 0), 0},
		{New(0, 2), 2},
		{New(1, 0), 3},
		{New(1, 3), 6},
	}

	for _, tt := range tests {
		if got := tt.c.CharOffset(buf); got != tt.want {
			t.Errorf("CharOffset(%v) = %d, want %d", tt.c, got, tt.want)
		}
	}
}

func TestDisplayCol(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		col      int
		tabWidth int
		want     int
	}{
		{"ascii", "hello", 3, 4, 3},
		{"wide runes", "日本語x", 3, 4, 6},
		{"wide prefix", "日x", 2, 4, 3},
		{"tab from col 0", "\tx", 1, 4, 4},
		{"tab mid line", "ab\tx", 3, 4, 4},
		{"tab width 8", "\tx", 1, 8, 8},
		{"past end clamps", "ab", 10, 4, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayCol(tt.line, tt.col, tt.tabWidth); got != tt.want {
				t.Errorf("DisplayCol(%q, %d) = %d, want %d", tt.line, tt.col, got, tt.want)
			}
		})
	}
}

func TestColFromDisplay(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		displayCol int
		want       int
	}{
		{"ascii", "hello", 3, 3},
		{"first cell of wide rune", "日本", 0, 0},
		{"second cell of wide rune", "日本", 1, 0},
		{"after wide rune", "日本", 2, 1},
		{"inside tab", "\tx", 2, 0},
		{"after tab", "\tx", 4, 1},
		{"past end", "ab", 99, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColFromDisplay(tt.line, tt.displayCol, 4); got != tt.want {
				t.Errorf("ColFromDisplay(%q, %d) = %d, want %d", tt.line, tt.displayCol, got, tt.want)
			}
		})
	}
}

func TestDisplayRoundTrip(t *testing.T) {
	line := "a\t日本 x\tend"
	runes := []rune(line)
	for col := 0; col <= len(runes); col++ {
		w := DisplayCol(line, col, 4)
		if col < len(runes) {
			if back := ColFromDisplay(line, w, 4); back != col {
				t.Errorf("col %d -> width %d -> col %d", col, w, back)
			}
		}
	}
}
