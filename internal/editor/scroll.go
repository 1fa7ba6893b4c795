package editor

// Scroll is the viewport position of one document: a vertical offset in
// lines and a horizontal offset in character columns, the same unit
// span skipping uses.
//
// The follow flag decides who owns the viewport. Every cursor move or
// edit sets it, so the next frame keeps the cursor visible; wheel
// scrolling clears it, so free scrolling is never yanked back until the
// cursor moves again.
type Scroll struct {
	Row int
	Col int

	follow bool
}

// FollowCursor marks the viewport to track the cursor on the next frame.
func (s *Scroll) FollowCursor() {
	s.follow = true
}

// Following reports whether the viewport tracks the cursor.
func (s *Scroll) Following() bool {
	return s.follow
}

// ScrollBy moves the viewport freely, clamping to [0, maxRow] and
// [0, maxCol], and releases cursor tracking.
func (s *Scroll) ScrollBy(dRow, dCol, maxRow, maxCol int) {
	s.follow = false
	s.Row = clamp(s.Row+dRow, 0, maxRow)
	s.Col = clamp(s.Col+dCol, 0, maxCol)
}

// Apply adjusts the viewport so the cursor cell (row, col) is inside a
// height×width window, when following. The offsets move the minimum
// distance needed.
func (s *Scroll) Apply(row, col, height, width int) {
	if !s.follow || height <= 0 || width <= 0 {
		return
	}

	if row < s.Row {
		s.Row = row
	} else if row >= s.Row+height {
		s.Row = row - height + 1
	}

	if col < s.Col {
		s.Col = col
	} else if col >= s.Col+width {
		s.Col = col - width + 1
	}
}

// ClampTo pulls the offsets back into range after the document shrinks.
func (s *Scroll) ClampTo(maxRow, maxCol int) {
	s.Row = clamp(s.Row, 0, maxRow)
	s.Col = clamp(s.Col, 0, maxCol)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
