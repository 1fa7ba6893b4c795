package app

// rect is a screen rectangle in cells.
type rect struct {
	X, Y, W, H int
}

func (r rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// frame is the screen split: sidebar on the left, then a tab bar, the
// content pane, and a full-width status line at the bottom.
type frame struct {
	sidebar rect
	tabs    rect
	content rect
	status  rect
}

const sidebarWidth = 28

func (a *App) layout() frame {
	sw := sidebarWidth
	if max := a.width / 3; sw > max {
		sw = max
	}

	mainX := sw
	mainW := a.width - sw
	contentH := a.height - 2 // tab bar + status line
	if contentH < 0 {
		contentH = 0
	}

	return frame{
		sidebar: rect{X: 0, Y: 0, W: sw, H: a.height - 1},
		tabs:    rect{X: mainX, Y: 0, W: mainW, H: 1},
		content: rect{X: mainX, Y: 1, W: mainW, H: contentH},
		status:  rect{X: 0, Y: a.height - 1, W: a.width, H: 1},
	}
}

// gutterWidth is the line-number column width for a document of n
// lines, including one space of padding.
func gutterWidth(n int) int {
	digits := 1
	for n >= 10 {
		n /= 10
		digits++
	}
	return digits + 2
}

// textArea is the content pane minus the line-number gutter.
func (a *App) textArea(lineCount int) rect {
	c := a.layout().content
	g := gutterWidth(lineCount)
	return rect{X: c.X + g, Y: c.Y, W: c.W - g, H: c.H}
}
