package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/fathomedit/fathom/internal/editor"
	"github.com/fathomedit/fathom/internal/engine/cursor"
	"github.com/fathomedit/fathom/internal/imaging"
	"github.com/fathomedit/fathom/internal/syntax"
)

func (a *App) render() {
	a.screen.Clear()
	f := a.layout()

	a.renderSidebar(f.sidebar)
	a.renderTabs(f.tabs)
	if a.imageMode {
		a.renderImage(f.content)
	} else {
		a.renderEditor(f.content)
	}
	a.renderStatus(f.status)

	a.screen.Show()
}

func (a *App) baseStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(a.theme.Foreground).Background(a.theme.Background)
}

func (a *App) dimStyle() tcell.Style {
	dim := syntax.Blend(a.theme.Foreground, a.theme.Background, 0.5)
	return tcell.StyleDefault.Foreground(dim).Background(a.theme.Background)
}

// Sidebar

func (a *App) renderSidebar(r rect) {
	if r.W <= 0 {
		return
	}
	base := a.baseStyle()
	dim := a.dimStyle()
	dirStyle := base.Foreground(a.theme.Function)

	a.screen.Fill(r.X, r.Y, r.W, r.H, base, ' ')

	title := " " + a.browser.RelDir()
	a.screen.Print(r.X, r.Y, dim.Bold(true), title, r.X+r.W-1)

	entries := a.browser.Entries()
	for row := 1; row < r.H; row++ {
		idx := a.browser.Scroll() + row - 1
		if idx >= len(entries) {
			break
		}
		e := entries[idx]
		style := base
		name := " " + e.Name
		if e.IsDir {
			style = dirStyle
			name += "/"
		}
		a.screen.Print(r.X, r.Y+row, style, name, r.X+r.W-1)
	}
}

// Tab bar

type tabSegment struct {
	x0, x1 int
	index  int
	label  string
}

func (a *App) tabSegments() []tabSegment {
	f := a.layout()
	x := f.tabs.X
	tabs := a.sess.Tabs()

	segs := make([]tabSegment, 0, len(tabs))
	for i, t := range tabs {
		label := " " + t.Name
		if t.Modified {
			label += "*"
		}
		label += " "
		w := uniseg.StringWidth(label)
		segs = append(segs, tabSegment{x0: x, x1: x + w, index: i, label: label})
		x += w + 1
	}
	return segs
}

func (a *App) renderTabs(r rect) {
	base := a.baseStyle()
	a.screen.Fill(r.X, r.Y, r.W, r.H, a.dimStyle(), ' ')

	active := a.sess.ActiveIndex()
	for _, seg := range a.tabSegments() {
		style := a.dimStyle()
		if seg.index == active && !a.imageMode {
			style = base.Bold(true)
		}
		a.screen.Print(seg.x0, r.Y, style, seg.label, r.X+r.W)
	}
}

// Editor pane

func (a *App) renderEditor(r rect) {
	base := a.baseStyle()
	a.screen.Fill(r.X, r.Y, r.W, r.H, base, ' ')

	doc := a.sess.Active()
	if doc == nil {
		a.screen.HideCursor()
		a.screen.Print(r.X+2, r.Y+1, a.dimStyle(), "open a file from the sidebar", r.X+r.W)
		return
	}

	doc.SyncView(a.theme)
	view := &doc.View
	area := a.textArea(view.LineCount())

	maxCol := view.MaxLineWidth() - area.W
	if maxCol < 0 {
		maxCol = 0
	}
	doc.Scroll.ClampTo(view.LineCount()-1, maxCol)

	cur := doc.Cur.Clamp(doc.Buf)
	doc.Scroll.Apply(cur.Line, cur.Col, area.H, area.W)

	gutter := a.dimStyle()
	gw := gutterWidth(view.LineCount())

	for row := 0; row < area.H; row++ {
		lineIdx := doc.Scroll.Row + row
		if lineIdx >= view.LineCount() {
			break
		}

		num := fmt.Sprintf("%*d ", gw-1, lineIdx+1)
		a.screen.Print(r.X, area.Y+row, gutter, num, area.X)

		spans := editor.BuildSpans(
			view.Line(lineIdx), view.LineColors(lineIdx),
			doc.Scroll.Col, area.W, a.theme.Foreground,
		)
		x := area.X
		for _, sp := range spans {
			x = a.screen.Print(x, area.Y+row, base.Foreground(sp.Color), sp.Text, area.X+area.W)
		}
	}

	a.placeCursor(doc, cur, area)
}

func (a *App) placeCursor(doc *editor.Document, cur cursor.Cursor, area rect) {
	line := doc.Buf.Line(cur.Line)
	tw := doc.Buf.TabWidth()
	x := area.X + cursor.DisplayCol(line, cur.Col, tw) - cursor.DisplayCol(line, doc.Scroll.Col, tw)
	y := area.Y + cur.Line - doc.Scroll.Row

	if area.contains(x, y) {
		a.screen.ShowCursor(x, y)
	} else {
		a.screen.HideCursor()
	}
}

// Image pane

func (a *App) renderImage(r rect) {
	base := a.baseStyle()
	a.screen.Fill(r.X, r.Y, r.W, r.H, base, ' ')
	a.screen.HideCursor()

	switch a.viewer.State() {
	case imaging.StateLoading:
		a.screen.Print(r.X+2, r.Y+1, a.dimStyle(), "loading image...", r.X+r.W)
	case imaging.StateFailed:
		msg := "image failed"
		if err := a.viewer.Err(); err != nil {
			msg = err.Error()
		}
		a.screen.Print(r.X+2, r.Y+1, base.Foreground(a.theme.Attribute), msg, r.X+r.W)
	case imaging.StateReady:
		frame := a.viewer.Frame()
		cols, rows := frame.Size()
		offX := r.X + (r.W-cols)/2
		offY := r.Y + (r.H-rows)/2
		for y := 0; y < rows && offY+y < r.Y+r.H; y++ {
			for x := 0; x < cols && offX+x < r.X+r.W; x++ {
				c := frame.Cell(x, y)
				a.screen.SetCell(offX+x, offY+y, base.Foreground(c.Fg).Background(c.Bg), c.Rune)
			}
		}
	}
}

// Status line

func (a *App) renderStatus(r rect) {
	style := a.baseStyle().Reverse(true)
	a.screen.Fill(r.X, r.Y, r.W, r.H, style, ' ')

	left := a.statusMessage()
	if left == "" {
		if a.imageMode {
			left = a.viewer.Path()
		} else if doc := a.sess.Active(); doc != nil {
			cur := doc.Cur.Clamp(doc.Buf)
			left = fmt.Sprintf("%s  %d:%d  %s", doc.Name(), cur.Line+1, cur.Col+1, doc.Lang)
		}
	}
	a.screen.Print(r.X+1, r.Y, style, left, r.X+r.W)

	if a.branch != "" {
		right := " " + a.branch + " "
		w := uniseg.StringWidth(right)
		a.screen.Print(r.X+r.W-w, r.Y, style.Bold(true), right, r.X+r.W)
	}
}
