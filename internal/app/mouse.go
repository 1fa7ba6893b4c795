package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/fathomedit/fathom/internal/engine/cursor"
)

// wheelStep is how many rows or columns one wheel notch scrolls.
const wheelStep = 3

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	f := a.layout()

	switch {
	case f.sidebar.contains(x, y):
		a.sidebarMouse(y, buttons)
	case f.tabs.contains(x, y):
		if buttons&tcell.Button1 != 0 {
			a.tabClick(x)
		}
	case f.content.contains(x, y):
		a.contentMouse(x, y, buttons)
	}
}

func (a *App) sidebarMouse(y int, buttons tcell.ButtonMask) {
	switch {
	case buttons&tcell.WheelUp != 0:
		a.browser.ScrollBy(-wheelStep)
	case buttons&tcell.WheelDown != 0:
		a.browser.ScrollBy(wheelStep)
	case buttons&tcell.Button1 != 0:
		// Row 0 is the sidebar title; entries start below it.
		idx := y - 1 + a.browser.Scroll()
		if y < 1 {
			return
		}
		path, descend, err := a.browser.Open(idx)
		if err != nil {
			a.log.Warn("browse failed", "err", err)
			a.setStatus(err.Error())
			return
		}
		if !descend && path != "" {
			a.openPath(path)
		}
	}
}

// tabClick focuses the tab whose label covers column x.
func (a *App) tabClick(x int) {
	for _, seg := range a.tabSegments() {
		if x >= seg.x0 && x < seg.x1 {
			a.focusTab(func() error { return a.sess.FocusIndex(seg.index) })
			return
		}
	}
}

func (a *App) contentMouse(x, y int, buttons tcell.ButtonMask) {
	if a.imageMode {
		return
	}
	doc := a.sess.Active()
	if doc == nil {
		return
	}

	switch {
	case buttons&tcell.WheelUp != 0:
		a.freeScroll(doc, -wheelStep, 0)
	case buttons&tcell.WheelDown != 0:
		a.freeScroll(doc, wheelStep, 0)
	case buttons&tcell.WheelLeft != 0:
		a.freeScroll(doc, 0, -wheelStep)
	case buttons&tcell.WheelRight != 0:
		a.freeScroll(doc, 0, wheelStep)
	case buttons&tcell.Button1 != 0:
		doc.SyncView(a.theme)
		area := a.textArea(doc.View.LineCount())
		line := doc.Scroll.Row + (y - area.Y)

		// A gutter click lands on column zero; clicks in the text area
		// resolve against the line's visible display offset.
		relX := x - area.X
		if relX < 0 {
			doc.SetCursor(line, 0)
			return
		}
		text := doc.Buf.Line(clampLine(line, doc.Buf.LineCount()))
		base := cursor.DisplayCol(text, doc.Scroll.Col, doc.Buf.TabWidth())
		doc.SetCursor(line, base+relX)
	}
}

func clampLine(line, count int) int {
	if line < 0 {
		return 0
	}
	if line >= count {
		return count - 1
	}
	return line
}
