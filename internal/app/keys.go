package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/fathomedit/fathom/internal/editor"
)

func (a *App) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyCtrlC:
		a.quit = true
		return
	case tcell.KeyCtrlS:
		a.saveActive()
		return
	case tcell.KeyCtrlW:
		a.closeActiveTab()
		return
	case tcell.KeyCtrlRightSq:
		a.focusTab(a.sess.FocusNext)
		return
	case tcell.KeyEscape: // the terminal reports Ctrl-[ as escape
		a.focusTab(a.sess.FocusPrev)
		return
	}

	if a.imageMode {
		return
	}
	doc := a.sess.Active()
	if doc == nil {
		return
	}

	if ev.Modifiers()&tcell.ModAlt != 0 {
		switch ev.Key() {
		case tcell.KeyUp:
			a.freeScroll(doc, -1, 0)
			return
		case tcell.KeyDown:
			a.freeScroll(doc, 1, 0)
			return
		case tcell.KeyLeft:
			a.freeScroll(doc, 0, -1)
			return
		case tcell.KeyRight:
			a.freeScroll(doc, 0, 1)
			return
		}
	}

	var err error
	switch ev.Key() {
	case tcell.KeyLeft, tcell.KeyCtrlB:
		doc.MoveLeft()
	case tcell.KeyRight, tcell.KeyCtrlF:
		doc.MoveRight()
	case tcell.KeyUp, tcell.KeyCtrlP:
		doc.MoveUp()
	case tcell.KeyDown, tcell.KeyCtrlN:
		doc.MoveDown()
	case tcell.KeyHome, tcell.KeyCtrlA:
		doc.MoveLineStart()
	case tcell.KeyEnd, tcell.KeyCtrlE:
		doc.MoveLineEnd()
	case tcell.KeyPgUp:
		a.movePage(doc, -1)
	case tcell.KeyPgDn:
		a.movePage(doc, 1)
	case tcell.KeyEnter:
		err = doc.InsertNewline()
	case tcell.KeyTab:
		err = doc.InsertRune('\t')
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		err = doc.DeleteBackward()
	case tcell.KeyDelete, tcell.KeyCtrlD:
		err = doc.DeleteForward()
	case tcell.KeyCtrlK:
		err = doc.KillToLineEnd()
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
			err = doc.InsertRune(ev.Rune())
		}
	}

	if err != nil {
		a.log.Error("edit failed", "key", ev.Name(), "err", err)
	}
}

// focusTab runs a tab switch and leaves image mode, since tabs always
// hold text documents.
func (a *App) focusTab(f func() error) {
	if err := f(); err != nil {
		return
	}
	if a.imageMode {
		a.imageMode = false
		a.viewer.Clear()
	}
}

// movePage moves the cursor one content-pane height up or down.
func (a *App) movePage(doc *editor.Document, dir int) {
	page := a.layout().content.H
	if page < 1 {
		page = 1
	}
	for i := 0; i < page; i++ {
		if dir < 0 {
			doc.MoveUp()
		} else {
			doc.MoveDown()
		}
	}
}

// freeScroll moves the viewport without the cursor, clamped to the
// document extents.
func (a *App) freeScroll(doc *editor.Document, dRow, dCol int) {
	doc.SyncView(a.theme)
	area := a.textArea(doc.View.LineCount())

	maxRow := doc.View.LineCount() - area.H
	if maxRow < 0 {
		maxRow = 0
	}
	maxCol := doc.View.MaxLineWidth() - area.W
	if maxCol < 0 {
		maxCol = 0
	}
	doc.Scroll.ScrollBy(dRow, dCol, maxRow, maxCol)
}
