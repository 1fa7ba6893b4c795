// Package session multiplexes open documents across tabs.
//
// Exactly one document is live at a time. Switching away from a modified
// document parks its live and saved snapshots, cursor, and scroll
// position; switching away from a clean document drops it, since the
// file on disk is authoritative. The active path is never a parked key,
// and restoring a parked entry reproduces the document exactly as it
// was, unsaved state included.
package session

import (
	"errors"
	"path/filepath"

	"github.com/fathomedit/fathom/internal/editor"
	"github.com/fathomedit/fathom/internal/engine/buffer"
	"github.com/fathomedit/fathom/internal/engine/cursor"
	"github.com/fathomedit/fathom/internal/syntax"
)

// Errors returned by session operations.
var (
	ErrUnsavedChanges = errors.New("tab has unsaved changes")
	ErrNoActiveTab    = errors.New("no active tab")
)

// parked is the retained state of a modified document that lost focus.
type parked struct {
	snap   *buffer.Snapshot
	saved  *buffer.Snapshot
	lang   syntax.Language
	cur    cursor.Cursor
	scroll editor.Scroll
}

// Tab describes one tab for rendering.
type Tab struct {
	Path     string
	Name     string
	Modified bool
}

// Session owns the ordered tab set, the active document, and the parked
// states.
type Session struct {
	reg      *syntax.Registry
	tabWidth int
	tabs     []string
	active   int
	doc      *editor.Document
	parked   map[string]*parked
}

// New creates an empty session resolving languages through reg. Buffers
// opened by the session use tabWidth for display layout.
func New(reg *syntax.Registry, tabWidth int) *Session {
	return &Session{
		reg:      reg,
		tabWidth: tabWidth,
		active:   -1,
		parked:   make(map[string]*parked),
	}
}

// Active returns the focused document, or nil when no tab is open.
func (s *Session) Active() *editor.Document {
	return s.doc
}

// ActiveIndex returns the index of the focused tab, or -1.
func (s *Session) ActiveIndex() int {
	return s.active
}

// Tabs returns the tab list in order. A parked tab is modified by
// definition; the active tab asks its buffer.
func (s *Session) Tabs() []Tab {
	out := make([]Tab, len(s.tabs))
	for i, path := range s.tabs {
		t := Tab{Path: path, Name: baseName(path)}
		if i == s.active && s.doc != nil {
			t.Modified = s.doc.Buf.IsModified()
		} else if _, ok := s.parked[path]; ok {
			t.Modified = true
		}
		out[i] = t
	}
	return out
}

// Open focuses path, adding a tab for it if none exists. The current
// document is parked or dropped first. If the file cannot be read the
// tab still opens on an empty buffer and the read error is returned for
// the status surface.
func (s *Session) Open(path string) error {
	if s.doc != nil && s.doc.Path == path {
		return nil
	}

	s.stash()

	idx := s.indexOf(path)
	if idx < 0 {
		s.tabs = append(s.tabs, path)
		idx = len(s.tabs) - 1
	}
	s.active = idx
	return s.materialize(path)
}

// FocusIndex switches to the tab at idx.
func (s *Session) FocusIndex(idx int) error {
	if idx < 0 || idx >= len(s.tabs) {
		return ErrNoActiveTab
	}
	if idx == s.active {
		return nil
	}
	s.stash()
	s.active = idx
	return s.materialize(s.tabs[idx])
}

// FocusNext cycles forward through the tabs.
func (s *Session) FocusNext() error {
	if len(s.tabs) < 2 {
		return nil
	}
	return s.FocusIndex((s.active + 1) % len(s.tabs))
}

// FocusPrev cycles backward through the tabs.
func (s *Session) FocusPrev() error {
	if len(s.tabs) < 2 {
		return nil
	}
	return s.FocusIndex((s.active - 1 + len(s.tabs)) % len(s.tabs))
}

// CloseActive closes the focused tab and focuses the index-adjacent
// one. A modified document refuses to close; save first.
func (s *Session) CloseActive() error {
	if s.doc == nil {
		return ErrNoActiveTab
	}
	if s.doc.Buf.IsModified() {
		return ErrUnsavedChanges
	}

	s.tabs = append(s.tabs[:s.active], s.tabs[s.active+1:]...)
	s.doc = nil

	if len(s.tabs) == 0 {
		s.active = -1
		return nil
	}
	if s.active >= len(s.tabs) {
		s.active = len(s.tabs) - 1
	}
	return s.materialize(s.tabs[s.active])
}

// stash puts the current document away: parked if modified, dropped if
// clean.
func (s *Session) stash() {
	if s.doc == nil {
		return
	}
	if s.doc.Buf.IsModified() {
		s.parked[s.doc.Path] = &parked{
			snap:   s.doc.Buf.Snapshot(),
			saved:  s.doc.Buf.SavedSnapshot(),
			lang:   s.doc.Lang,
			cur:    s.doc.Cur,
			scroll: s.doc.Scroll,
		}
	}
	s.doc = nil
}

// materialize makes path the live document, from its parked state when
// one exists, otherwise from disk. A restored document comes back
// exactly as parked; in particular the scroll keeps its follow state, so
// a free-scrolled viewport stays where the user left it.
func (s *Session) materialize(path string) error {
	if p, ok := s.parked[path]; ok {
		delete(s.parked, path)

		doc := &editor.Document{
			Path: path,
			Lang: p.lang,
			Buf:  buffer.New(),
			Cur:  p.cur,
		}
		doc.Buf.Restore(p.snap, p.saved)
		doc.Scroll = p.scroll
		s.doc = doc
		return nil
	}

	doc, err := editor.Open(path, s.reg, s.tabWidth)
	s.doc = doc
	return err
}

func (s *Session) indexOf(path string) int {
	for i, p := range s.tabs {
		if p == path {
			return i
		}
	}
	return -1
}

func baseName(path string) string {
	return filepath.Base(path)
}
