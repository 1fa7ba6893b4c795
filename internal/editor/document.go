package editor

import (
	"errors"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/fathomedit/fathom/internal/engine/buffer"
	"github.com/fathomedit/fathom/internal/engine/cursor"
	"github.com/fathomedit/fathom/internal/syntax"
)

// ErrInvalidEncoding reports a file whose bytes are not valid UTF-8. The
// document still opens, on an empty buffer.
var ErrInvalidEncoding = errors.New("invalid utf-8 encoding")

// Document is one open file: its buffer, cursor, scroll state, language,
// and derived view cache.
type Document struct {
	Path   string
	Lang   syntax.Language
	Buf    *buffer.Buffer
	Cur    cursor.Cursor
	Scroll Scroll
	View   ViewCache
}

// NewDocument creates an empty unnamed document.
func NewDocument() *Document {
	return &Document{Buf: buffer.New()}
}

// Open reads path into a new document. The language is resolved through
// reg and buffers take tabWidth for display layout. Unreadable files and
// invalid UTF-8 degrade to an empty buffer bound to the path so the user
// can still edit and save; the cause is returned for the status surface.
func Open(path string, reg *syntax.Registry, tabWidth int) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Document{
			Path: path,
			Lang: reg.ForFile(path, nil),
			Buf:  buffer.New(buffer.WithTabWidth(tabWidth)),
		}, err
	}
	if !utf8.Valid(data) {
		return &Document{
			Path: path,
			Lang: reg.ForFile(path, nil),
			Buf:  buffer.New(buffer.WithTabWidth(tabWidth)),
		}, ErrInvalidEncoding
	}

	return &Document{
		Path: path,
		Lang: reg.ForFile(path, data),
		Buf:  buffer.FromString(string(data), buffer.WithTabWidth(tabWidth)),
	}, nil
}

// Name returns the document's display name.
func (d *Document) Name() string {
	if d.Path == "" {
		return "[untitled]"
	}
	return filepath.Base(d.Path)
}

// Save writes the buffer to the document's path and records the saved
// revision.
func (d *Document) Save() error {
	if err := os.WriteFile(d.Path, []byte(d.Buf.Text()), 0o644); err != nil {
		return err
	}
	d.Buf.MarkSaved()
	return nil
}

// Editing operations. Each clamps the cursor first, applies the edit at
// the cursor, moves the cursor past it, and re-arms cursor following.

// InsertRune inserts a single character at the cursor.
func (d *Document) InsertRune(r rune) error {
	d.Cur = d.Cur.Clamp(d.Buf)
	if _, err := d.Buf.Insert(d.Cur.CharOffset(d.Buf), string(r)); err != nil {
		return err
	}
	d.Cur.Col++
	d.Scroll.FollowCursor()
	return nil
}

// InsertNewline breaks the line at the cursor.
func (d *Document) InsertNewline() error {
	d.Cur = d.Cur.Clamp(d.Buf)
	if _, err := d.Buf.Insert(d.Cur.CharOffset(d.Buf), "\n"); err != nil {
		return err
	}
	d.Cur.Line++
	d.Cur.Col = 0
	d.Scroll.FollowCursor()
	return nil
}

// DeleteBackward deletes the character before the cursor. At column zero
// it joins the line with the previous one.
func (d *Document) DeleteBackward() error {
	d.Cur = d.Cur.Clamp(d.Buf)
	off := d.Cur.CharOffset(d.Buf)
	if off == 0 {
		return nil
	}

	if d.Cur.Col > 0 {
		d.Cur.Col--
	} else {
		d.Cur.Line--
		d.Cur.Col = d.Buf.LineLen(d.Cur.Line)
	}
	d.Scroll.FollowCursor()
	return d.Buf.Delete(off-1, off)
}

// DeleteForward deletes the character under the cursor. At end of line
// it joins the next line onto this one.
func (d *Document) DeleteForward() error {
	d.Cur = d.Cur.Clamp(d.Buf)
	off := d.Cur.CharOffset(d.Buf)
	if off >= d.Buf.Len() {
		return nil
	}
	d.Scroll.FollowCursor()
	return d.Buf.Delete(off, off+1)
}

// KillToLineEnd deletes from the cursor to the end of the line. When the
// cursor already sits at end of line, it deletes the newline instead,
// merging the next line up.
func (d *Document) KillToLineEnd() error {
	d.Cur = d.Cur.Clamp(d.Buf)
	off := d.Cur.CharOffset(d.Buf)
	lineEnd := d.Buf.LineToChar(d.Cur.Line) + d.Buf.LineLen(d.Cur.Line)

	d.Scroll.FollowCursor()
	if off < lineEnd {
		return d.Buf.Delete(off, lineEnd)
	}
	if off < d.Buf.Len() {
		return d.Buf.Delete(off, off+1)
	}
	return nil
}

// Movement. Each clamps against the current buffer and re-arms
// following.

func (d *Document) MoveLeft()  { d.move(func(c cursor.Cursor) cursor.Cursor { return c.Left(d.Buf) }) }
func (d *Document) MoveRight() { d.move(func(c cursor.Cursor) cursor.Cursor { return c.Right(d.Buf) }) }
func (d *Document) MoveUp()    { d.move(func(c cursor.Cursor) cursor.Cursor { return c.Up(d.Buf) }) }
func (d *Document) MoveDown()  { d.move(func(c cursor.Cursor) cursor.Cursor { return c.Down(d.Buf) }) }

// MoveLineStart moves to column zero.
func (d *Document) MoveLineStart() {
	d.move(func(c cursor.Cursor) cursor.Cursor { return c.LineStart() })
}

// MoveLineEnd moves past the last character of the line.
func (d *Document) MoveLineEnd() {
	d.move(func(c cursor.Cursor) cursor.Cursor { return c.LineEnd(d.Buf) })
}

func (d *Document) move(f func(cursor.Cursor) cursor.Cursor) {
	d.Cur = f(d.Cur.Clamp(d.Buf))
	d.Scroll.FollowCursor()
}

// SetCursor places the cursor from a mouse click given in line and
// display column, resolving the column against the clicked line's text.
func (d *Document) SetCursor(line, displayCol int) {
	c := cursor.Cursor{Line: line}.Clamp(d.Buf)
	text := d.Buf.Line(c.Line)
	c.Col = cursor.ColFromDisplay(text, displayCol, d.Buf.TabWidth())
	d.Cur = c
	d.Scroll.FollowCursor()
}

// DisplayCol returns the cursor's display column in its line.
func (d *Document) DisplayCol() int {
	c := d.Cur.Clamp(d.Buf)
	return cursor.DisplayCol(d.Buf.Line(c.Line), c.Col, d.Buf.TabWidth())
}

// SyncView rebuilds the document's view cache if the buffer changed.
func (d *Document) SyncView(theme *syntax.Theme) {
	d.View.Sync(d.Buf, d.Lang, theme)
}
