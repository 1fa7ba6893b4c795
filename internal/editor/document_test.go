package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fathomedit/fathom/internal/engine/cursor"
	"github.com/fathomedit/fathom/internal/syntax"
)

func newTestDoc(t *testing.T, content string) *Document {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.go")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := Open(path, syntax.NewRegistry(nil), 4)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestOpenResolvesLanguage(t *testing.T) {
	doc := newTestDoc(t, "package main\n")
	if doc.Lang != syntax.LangGo {
		t.Errorf("Lang = %v, want LangGo", doc.Lang)
	}
	if got := doc.Buf.Text(); got != "package main\n" {
		t.Errorf("Text() = %q", got)
	}
	if doc.Buf.IsModified() {
		t.Error("freshly opened document should be clean")
	}
}

func TestOpenMissingFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.rs")
	doc, err := Open(path, syntax.NewRegistry(nil), 4)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if doc == nil {
		t.Fatal("missing file must still produce a document")
	}
	if doc.Path != path {
		t.Errorf("Path = %q, want %q", doc.Path, path)
	}
	if doc.Lang != syntax.LangRust {
		t.Errorf("Lang = %v, want LangRust", doc.Lang)
	}
	if !doc.Buf.IsEmpty() {
		t.Error("buffer should be empty")
	}
}

func TestOpenInvalidEncodingDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.go")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 'h', 'i', 0x80}, 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Open(path, syntax.NewRegistry(nil), 4)
	if err != ErrInvalidEncoding {
		t.Fatalf("Open() error = %v, want ErrInvalidEncoding", err)
	}
	if !doc.Buf.IsEmpty() {
		t.Errorf("buffer = %q, want empty content", doc.Buf.Text())
	}
	if doc.Path != path {
		t.Errorf("Path = %q, want %q", doc.Path, path)
	}
}

func TestOpenAppliesTabWidth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabs.go")
	if err := os.WriteFile(path, []byte("\tx\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Open(path, syntax.NewRegistry(nil), 8)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Buf.TabWidth(); got != 8 {
		t.Fatalf("TabWidth() = %d, want 8", got)
	}
	doc.Cur = cursor.New(0, 1)
	if got := doc.DisplayCol(); got != 8 {
		t.Errorf("DisplayCol() = %d, want 8", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	doc := newTestDoc(t, "one\n")
	if err := doc.InsertRune('x'); err != nil {
		t.Fatal(err)
	}
	if !doc.Buf.IsModified() {
		t.Fatal("expected modified buffer")
	}

	if err := doc.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if doc.Buf.IsModified() {
		t.Error("buffer should be clean after save")
	}

	data, err := os.ReadFile(doc.Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "xone\n" {
		t.Errorf("file content = %q, want %q", data, "xone\n")
	}
}

func TestInsertRuneAdvancesCursor(t *testing.T) {
	doc := newTestDoc(t, "ab\n")
	doc.Cur = cursor.New(0, 1)

	if err := doc.InsertRune('世'); err != nil {
		t.Fatal(err)
	}
	if got := doc.Buf.Text(); got != "a世b\n" {
		t.Errorf("Text() = %q", got)
	}
	if doc.Cur != cursor.New(0, 2) {
		t.Errorf("cursor = %v, want (0, 2)", doc.Cur)
	}
	if !doc.Scroll.Following() {
		t.Error("edit must re-arm cursor following")
	}
}

func TestInsertNewline(t *testing.T) {
	doc := newTestDoc(t, "abcd\n")
	doc.Cur = cursor.New(0, 2)

	if err := doc.InsertNewline(); err != nil {
		t.Fatal(err)
	}
	if got := doc.Buf.Text(); got != "ab\ncd\n" {
		t.Errorf("Text() = %q", got)
	}
	if doc.Cur != cursor.New(1, 0) {
		t.Errorf("cursor = %v, want (1, 0)", doc.Cur)
	}
}

func TestDeleteBackward(t *testing.T) {
	doc := newTestDoc(t, "ab\ncd\n")

	// Mid-line: remove the previous character.
	doc.Cur = cursor.New(1, 1)
	if err := doc.DeleteBackward(); err != nil {
		t.Fatal(err)
	}
	if got := doc.Buf.Text(); got != "ab\nd\n" {
		t.Errorf("Text() = %q", got)
	}
	if doc.Cur != cursor.New(1, 0) {
		t.Errorf("cursor = %v", doc.Cur)
	}

	// Column zero: join with the previous line, cursor at the seam.
	if err := doc.DeleteBackward(); err != nil {
		t.Fatal(err)
	}
	if got := doc.Buf.Text(); got != "abd\n" {
		t.Errorf("Text() = %q", got)
	}
	if doc.Cur != cursor.New(0, 2) {
		t.Errorf("cursor = %v, want (0, 2)", doc.Cur)
	}

	// Start of buffer: no-op.
	doc.Cur = cursor.New(0, 0)
	if err := doc.DeleteBackward(); err != nil {
		t.Fatal(err)
	}
	if got := doc.Buf.Text(); got != "abd\n" {
		t.Errorf("Text() = %q", got)
	}
}

func TestDeleteForward(t *testing.T) {
	doc := newTestDoc(t, "ab\ncd")

	// At end of line: join the next line up.
	doc.Cur = cursor.New(0, 2)
	if err := doc.DeleteForward(); err != nil {
		t.Fatal(err)
	}
	if got := doc.Buf.Text(); got != "abcd" {
		t.Errorf("Text() = %q", got)
	}

	// At end of buffer: no-op.
	doc.Cur = cursor.New(0, 4)
	if err := doc.DeleteForward(); err != nil {
		t.Fatal(err)
	}
	if got := doc.Buf.Text(); got != "abcd" {
		t.Errorf("Text() = %q", got)
	}
}

func TestKillToLineEnd(t *testing.T) {
	doc := newTestDoc(t, "hello world\nnext\n")

	// Mid-line: delete to end of line, newline survives.
	doc.Cur = cursor.New(0, 5)
	if err := doc.KillToLineEnd(); err != nil {
		t.Fatal(err)
	}
	if got := doc.Buf.Text(); got != "hello\nnext\n" {
		t.Errorf("Text() = %q", got)
	}

	// At end of line: delete the newline, merging lines.
	if err := doc.KillToLineEnd(); err != nil {
		t.Fatal(err)
	}
	if got := doc.Buf.Text(); got != "hellonext\n" {
		t.Errorf("Text() = %q", got)
	}

	// At end of buffer: no-op.
	doc.Cur = cursor.New(1, 0)
	doc.Cur = doc.Cur.Clamp(doc.Buf)
	if err := doc.KillToLineEnd(); err != nil {
		t.Fatal(err)
	}
}

func TestSetCursorFromClick(t *testing.T) {
	doc := newTestDoc(t, "日本 abc\nxy\n")

	// Click on the second cell of the first wide rune lands on it.
	doc.SetCursor(0, 1)
	if doc.Cur != cursor.New(0, 0) {
		t.Errorf("cursor = %v, want (0, 0)", doc.Cur)
	}

	// Click past the end of a line clamps to line length.
	doc.SetCursor(1, 50)
	if doc.Cur != cursor.New(1, 2) {
		t.Errorf("cursor = %v, want (1, 2)", doc.Cur)
	}

	// Click below the last line clamps to it.
	doc.SetCursor(99, 0)
	if doc.Cur.Line != 2 {
		t.Errorf("cursor line = %d, want 2", doc.Cur.Line)
	}
}

func TestDisplayCol(t *testing.T) {
	doc := newTestDoc(t, "日x\n")
	doc.Cur = cursor.New(0, 1)
	if got := doc.DisplayCol(); got != 2 {
		t.Errorf("DisplayCol() = %d, want 2", got)
	}
}
