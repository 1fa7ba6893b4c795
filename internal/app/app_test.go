package app

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/fathomedit/fathom/internal/config"
	"github.com/fathomedit/fathom/internal/term"
)

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen, string) {
	t.Helper()

	root := t.TempDir()
	for name, content := range map[string]string{
		"main.go":  "package main\n\nfunc main() {}\n",
		"notes.md": "# notes\n",
	} {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}
	sim.SetSize(100, 30)

	screen := term.NewWith(sim)
	a, err := New(screen, config.Default(), log.New(io.Discard), root)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		a.Close()
		screen.Fini()
	})
	return a, sim, root
}

func screenText(t *testing.T, sim tcell.SimulationScreen) string {
	t.Helper()
	cells, w, h := sim.GetContents()
	var sb strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) > 0 {
				sb.WriteRune(c.Runes[0])
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func key(k tcell.Key, r rune, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, r, mod)
}

func TestGutterWidth(t *testing.T) {
	tests := []struct {
		lines int
		want  int
	}{
		{1, 3}, {9, 3}, {10, 4}, {99, 4}, {100, 5}, {100000, 8},
	}
	for _, tt := range tests {
		if got := gutterWidth(tt.lines); got != tt.want {
			t.Errorf("gutterWidth(%d) = %d, want %d", tt.lines, got, tt.want)
		}
	}
}

func TestLayoutPartitionsScreen(t *testing.T) {
	a, _, _ := newTestApp(t)
	f := a.layout()

	if f.sidebar.W <= 0 || f.sidebar.X != 0 {
		t.Errorf("sidebar = %+v", f.sidebar)
	}
	if f.tabs.X != f.sidebar.W || f.tabs.Y != 0 {
		t.Errorf("tabs = %+v", f.tabs)
	}
	if f.content.Y != 1 || f.content.X != f.tabs.X {
		t.Errorf("content = %+v", f.content)
	}
	if f.status.Y != 29 || f.status.W != 100 {
		t.Errorf("status = %+v", f.status)
	}
}

func TestOpenPathRoutesTextToSession(t *testing.T) {
	a, _, root := newTestApp(t)

	a.openPath(filepath.Join(root, "main.go"))
	if a.imageMode {
		t.Error("text file must not enter image mode")
	}
	if a.sess.Active() == nil {
		t.Fatal("no active document after open")
	}
	if got := a.sess.Active().Name(); got != "main.go" {
		t.Errorf("active = %q", got)
	}
}

func TestOpenPathRoutesImagesToViewer(t *testing.T) {
	a, _, root := newTestApp(t)

	// Decode will fail on the bogus bytes; routing is what matters here.
	img := filepath.Join(root, "shot.png")
	if err := os.WriteFile(img, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	a.openPath(img)
	if !a.imageMode {
		t.Error("image file must enter image mode")
	}
	if a.viewer.Path() != img {
		t.Errorf("viewer path = %q", a.viewer.Path())
	}
	if len(a.sess.Tabs()) != 0 {
		t.Error("image must not open a session tab")
	}
}

func TestTypingAndRender(t *testing.T) {
	a, sim, root := newTestApp(t)
	a.openPath(filepath.Join(root, "main.go"))

	for _, r := range "// ok\n" {
		if r == '\n' {
			a.handleKey(key(tcell.KeyEnter, 0, 0))
		} else {
			a.handleKey(key(tcell.KeyRune, r, 0))
		}
	}

	if got := a.sess.Active().Buf.Line(0); got != "// ok" {
		t.Errorf("line 0 = %q", got)
	}

	a.render()
	out := screenText(t, sim)
	if !strings.Contains(out, "// ok") {
		t.Error("typed text not rendered")
	}
	if !strings.Contains(out, "main.go*") {
		t.Error("modified marker missing from tab bar")
	}
}

func TestSaveClearsModifiedMarker(t *testing.T) {
	a, _, root := newTestApp(t)
	path := filepath.Join(root, "main.go")
	a.openPath(path)

	a.handleKey(key(tcell.KeyRune, 'x', 0))
	a.handleKey(key(tcell.KeyCtrlS, 0, 0))

	if a.sess.Active().Buf.IsModified() {
		t.Error("buffer still modified after save")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "x") {
		t.Errorf("saved content = %q", data)
	}
	if got := a.statusMessage(); !strings.Contains(got, "saved") {
		t.Errorf("status = %q, want save confirmation", got)
	}
}

func TestCloseRefusedForUnsaved(t *testing.T) {
	a, _, root := newTestApp(t)
	a.openPath(filepath.Join(root, "main.go"))
	a.handleKey(key(tcell.KeyRune, 'x', 0))

	a.handleKey(key(tcell.KeyCtrlW, 0, 0))
	if len(a.sess.Tabs()) != 1 {
		t.Error("unsaved tab was closed")
	}
	if got := a.statusMessage(); !strings.Contains(got, "unsaved") {
		t.Errorf("status = %q, want unsaved warning", got)
	}
}

func TestQuitKeys(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.handleKey(key(tcell.KeyCtrlQ, 0, 0))
	if !a.quit {
		t.Error("ctrl-q must quit")
	}
}

func TestTabCycling(t *testing.T) {
	a, _, root := newTestApp(t)
	a.openPath(filepath.Join(root, "main.go"))
	a.openPath(filepath.Join(root, "notes.md"))

	a.handleKey(key(tcell.KeyCtrlRightSq, 0, 0))
	if got := a.sess.Active().Name(); got != "main.go" {
		t.Errorf("after next: %q", got)
	}
	a.handleKey(key(tcell.KeyEscape, 0, 0))
	if got := a.sess.Active().Name(); got != "notes.md" {
		t.Errorf("after prev: %q", got)
	}
}

func TestTabSegmentsHitTest(t *testing.T) {
	a, _, root := newTestApp(t)
	a.openPath(filepath.Join(root, "main.go"))
	a.openPath(filepath.Join(root, "notes.md"))

	segs := a.tabSegments()
	if len(segs) != 2 {
		t.Fatalf("got %d segments", len(segs))
	}
	if segs[0].x1 <= segs[0].x0 || segs[1].x0 < segs[0].x1 {
		t.Errorf("segments overlap: %+v", segs)
	}

	a.tabClick(segs[0].x0 + 1)
	if got := a.sess.ActiveIndex(); got != 0 {
		t.Errorf("ActiveIndex after click = %d, want 0", got)
	}
}

func TestStatusMessageExpires(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.setStatus("hello")
	if a.statusMessage() != "hello" {
		t.Error("fresh status missing")
	}
	a.statusUntil = time.Now().Add(-time.Second)
	if a.statusMessage() != "" {
		t.Error("expired status still visible")
	}
}

func TestSidebarRendersListing(t *testing.T) {
	a, sim, _ := newTestApp(t)
	a.render()
	out := screenText(t, sim)
	if !strings.Contains(out, "main.go") || !strings.Contains(out, "notes.md") {
		t.Error("sidebar listing missing entries")
	}
}

func TestFreeScrollReleasesCursorFollow(t *testing.T) {
	a, _, root := newTestApp(t)
	big := filepath.Join(root, "big.go")
	if err := os.WriteFile(big, []byte(strings.Repeat("line\n", 200)), 0o644); err != nil {
		t.Fatal(err)
	}
	a.openPath(big)

	doc := a.sess.Active()
	a.handleKey(key(tcell.KeyDown, 0, tcell.ModAlt))
	if doc.Scroll.Row != 1 {
		t.Errorf("Scroll.Row = %d, want 1", doc.Scroll.Row)
	}
	if doc.Scroll.Following() {
		t.Error("alt-scroll must release cursor following")
	}

	a.handleKey(key(tcell.KeyDown, 0, 0))
	if !doc.Scroll.Following() {
		t.Error("cursor move must re-arm following")
	}
}

func TestFreeScrollClampsToLastPage(t *testing.T) {
	a, _, root := newTestApp(t)
	big := filepath.Join(root, "big.go")
	if err := os.WriteFile(big, []byte(strings.Repeat("line\n", 100)), 0o644); err != nil {
		t.Fatal(err)
	}
	a.openPath(big)
	doc := a.sess.Active()
	doc.SyncView(a.theme)

	// Wheel far past the end; the last page must stay on screen.
	for i := 0; i < 300; i++ {
		a.handleKey(key(tcell.KeyDown, 0, tcell.ModAlt))
	}

	area := a.textArea(doc.View.LineCount())
	want := doc.View.LineCount() - area.H
	if doc.Scroll.Row != want {
		t.Errorf("Scroll.Row = %d, want %d (total lines %d, pane height %d)",
			doc.Scroll.Row, want, doc.View.LineCount(), area.H)
	}

	// A document shorter than the pane never scrolls vertically.
	a.openPath(filepath.Join(root, "main.go"))
	short := a.sess.Active()
	a.handleKey(key(tcell.KeyDown, 0, tcell.ModAlt))
	if short.Scroll.Row != 0 {
		t.Errorf("short document Scroll.Row = %d, want 0", short.Scroll.Row)
	}
}

func TestMouseClickPlacesCursor(t *testing.T) {
	a, _, root := newTestApp(t)
	a.openPath(filepath.Join(root, "main.go"))
	doc := a.sess.Active()
	doc.SyncView(a.theme)

	area := a.textArea(doc.View.LineCount())
	ev := tcell.NewEventMouse(area.X+4, area.Y, tcell.Button1, 0)
	a.handleMouse(ev)

	if doc.Cur.Line != 0 || doc.Cur.Col != 4 {
		t.Errorf("cursor = %v, want (0, 4)", doc.Cur)
	}

	// Gutter clicks land on column zero.
	ev = tcell.NewEventMouse(area.X-1, area.Y, tcell.Button1, 0)
	a.handleMouse(ev)
	if doc.Cur.Col != 0 {
		t.Errorf("gutter click col = %d, want 0", doc.Cur.Col)
	}
}
