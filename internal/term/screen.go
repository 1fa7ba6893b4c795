// Package term wraps the tcell screen behind the small surface the
// renderer uses: cell writes, string prints with width-aware advance,
// and an event channel suitable for select-based polling.
package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Screen owns the terminal for the lifetime of the program.
type Screen struct {
	tc   tcell.Screen
	quit chan struct{}
}

// New initializes the terminal: raw mode, mouse reporting, and the
// default style. Failure here is fatal to the caller; there is no
// degraded mode without a terminal.
func New(defStyle tcell.Style) (*Screen, error) {
	tc, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := tc.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	tc.EnableMouse()
	tc.SetStyle(defStyle)
	tc.Clear()

	return &Screen{tc: tc, quit: make(chan struct{})}, nil
}

// NewWith wraps an already initialized tcell screen. Tests use it with
// tcell's simulation screen.
func NewWith(tc tcell.Screen) *Screen {
	return &Screen{tc: tc, quit: make(chan struct{})}
}

// Events starts event delivery and returns the channel. The channel
// closes when Fini runs.
func (s *Screen) Events() <-chan tcell.Event {
	ch := make(chan tcell.Event, 32)
	go s.tc.ChannelEvents(ch, s.quit)
	return ch
}

// Fini restores the terminal. Safe to call once; must run before the
// process exits, including on panic.
func (s *Screen) Fini() {
	close(s.quit)
	s.tc.Fini()
}

// Size returns the terminal dimensions in cells.
func (s *Screen) Size() (w, h int) {
	return s.tc.Size()
}

// SetCell writes one cell.
func (s *Screen) SetCell(x, y int, style tcell.Style, r rune) {
	s.tc.SetContent(x, y, r, nil, style)
}

// Print writes text starting at (x, y), advancing by display width, and
// returns the x position after the last cell. Drawing stops at maxX.
func (s *Screen) Print(x, y int, style tcell.Style, text string, maxX int) int {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
		}
		if x+w > maxX {
			break
		}
		s.tc.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

// Fill paints a rectangle with one rune and style.
func (s *Screen) Fill(x, y, w, h int, style tcell.Style, r rune) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.tc.SetContent(col, row, r, nil, style)
		}
	}
}

// ShowCursor places the hardware cursor.
func (s *Screen) ShowCursor(x, y int) {
	s.tc.ShowCursor(x, y)
}

// HideCursor removes the hardware cursor.
func (s *Screen) HideCursor() {
	s.tc.HideCursor()
}

// Show flushes pending cell writes to the terminal.
func (s *Screen) Show() {
	s.tc.Show()
}

// Sync forces a full repaint, used after resize.
func (s *Screen) Sync() {
	s.tc.Sync()
}

// Clear erases the backing cell buffer.
func (s *Screen) Clear() {
	s.tc.Clear()
}
