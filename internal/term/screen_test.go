package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T, w, h int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}
	sim.SetSize(w, h)
	s := NewWith(sim)
	t.Cleanup(s.Fini)
	return s, sim
}

func cellRune(t *testing.T, sim tcell.SimulationScreen, x, y int) rune {
	t.Helper()
	cells, w, _ := sim.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return ' '
	}
	return c.Runes[0]
}

func TestPrintAdvancesByDisplayWidth(t *testing.T) {
	s, sim := newSimScreen(t, 20, 4)

	end := s.Print(0, 0, tcell.StyleDefault, "a日b", 20)
	s.Show()

	if end != 4 {
		t.Errorf("end x = %d, want 4", end)
	}
	if got := cellRune(t, sim, 0, 0); got != 'a' {
		t.Errorf("cell 0 = %q", got)
	}
	if got := cellRune(t, sim, 1, 0); got != '日' {
		t.Errorf("cell 1 = %q", got)
	}
	if got := cellRune(t, sim, 3, 0); got != 'b' {
		t.Errorf("cell 3 = %q", got)
	}
}

func TestPrintStopsAtMaxX(t *testing.T) {
	s, sim := newSimScreen(t, 20, 4)

	end := s.Print(0, 0, tcell.StyleDefault, "abcdef", 3)
	s.Show()

	if end != 3 {
		t.Errorf("end x = %d, want 3", end)
	}
	if got := cellRune(t, sim, 3, 0); got != ' ' {
		t.Errorf("cell beyond maxX = %q, want blank", got)
	}
}

func TestPrintWideRuneDoesNotStraddleBoundary(t *testing.T) {
	s, _ := newSimScreen(t, 20, 4)

	// The wide rune needs two cells but only one remains; it must not
	// be drawn half-in.
	end := s.Print(0, 0, tcell.StyleDefault, "ab日", 3)
	if end != 2 {
		t.Errorf("end x = %d, want 2", end)
	}
}

func TestFill(t *testing.T) {
	s, sim := newSimScreen(t, 10, 5)

	s.Fill(2, 1, 3, 2, tcell.StyleDefault, '#')
	s.Show()

	if got := cellRune(t, sim, 2, 1); got != '#' {
		t.Errorf("inside fill = %q", got)
	}
	if got := cellRune(t, sim, 4, 2); got != '#' {
		t.Errorf("inside fill = %q", got)
	}
	if got := cellRune(t, sim, 1, 1); got == '#' {
		t.Error("fill leaked left of the rectangle")
	}
	if got := cellRune(t, sim, 2, 3); got == '#' {
		t.Error("fill leaked below the rectangle")
	}
}
