package editor

import "testing"

func TestScrollFollowKeepsCursorVisible(t *testing.T) {
	tests := []struct {
		name       string
		start      Scroll
		row, col   int
		h, w       int
		wantRow    int
		wantCol    int
	}{
		{"cursor below window", Scroll{}, 30, 0, 10, 80, 21, 0},
		{"cursor above window", Scroll{Row: 50}, 30, 0, 10, 80, 30, 0},
		{"cursor inside window", Scroll{Row: 25}, 30, 0, 10, 80, 25, 0},
		{"cursor right of window", Scroll{}, 0, 100, 10, 80, 0, 21},
		{"cursor left of window", Scroll{Col: 40}, 0, 30, 10, 80, 0, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.start
			s.FollowCursor()
			s.Apply(tt.row, tt.col, tt.h, tt.w)
			if s.Row != tt.wantRow || s.Col != tt.wantCol {
				t.Errorf("got (%d, %d), want (%d, %d)", s.Row, s.Col, tt.wantRow, tt.wantCol)
			}
		})
	}
}

func TestScrollApplyIgnoredWhenNotFollowing(t *testing.T) {
	s := Scroll{Row: 5, Col: 5}
	s.Apply(100, 100, 10, 10)
	if s.Row != 5 || s.Col != 5 {
		t.Errorf("offsets moved without follow: (%d, %d)", s.Row, s.Col)
	}
}

func TestScrollByClampsAndReleasesFollow(t *testing.T) {
	s := Scroll{Row: 3}
	s.FollowCursor()

	s.ScrollBy(-10, 0, 100, 50)
	if s.Row != 0 {
		t.Errorf("Row = %d, want 0", s.Row)
	}
	if s.Following() {
		t.Error("wheel scroll must release cursor following")
	}

	s.ScrollBy(500, 500, 100, 50)
	if s.Row != 100 || s.Col != 50 {
		t.Errorf("got (%d, %d), want (100, 50)", s.Row, s.Col)
	}

	// Once released, Apply must leave the free-scrolled position alone.
	s.Apply(0, 0, 10, 10)
	if s.Row != 100 || s.Col != 50 {
		t.Error("Apply moved a free-scrolled viewport")
	}
}

func TestScrollClampTo(t *testing.T) {
	s := Scroll{Row: 40, Col: 40}
	s.ClampTo(10, 0)
	if s.Row != 10 || s.Col != 0 {
		t.Errorf("got (%d, %d), want (10, 0)", s.Row, s.Col)
	}
}
