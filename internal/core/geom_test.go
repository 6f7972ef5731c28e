package core

import "testing"

func TestRectContains(t *testing.T) {
	board := NewRect(4, 2, 46, 24)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"border corner", 4, 2, true},
		{"middle", 20, 12, true},
		{"last cell", 49, 25, true},
		{"right edge is exclusive", 50, 12, false},
		{"bottom edge is exclusive", 20, 26, false},
		{"left of board", 3, 12, false},
		{"hud row above", 20, 1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := board.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectCenteredIn(t *testing.T) {
	tests := []struct {
		name     string
		outer    Rect
		w, h     int
		expected Rect
	}{
		{"board below hud", NewRect(0, 1, 80, 29), 46, 24, Rect{17, 3, 46, 24}},
		{"odd slack rounds up-left", NewRect(0, 0, 11, 5), 4, 2, Rect{3, 1, 4, 2}},
		{"exact fit", NewRect(2, 2, 10, 10), 10, 10, Rect{2, 2, 10, 10}},
		{"too large sticks out", NewRect(0, 0, 10, 4), 14, 6, Rect{-2, -1, 14, 6}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.outer.CenteredIn(tc.w, tc.h); got != tc.expected {
				t.Errorf("CenteredIn(%d, %d) = %+v, expected %+v", tc.w, tc.h, got, tc.expected)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	frame := NewRect(17, 3, 46, 24)
	inner := frame.Inset(1)

	if inner != (Rect{18, 4, 44, 22}) {
		t.Errorf("Inset(1) = %+v, expected {18 4 44 22}", inner)
	}
	if inner.Right() != frame.Right()-1 || inner.Bottom() != frame.Bottom()-1 {
		t.Errorf("Inset(1) edges = (%d, %d), expected (%d, %d)",
			inner.Right(), inner.Bottom(), frame.Right()-1, frame.Bottom()-1)
	}

	if tiny := NewRect(0, 0, 1, 3).Inset(1); tiny.W != 0 || tiny.H != 1 {
		t.Errorf("Inset(1) of 1x3 = %+v, expected zero width and height 1", tiny)
	}
}
