package core

import "testing"

func TestRectFits(t *testing.T) {
	tests := []struct {
		name     string
		r        Rect
		expected bool
	}{
		{"inside", NewRect(10, 10, 20, 15), true},
		{"exact", NewRect(0, 0, 40, 30), true},
		{"too wide", NewRect(0, 0, 41, 30), false},
		{"past bottom", NewRect(5, 20, 10, 11), false},
		{"negative x", NewRect(-1, 0, 10, 10), false},
		{"negative y", NewRect(0, -1, 10, 10), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Fits(40, 30); got != tc.expected {
				t.Errorf("%+v.Fits(40, 30) = %v, expected %v", tc.r, got, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	if !r.Fits(25, 25) {
		t.Error("Fits(25, 25) should be true")
	}
	if r.Fits(24, 25) {
		t.Error("Fits(24, 25) should be false")
	}
}

func TestRectCenterIn(t *testing.T) {
	r := NewRect(3, 3, 10, 4).CenterIn(30, 10)
	if r.X != 10 || r.Y != 3 || r.W != 10 || r.H != 4 {
		t.Errorf("CenterIn(30, 10) = %+v, expected {10 3 10 4}", r)
	}

	// Never above or left of the origin
	r = NewRect(0, 0, 40, 20).CenterIn(30, 10)
	if r.X != 0 || r.Y != 0 {
		t.Errorf("CenterIn on a small area = %+v, expected origin", r)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Error("Min(5, 10) should be 5")
	}
	if Min(10, 5) != 5 {
		t.Error("Min(10, 5) should be 5")
	}
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
	if Max(10, 5) != 10 {
		t.Error("Max(10, 5) should be 10")
	}
}
