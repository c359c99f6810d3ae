package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "vehicle and obstacle sharing a row",
			a:        NewRect(100, 300, 50, 50),
			b:        NewRect(120, 300, 50, 50),
			expected: true,
		},
		{
			name:     "obstacle one lane away",
			a:        NewRect(100, 300, 50, 50),
			b:        NewRect(200, 300, 50, 50),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent vertical (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 10, 10, 10),
			expected: false,
		},
		{
			name:     "x overlap only",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 40, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "single unit overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9, 9, 10, 10),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"corner", 10, 10, true},
		{"far edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside below", 15, 5, false},
		{"outside above", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
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

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestRectFlipY(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	flipped := r.FlipY(100)
	if flipped != NewRect(5, 75, 20, 15) {
		t.Errorf("FlipY(100) = %+v, expected {5 75 20 15}", flipped)
	}
	if back := flipped.FlipY(100); back != r {
		t.Errorf("flipping twice = %+v, expected %+v", back, r)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionLeft) {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionLeft)
	f.Set(ActionRight)
	f.Set(ActionLeft)

	if !f.Has(ActionLeft) || !f.Has(ActionRight) {
		t.Error("Has() should report both steering actions")
	}

	seq := f.Sequence()
	want := []Action{ActionLeft, ActionRight, ActionLeft}
	if len(seq) != len(want) {
		t.Fatalf("Sequence() length = %d, expected %d", len(seq), len(want))
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Errorf("Sequence()[%d] = %v, expected %v", i, seq[i], want[i])
		}
	}

	f.Clear()
	if f.Has(ActionLeft) || len(f.Sequence()) != 0 {
		t.Error("Clear() should drop all actions")
	}

	var zero InputFrame
	if zero.Has(ActionRestart) {
		t.Error("zero-value frame should report no actions")
	}
}

func TestActionString(t *testing.T) {
	if ActionLeft.String() != "Left" {
		t.Errorf("ActionLeft.String() = %q", ActionLeft.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action should stringify as Unknown")
	}
}
