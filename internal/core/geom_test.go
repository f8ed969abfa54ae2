package core

import (
	"math"
	"testing"
)

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 5, Y: 5, W: 10, H: 10},
			expected: true,
		},
		{
			name:     "touching edge",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 10, Y: 0, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "standing on top",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 2, Y: 10, W: 4, H: 4},
			expected: false,
		},
		{
			name:     "contained",
			a:        Box{X: 0, Y: 0, W: 32, H: 32},
			b:        Box{X: 8, Y: 8, W: 4, H: 4},
			expected: true,
		},
		{
			name:     "within epsilon",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 9.995, Y: 0, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "far apart",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 100, Y: 100, W: 10, H: 10},
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b, 0.01); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a, 0.01); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxEdges(t *testing.T) {
	b := Box{X: 5, Y: 10, W: 20, H: 16}

	if b.Right() != 25 {
		t.Errorf("Right() = %v, expected 25", b.Right())
	}
	if b.Bottom() != 26 {
		t.Errorf("Bottom() = %v, expected 26", b.Bottom())
	}
	if c := b.Center(); c != V(15, 18) {
		t.Errorf("Center() = %v, expected (15, 18)", c)
	}
}

func TestVecOps(t *testing.T) {
	v := V(3, 4)
	if v.Len() != 5 {
		t.Errorf("Len() = %v, expected 5", v.Len())
	}
	if got := v.Add(V(1, 1)); got != V(4, 5) {
		t.Errorf("Add() = %v, expected (4, 5)", got)
	}
	if got := v.Sub(V(1, 1)); got != V(2, 3) {
		t.Errorf("Sub() = %v, expected (2, 3)", got)
	}
	if got := v.Scale(2); got != V(6, 8) {
		t.Errorf("Scale() = %v, expected (6, 8)", got)
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
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
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

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, expected float64
	}{
		{0, 100, 0, 0},
		{0, 100, 1, 100},
		{600, 200, 0.25, 500},
		{-600, 200, 0.5, -200},
	}

	for _, tc := range tests {
		if got := Lerp(tc.a, tc.b, tc.t); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Lerp(%v, %v, %v) = %v, expected %v", tc.a, tc.b, tc.t, got, tc.expected)
		}
	}
}

func TestSign(t *testing.T) {
	if Sign(true) != -1 {
		t.Error("Sign(true) should be -1")
	}
	if Sign(false) != 1 {
		t.Error("Sign(false) should be 1")
	}
	if Abs(-5) != 5 || Abs(5) != 5 {
		t.Error("Abs should drop the sign")
	}
}
