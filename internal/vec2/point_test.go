package vec2

import (
	"math"
	"testing"
)

func TestFloorDivNegativeStability(t *testing.T) {
	// spec §8 invariant: chunk indices remain contiguous across zero, so
	// floor division must round toward negative infinity, not toward zero.
	cases := []struct {
		a, d, want int64
	}{
		{7, 4, 1},
		{4, 4, 1},
		{3, 4, 0},
		{0, 4, 0},
		{-1, 4, -1},
		{-4, 4, -1},
		{-5, 4, -2},
	}
	for _, c := range cases {
		if got := floorDiv(c.a, c.d); got != c.want {
			t.Errorf("floorDiv(%d,%d) = %d, want %d", c.a, c.d, got, c.want)
		}
	}
}

func TestFloorModAlwaysNonNegative(t *testing.T) {
	for a := int64(-20); a <= 20; a++ {
		got := floorMod(a, 6)
		if got < 0 || got >= 6 {
			t.Fatalf("floorMod(%d,6) = %d, out of [0,6)", a, got)
		}
	}
}

func TestAddOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on overflow")
		}
	}()
	Pt(math.MaxInt64, 0).Add(Pt(1, 0))
}

func TestLessLexicographic(t *testing.T) {
	if !Pt(0, 5).Less(Pt(1, 0)) {
		t.Error("x should dominate the ordering")
	}
	if !Pt(1, 0).Less(Pt(1, 1)) {
		t.Error("y should break ties when x is equal")
	}
	if Pt(1, 1).Less(Pt(1, 1)) {
		t.Error("equal points must not be Less than each other")
	}
}

func TestManhattanVsEuclidean(t *testing.T) {
	a, b := Pt(0, 0), Pt(3, 4)
	if got := a.ManhattanDist(b); got != 7 {
		t.Errorf("ManhattanDist = %d, want 7", got)
	}
	if got := a.DistSquared(b); got != 25 {
		t.Errorf("DistSquared = %d, want 25", got)
	}
}

func TestScale(t *testing.T) {
	if got := Pt(3, -2).Scale(4); got != (Point{X: 12, Y: -8}) {
		t.Errorf("Scale = %v, want {12 -8}", got)
	}
}

func TestScaleOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on overflow")
		}
	}()
	Pt(math.MaxInt64, 0).Scale(2)
}
