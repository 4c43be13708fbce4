package vec2

import "testing"

func TestQuantizeCoversWholeChunks(t *testing.T) {
	size := Pt(16, 16)
	b := Bounds{Min: Pt(-20, 5), Max: Pt(10, 17)}
	q := b.Quantize(size)
	// -20 -> floor(-20/16) = -2; 9 (last covered x) -> floor(9/16) = 0
	if q.Min.X != -2 || q.Max.X != 1 {
		t.Errorf("x range = [%d,%d), want [-2,1)", q.Min.X, q.Max.X)
	}
	// 5 -> 0; 16 (last covered y) -> 1
	if q.Min.Y != 0 || q.Max.Y != 2 {
		t.Errorf("y range = [%d,%d), want [0,2)", q.Min.Y, q.Max.Y)
	}
}

func TestBoundsFromMinMaxDegenerate(t *testing.T) {
	b := BoundsFromMinMax(Pt(3, 3), Pt(3, 3))
	if b.Max.X != 4 || b.Max.Y != 4 {
		t.Errorf("degenerate bounds should widen to 1x1, got %+v", b)
	}
}

func TestIndicesRowMajorOrder(t *testing.T) {
	b := Bounds{Min: Pt(0, 0), Max: Pt(2, 2)}
	got := b.Indices()
	want := []Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	if len(got) != len(want) {
		t.Fatalf("got %d indices, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestIntersects(t *testing.T) {
	a := Bounds{Min: Pt(0, 0), Max: Pt(10, 10)}
	b := Bounds{Min: Pt(9, 9), Max: Pt(20, 20)}
	c := Bounds{Min: Pt(10, 10), Max: Pt(20, 20)}
	if !a.Intersects(b) {
		t.Error("overlapping bounds should intersect")
	}
	if a.Intersects(c) {
		t.Error("touching-but-not-overlapping half-open bounds should not intersect")
	}
}

func TestPadExpandsBothSides(t *testing.T) {
	b := Bounds{Min: Pt(0, 0), Max: Pt(4, 4)}
	p := b.Pad(Pt(2, 1))
	if p.Min != (Point{X: -2, Y: -1}) || p.Max != (Point{X: 6, Y: 5}) {
		t.Errorf("Pad result = %+v, want Min(-2,-1) Max(6,5)", p)
	}
}

func TestContains(t *testing.T) {
	b := Bounds{Min: Pt(0, 0), Max: Pt(4, 4)}
	if !b.Contains(Pt(0, 0)) {
		t.Error("Min should be contained (half-open lower edge)")
	}
	if b.Contains(Pt(4, 0)) {
		t.Error("Max should not be contained (half-open upper edge)")
	}
	if b.Contains(Pt(-1, 0)) {
		t.Error("point outside the rectangle must not be contained")
	}
}

func TestPointBounds(t *testing.T) {
	b := PointBounds(Pt(5, 5))
	if !b.Contains(Pt(5, 5)) || b.Contains(Pt(6, 5)) || b.Contains(Pt(5, 6)) {
		t.Errorf("PointBounds(5,5) = %+v, want the exact 1x1 cell at (5,5)", b)
	}
}
