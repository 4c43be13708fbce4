// Package vec2 implements the integer point and bounds algebra the rest of
// layerproc is built on: a 2D signed-integer world coordinate system with
// Euclidean division/modulus, padding, and chunk quantization.
//
// Every operation here is pure, and all except Bounds.Indices (which returns
// a new slice) are allocation-free, so they are safe to call from inside a
// deterministic Chunk.Compute implementation.
package vec2

import "math"

// Point is a signed 64-bit world-space coordinate pair.
type Point struct {
	X, Y int64
}

// Pt is a convenience constructor.
func Pt(x, y int64) Point { return Point{X: x, Y: y} }

// Splat returns a Point with both axes set to v.
func Splat(v int64) Point { return Point{X: v, Y: v} }

// Add returns p+q, panicking on signed overflow (ArithmeticOverflow, spec §7).
func (p Point) Add(q Point) Point {
	return Point{X: addChecked(p.X, q.X), Y: addChecked(p.Y, q.Y)}
}

// Sub returns p-q, panicking on signed overflow.
func (p Point) Sub(q Point) Point {
	x, y := p.X-q.X, p.Y-q.Y
	if (q.X > 0 && x > p.X) || (q.X < 0 && x < p.X) {
		panic(OverflowError{Op: "sub", A: p.X, B: q.X})
	}
	if (q.Y > 0 && y > p.Y) || (q.Y < 0 && y < p.Y) {
		panic(OverflowError{Op: "sub", A: p.Y, B: q.Y})
	}
	return Point{X: x, Y: y}
}

// Mul returns the component-wise product p*q, panicking on signed overflow.
func (p Point) Mul(q Point) Point {
	return Point{X: mulChecked(p.X, q.X), Y: mulChecked(p.Y, q.Y)}
}

// Scale multiplies both axes by s.
func (p Point) Scale(s int64) Point {
	return Point{X: mulChecked(p.X, s), Y: mulChecked(p.Y, s)}
}

// FloorDiv performs component-wise Euclidean (floor) division by d. Both
// axes of d must be non-zero.
func (p Point) FloorDiv(d Point) Point {
	return Point{X: floorDiv(p.X, d.X), Y: floorDiv(p.Y, d.Y)}
}

// FloorMod performs component-wise Euclidean modulus by d, always returning a
// result in [0, d). Both axes of d must be positive.
func (p Point) FloorMod(d Point) Point {
	return Point{X: floorMod(p.X, d.X), Y: floorMod(p.Y, d.Y)}
}

// DistSquared returns the squared Euclidean distance between p and q. Used by
// the RNG road predicate (spec §4.6).
func (p Point) DistSquared(q Point) int64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return mulChecked(dx, dx) + mulChecked(dy, dy)
}

// ManhattanDist returns the L1 distance between p and q. Used by the
// reduced-points exclusion rule (spec §4.5, original_source reduced_points.rs).
func (p Point) ManhattanDist(q Point) int64 {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// Less implements the lexicographic (x, then y) tie-break order spec.md
// requires for center-out sorting and priority comparisons.
func (p Point) Less(q Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func addChecked(a, b int64) int64 {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		panic(OverflowError{Op: "add", A: a, B: b})
	}
	return sum
}

func negChecked(a int64) int64 {
	if a == math.MinInt64 {
		panic(OverflowError{Op: "neg", A: a})
	}
	return -a
}

func mulChecked(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	p := a * b
	if (a == math.MinInt64 && b == -1) || p/b != a {
		panic(OverflowError{Op: "mul", A: a, B: b})
	}
	return p
}

// floorDiv returns the Euclidean (floor) quotient of a/d: the result rounds
// toward negative infinity rather than toward zero, so negative chunk
// indices map to stable, contiguous regions (spec §4.3, invariant 9).
func floorDiv(a, d int64) int64 {
	q := a / d
	r := a % d
	if r != 0 && (r < 0) != (d < 0) {
		q--
	}
	return q
}

// floorMod returns the Euclidean modulus of a by d, always in [0, d) for
// positive d. This is the addressing function for RollingGrid slots
// (spec §4.1): slot(i) = i mod (GRID_SIZE*GRID_OVERLAP).
func floorMod(a, d int64) int64 {
	r := a % d
	if r != 0 && (r < 0) != (d < 0) {
		r += d
	}
	return r
}
