package vec2

// Bounds is a half-open axis-aligned rectangle [Min, Max) in world
// coordinates (spec §3). It is empty iff Max <= Min on any axis.
type Bounds struct {
	Min, Max Point
}

// BoundsFromMinMax normalizes a caller-supplied region: a degenerate region
// with Min==Max on some axis is treated as the 1x1 rectangle [Min, Min+1)
// per spec §4.3's edge policy.
func BoundsFromMinMax(min, max Point) Bounds {
	if max.X <= min.X {
		max.X = min.X + 1
	}
	if max.Y <= min.Y {
		max.Y = min.Y + 1
	}
	return Bounds{Min: min, Max: max}
}

// PointBounds returns the 1x1 rectangle containing p.
func PointBounds(p Point) Bounds {
	return Bounds{Min: p, Max: p.Add(Point{X: 1, Y: 1})}
}

// IsEmpty reports whether b covers no area.
func (b Bounds) IsEmpty() bool {
	return b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y
}

// Pad expands b by p on every side: Min -= p, Max += p.
func (b Bounds) Pad(p Point) Bounds {
	return Bounds{Min: b.Min.Sub(p), Max: b.Max.Add(p)}
}

// Center returns the (integer, floor-rounded) midpoint of b.
func (b Bounds) Center() Point {
	return Point{
		X: b.Min.X + (b.Max.X-b.Min.X)/2,
		Y: b.Min.Y + (b.Max.Y-b.Min.Y)/2,
	}
}

// Contains reports whether p lies within the half-open rectangle.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X < b.Max.X && p.Y >= b.Min.Y && p.Y < b.Max.Y
}

// Intersects reports whether b and o share any non-empty area.
func (b Bounds) Intersects(o Bounds) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	return b.Min.X < o.Max.X && o.Min.X < b.Max.X &&
		b.Min.Y < o.Max.Y && o.Min.Y < b.Max.Y
}

// Quantize converts a world-space region into the half-open range of chunk
// indices (of the given chunk size) that intersect it (spec §4.3: "chunk
// indices are derived by Euclidean division of coordinates by SIZE").
func (b Bounds) Quantize(size Point) Bounds {
	minIdx := b.Min.FloorDiv(size)
	// Max is exclusive; the last covered coordinate is Max-1.
	lastCovered := Point{X: b.Max.X - 1, Y: b.Max.Y - 1}
	maxIdx := lastCovered.FloorDiv(size)
	return Bounds{Min: minIdx, Max: maxIdx.Add(Point{X: 1, Y: 1})}
}

// Indices enumerates every chunk index in the half-open bounds b (which is
// assumed to already be in chunk-index space, e.g. the result of Quantize).
// Order is row-major: y outer, x inner.
func (b Bounds) Indices() []Point {
	if b.IsEmpty() {
		return nil
	}
	out := make([]Point, 0, (b.Max.X-b.Min.X)*(b.Max.Y-b.Min.Y))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, Point{X: x, Y: y})
		}
	}
	return out
}
