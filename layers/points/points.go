// Package points implements the generic reduced-points layer pair (spec
// §4.5): a layer of uniformly-sampled candidate points per chunk, and a
// layer that filters those candidates by mutual exclusion radius and
// priority.
//
// Grounded on original_source/src/generic_layers/reduced_points.rs (the
// Reducible trait and ReducedUniformPoint::compute) and
// original_source/examples/infinite_roads.rs's simpler
// Locations/ReducedLocations pair.
package points

import (
	"github.com/layerproc/layerproc/internal/seed"
	"github.com/layerproc/layerproc/internal/vec2"
	"github.com/layerproc/layerproc/pkg/layer"
)

// Reducible is a candidate point type that does not want to be close to
// other candidates of equal or lower priority (spec §4.5).
type Reducible interface {
	comparable
	// Position is the center of the circle to keep free of other candidates.
	Position() vec2.Point
	// Radius is how far around Position must stay free of other candidates.
	Radius() int64
	// Priority determines the winner when two candidates overlap: the
	// higher (priority, position.x, position.y) tuple wins (spec §4.5).
	Priority() int64
}

// Chunk holds the candidate points produced or surviving for one chunk.
// original_source uses a bounded arrayvec::ArrayVec<P, 7>; Go has no
// equivalent container, so Points is a plain slice with no capacity bound
// (see DESIGN.md).
type Chunk[P Reducible] struct {
	Points []P
}

// Debug renders each candidate as a DebugCircle of its exclusion radius
// (spec §6), letting an external viewer show what reduction kept or cut.
func (c Chunk[P]) Debug() []layer.DebugElement {
	out := make([]layer.DebugElement, 0, len(c.Points))
	for _, p := range c.Points {
		out = append(out, layer.DebugElement{Kind: layer.DebugCircle, A: p.Position(), R: p.Radius()})
	}
	return out
}

// NewPointFunc constructs one candidate point sampled uniformly inside
// bounds, using the given generator. Implementations typically ignore the
// generator draw order only insofar as spec §4.2 requires it be documented
// and fixed per layer.
type NewPointFunc[P Reducible] func(bounds vec2.Bounds, gen *seed.Gen) P

// UniformPointsSpec is a layer.Spec producing up to Count candidate points
// per chunk, deterministically sampled from (index, Salt) per spec §4.2.
// It has no upstream dependencies.
type UniformPointsSpec[P Reducible] struct {
	Desc     layer.Descriptor
	Salt     uint64
	Count    int
	NewPoint NewPointFunc[P]
}

func (s *UniformPointsSpec[P]) Descriptor() layer.Descriptor { return s.Desc }

func (s *UniformPointsSpec[P]) EnsureAllDeps(vec2.Bounds) {} // no upstream layers

// Compute draws Count points from a splitmix64 generator seeded from
// (index, Salt), sampling each inside the chunk's bounds in a fixed order:
// Count sequential calls of NewPoint sharing one generator, so each call
// takes whatever draws it makes from where the previous call stopped.
func (s *UniformPointsSpec[P]) Compute(index vec2.Point) Chunk[P] {
	bounds := s.Desc.ChunkBounds(index)
	g := seed.New(seed.Mix(index.X, index.Y, s.Salt))
	out := make([]P, 0, s.Count)
	for i := 0; i < s.Count; i++ {
		out = append(out, s.NewPoint(bounds, g))
	}
	return Chunk[P]{Points: out}
}

// ReducedPointsSpec is a layer.Spec that filters an upstream
// UniformPointsSpec's candidates by the exclusion rule of spec §4.5:
// Manhattan distance (per DESIGN.md's Open Question resolution, following
// original_source's manhattan_dist) gates removal, priority (then x, then
// y) breaks ties.
type ReducedPointsSpec[P Reducible] struct {
	Desc      layer.Descriptor
	Upstream  layer.Dep[Chunk[P]]
	MaxRadius int64 // upper bound on Radius() across all possible candidates
}

func (s *ReducedPointsSpec[P]) Descriptor() layer.Descriptor { return s.Desc }

func (s *ReducedPointsSpec[P]) EnsureAllDeps(chunkBounds vec2.Bounds) {
	s.Upstream.EnsureLoadedInBounds(chunkBounds)
}

// Compute keeps a center-chunk candidate p iff no overlapping candidate q
// (within Manhattan distance radius(p)+radius(q)) strictly outranks it,
// where rank is (priority, x, y) lexicographic — spec §4.5.
func (s *ReducedPointsSpec[P]) Compute(index vec2.Point) Chunk[P] {
	center, ok := s.Upstream.Get(index)
	if !ok {
		// EnsureAllDeps always pads enough to cover the center chunk
		// itself; its absence is a padding/wiring bug, never a legitimate
		// runtime condition.
		panic(layer.MissingDependencyError{Layer: "reduced_points", Index: index, Detail: "center chunk not resident after EnsureAllDeps"})
	}
	out := make([]P, 0, len(center.Points))

points:
	for _, p := range center.Points {
		scanRadius := p.Radius() + s.MaxRadius
		scanBounds := vec2.Bounds{
			Min: p.Position().Sub(vec2.Splat(scanRadius)),
			Max: p.Position().Add(vec2.Splat(scanRadius + 1)),
		}
		for _, otherChunk := range s.Upstream.GetRange(scanBounds) {
			for _, q := range otherChunk.Points {
				if q == p {
					continue
				}
				if q.Position().ManhattanDist(p.Position()) < p.Radius()+q.Radius() && outranks(q, p) {
					continue points
				}
			}
		}
		out = append(out, p)
	}
	return Chunk[P]{Points: out}
}

// outranks reports whether a strictly outranks b under the (priority, x, y)
// lexicographic order spec §4.5 defines (higher wins).
func outranks[P Reducible](a, b P) bool {
	if a.Priority() != b.Priority() {
		return a.Priority() > b.Priority()
	}
	return !a.Position().Less(b.Position()) && a.Position() != b.Position()
}
