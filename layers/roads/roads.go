// Package roads implements the relative-neighborhood-graph road network
// layer (spec §4.6): for each chunk, connect pairs of locations in its 3x3
// neighborhood window whenever no third location lies strictly closer to
// both endpoints than they are to each other.
//
// Grounded on original_source/examples/infinite_roads.rs's RoadsChunk and
// its compute() 3x3-window walk.
package roads

import (
	"github.com/layerproc/layerproc/internal/vec2"
	"github.com/layerproc/layerproc/layers/points"
	"github.com/layerproc/layerproc/pkg/layer"
)

// Debug renders each segment as a DebugLine (spec §6), letting an external
// viewer draw the road network without reaching into Segments itself.
func (c Chunk) Debug() []layer.DebugElement {
	out := make([]layer.DebugElement, 0, len(c.Segments))
	for _, s := range c.Segments {
		out = append(out, layer.DebugElement{Kind: layer.DebugLine, A: s.A, B: s.B})
	}
	return out
}

// Segment is one road between two locations, in world coordinates.
type Segment struct {
	A, B vec2.Point
}

// Chunk holds the road segments owned by one chunk. A segment is owned by
// the chunk containing the endpoint that comes first in the row-major
// chunk-gather order of the 3x3 window (spec §4.6: "each `b` later in `P`
// with index > index of `a`"), so each segment appears in exactly one
// chunk's Chunk even though both of its endpoint chunks observe it.
type Chunk struct {
	Segments []Segment
}

// Spec is a layer.Spec producing Chunk from an upstream reduced-points
// layer. P is the location type; only Position is used here since roads
// connect locations irrespective of their placement radius/priority.
type Spec[P points.Reducible] struct {
	Desc     layer.Descriptor
	Upstream layer.Dep[points.Chunk[P]]
}

func (s *Spec[P]) Descriptor() layer.Descriptor { return s.Desc }

func (s *Spec[P]) EnsureAllDeps(chunkBounds vec2.Bounds) {
	s.Upstream.EnsureLoadedInBounds(chunkBounds)
}

// Compute gathers every location in the 3x3 chunk window centered on
// index, then, for every pair where at least one endpoint lies in the
// center chunk, emits a segment iff no other gathered location is
// strictly closer (squared Euclidean distance) to both endpoints than
// they are to each other — the relative-neighborhood-graph predicate.
//
// A segment is kept only when the center-chunk endpoint comes before the
// other endpoint in the window's row-major chunk-gather order (spec §4.6),
// so each edge is emitted by exactly one chunk regardless of the endpoints'
// raw coordinates.
func (s *Spec[P]) Compute(index vec2.Point) Chunk {
	windowMin := vec2.Pt(index.X-1, index.Y-1)
	windowMax := vec2.Pt(index.X+1, index.Y+1)

	var all []vec2.Point
	centerStart, centerCount := 0, 0
	for _, idx := range (vec2.Bounds{Min: windowMin, Max: vec2.Pt(windowMax.X+1, windowMax.Y+1)}).Indices() {
		chunk, ok := s.Upstream.Get(idx)
		if !ok {
			if idx == index {
				// EnsureAllDeps pads exactly enough to cover the center
				// chunk; its absence here is a padding/wiring bug, not a
				// legitimate edge-of-grid gap.
				panic(layer.MissingDependencyError{Layer: "roads", Index: index, Detail: "center chunk not resident after EnsureAllDeps"})
			}
			continue // a neighbor outside the loaded window is a legitimate gap (spec §9 open question 2)
		}
		if idx == index {
			centerStart = len(all)
			centerCount = len(chunk.Points)
		}
		for _, p := range chunk.Points {
			all = append(all, p.Position())
		}
	}

	var segs []Segment
	for i := centerStart; i < centerStart+centerCount; i++ {
		a := all[i]
		for j, b := range all {
			if j <= i {
				continue // b owns the pair: it comes no later than a in gather order
			}
			if relativeNeighbors(a, b, all) {
				segs = append(segs, Segment{A: a, B: b})
			}
		}
	}
	return Chunk{Segments: segs}
}

// relativeNeighbors reports whether no point in all (other than a, b)
// lies strictly closer to both a and b than a and b are to each other.
func relativeNeighbors(a, b vec2.Point, all []vec2.Point) bool {
	ab := a.DistSquared(b)
	for _, c := range all {
		if c == a || c == b {
			continue
		}
		if c.DistSquared(a) < ab && c.DistSquared(b) < ab {
			return false
		}
	}
	return true
}
