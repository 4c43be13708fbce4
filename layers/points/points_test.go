package points

import (
	"testing"

	"github.com/layerproc/layerproc/internal/seed"
	"github.com/layerproc/layerproc/internal/vec2"
	"github.com/layerproc/layerproc/pkg/layer"
)

type testPoint struct {
	pos      vec2.Point
	radius   int64
	priority int64
}

func (p testPoint) Position() vec2.Point { return p.pos }
func (p testPoint) Radius() int64        { return p.radius }
func (p testPoint) Priority() int64      { return p.priority }

func testDescriptor() layer.Descriptor {
	return layer.Descriptor{Size: vec2.Pt(32, 32), GridSize: [2]uint8{8, 8}, GridOverlap: 1}
}

func newUniform(count int, salt uint64) *layer.Layer[Chunk[testPoint]] {
	spec := &UniformPointsSpec[testPoint]{
		Desc:  testDescriptor(),
		Salt:  salt,
		Count: count,
		NewPoint: func(bounds vec2.Bounds, g *seed.Gen) testPoint {
			return testPoint{
				pos:      vec2.Pt(g.Int64InRange(bounds.Min.X, bounds.Max.X), g.Int64InRange(bounds.Min.Y, bounds.Max.Y)),
				radius:   3,
				priority: int64(g.Uint64() % 100),
			}
		},
	}
	return layer.New[Chunk[testPoint]]("uniform", spec)
}

func TestUniformPointsDeterministic(t *testing.T) {
	a := newUniform(4, 7)
	b := newUniform(4, 7)
	idx := vec2.Pt(2, -3)
	ca := a.GetOrCompute(idx)
	cb := b.GetOrCompute(idx)
	if len(ca.Points) != len(cb.Points) {
		t.Fatalf("point counts differ: %d vs %d", len(ca.Points), len(cb.Points))
	}
	for i := range ca.Points {
		if ca.Points[i] != cb.Points[i] {
			t.Fatalf("point %d differs: %+v vs %+v", i, ca.Points[i], cb.Points[i])
		}
	}
}

func TestUniformPointsVaryBySalt(t *testing.T) {
	a := newUniform(4, 1)
	b := newUniform(4, 2)
	idx := vec2.Pt(0, 0)
	ca := a.GetOrCompute(idx)
	cb := b.GetOrCompute(idx)
	same := true
	for i := range ca.Points {
		if ca.Points[i] != cb.Points[i] {
			same = false
		}
	}
	if same {
		t.Error("different salts produced identical point sets")
	}
}

func TestReducedPointsRemovesOverlapByPriority(t *testing.T) {
	// Fixture: chunk (0,0) holds two overlapping candidates; every other
	// chunk in range is empty. low loses to high because high outranks it
	// within their combined exclusion radius (4+4=8 > Manhattan dist 2).
	low := testPoint{pos: vec2.Pt(5, 5), radius: 4, priority: 1}
	high := testPoint{pos: vec2.Pt(6, 6), radius: 4, priority: 9}

	upstream := layer.New[Chunk[testPoint]]("upstream", &layer.FuncSpec[Chunk[testPoint]]{
		Desc: testDescriptor(),
		Fn: func(idx vec2.Point) Chunk[testPoint] {
			if idx == (vec2.Point{X: 0, Y: 0}) {
				return Chunk[testPoint]{Points: []testPoint{low, high}}
			}
			return Chunk[testPoint]{}
		},
	})

	reduceSpec := &ReducedPointsSpec[testPoint]{
		Desc:      testDescriptor(),
		Upstream:  layer.NewDep[Chunk[testPoint]](upstream, vec2.Splat(8)),
		MaxRadius: 4,
	}
	reduced := layer.New[Chunk[testPoint]]("reduced", reduceSpec)
	got := reduced.GetOrCompute(vec2.Pt(0, 0))

	if len(got.Points) != 1 || got.Points[0] != high {
		t.Fatalf("expected only the higher-priority point to survive, got %+v", got.Points)
	}
}

func TestReducedPointsPanicsOnMissingCenterChunk(t *testing.T) {
	// ReducedPointsSpec.Compute calling Upstream.Get directly (bypassing
	// EnsureAllDeps) reaches the "programmer bug" path spec §7 requires.
	reduceSpec := &ReducedPointsSpec[testPoint]{
		Desc:      testDescriptor(),
		Upstream:  layer.NewDep[Chunk[testPoint]](layer.New[Chunk[testPoint]]("upstream", &UniformPointsSpec[testPoint]{Desc: testDescriptor()}), vec2.Point{}),
		MaxRadius: 0,
	}
	defer func() {
		rec := recover()
		if _, ok := rec.(layer.MissingDependencyError); !ok {
			t.Fatalf("expected MissingDependencyError, got %T: %v", rec, rec)
		}
	}()
	reduceSpec.Compute(vec2.Pt(0, 0))
}

func TestChunkDebugEmitsOneCirclePerPoint(t *testing.T) {
	c := Chunk[testPoint]{Points: []testPoint{
		{pos: vec2.Pt(1, 1), radius: 3},
		{pos: vec2.Pt(2, 2), radius: 5},
	}}
	elems := c.Debug()
	if len(elems) != 2 {
		t.Fatalf("got %d debug elements, want 2", len(elems))
	}
	for i, p := range c.Points {
		if elems[i].Kind != layer.DebugCircle || elems[i].A != p.pos || elems[i].R != p.radius {
			t.Fatalf("element %d = %+v, want circle at %v radius %d", i, elems[i], p.pos, p.radius)
		}
	}
}

func TestOutranksLexicographic(t *testing.T) {
	a := testPoint{pos: vec2.Pt(1, 1), priority: 5}
	b := testPoint{pos: vec2.Pt(2, 2), priority: 5}
	if !outranks(b, a) {
		t.Error("equal priority should fall back to position ordering")
	}
	if outranks(a, a) {
		t.Error("a point must not outrank itself")
	}
	high := testPoint{pos: vec2.Pt(0, 0), priority: 10}
	if !outranks(high, a) {
		t.Error("higher priority should outrank regardless of position")
	}
}
