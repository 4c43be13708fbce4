// Package layer implements the layer runtime: the contract that a chunk is
// computed from upstream chunks in a padded region, and the loader that
// ensures transitive dependencies are materialized in center-out order
// before a chunk is computed (spec §4.3).
//
// The generic shape here — a top-level type wrapping one bounded cache,
// configured through functional options, with an opt-in concurrency
// primitive for single-producer-per-key semantics — follows the teacher
// arena-cache's Cache[K,V] (pkg/cache.go, pkg/config.go, pkg/loader.go).
package layer

import (
	"sort"

	"go.uber.org/zap"

	"github.com/layerproc/layerproc/internal/gridlog"
	"github.com/layerproc/layerproc/internal/metrics"
	"github.com/layerproc/layerproc/internal/ring"
	"github.com/layerproc/layerproc/internal/vec2"
)

// Descriptor carries a chunk type's compile-time constants (spec §3): the
// world-unit size of one chunk, and the rolling grid's extent/overlap.
type Descriptor struct {
	Size        vec2.Point
	GridSize    [2]uint8
	GridOverlap uint8
}

// ChunkBounds returns the world bounds covered by the chunk at index, for
// this descriptor's Size.
func (d Descriptor) ChunkBounds(index vec2.Point) vec2.Bounds {
	return vec2.ChunkBounds(index, d.Size)
}

// Spec is implemented by the host application for each chunk type: it
// supplies the chunk's static shape (Descriptor), loads whatever upstream
// layers Compute will need for a given chunk's bounds (EnsureAllDeps), and
// computes the payload (Compute). Compute MUST be a pure function of
// (index, the already-loaded dependency chunks) — spec §3 invariant 1.
type Spec[C any] interface {
	Descriptor() Descriptor
	EnsureAllDeps(chunkBounds vec2.Bounds)
	Compute(index vec2.Point) C
}

// Layer owns exactly one RollingGrid of chunk type C and drives dependency
// resolution and center-out loading for it (spec §4.3).
type Layer[C any] struct {
	name   string
	desc   Descriptor
	spec   Spec[C]
	ring   *ring.Ring[C]
	logger *zap.Logger
	inf    *parallelGroup // non-nil only under WithParallelCompute

	loading bool // re-entrancy marker for cycle detection (spec §4.7)
}

// Option configures a Layer at construction time.
type Option[C any] func(*layerOpts)

type layerOpts struct {
	logger   *zap.Logger
	metrics  metrics.Sink
	parallel bool
}

// WithLogger attaches a zap.Logger for the rare diagnostic lines the
// underlying ring emits.
func WithLogger[C any](l *zap.Logger) Option[C] {
	return func(o *layerOpts) { o.logger = l }
}

// WithMetrics attaches a Prometheus-backed metrics sink (see
// internal/metrics).
func WithMetrics[C any](m metrics.Sink) Option[C] {
	return func(o *layerOpts) { o.metrics = m }
}

// New constructs a Layer for the given chunk Spec. name identifies the
// layer in logs and metrics (and in panic diagnostics).
func New[C any](name string, spec Spec[C], opts ...Option[C]) *Layer[C] {
	o := &layerOpts{logger: gridlog.Nop(), metrics: metrics.Noop{}}
	for _, opt := range opts {
		opt(o)
	}
	desc := spec.Descriptor()
	l := &Layer[C]{
		name:   name,
		desc:   desc,
		spec:   spec,
		logger: o.logger,
		ring: ring.New[C](name, ring.Config{GridSize: desc.GridSize, GridOverlap: desc.GridOverlap},
			ring.WithLogger[C](o.logger), ring.WithMetrics[C](o.metrics)),
	}
	if o.parallel {
		l.inf = newParallelGroup()
	}
	return l
}

// compute runs Spec.Compute for idx, routing through the singleflight
// group when WithParallelCompute is active so concurrent callers share one
// in-flight computation (spec §5).
func (l *Layer[C]) compute(idx vec2.Point) C {
	if l.inf == nil {
		return l.spec.Compute(idx)
	}
	return l.inf.computeOnce(idx, func() any { return l.spec.Compute(idx) }).(C)
}

// Name returns the layer's diagnostic name.
func (l *Layer[C]) Name() string { return l.name }

// Descriptor returns the chunk type's static shape.
func (l *Layer[C]) Descriptor() Descriptor { return l.desc }

// EnsureLoadedInBounds materializes every chunk intersecting region,
// loading nearest-to-center first, recursively resolving dependencies via
// Spec.EnsureAllDeps before each chunk's Compute runs (spec §4.3).
func (l *Layer[C]) EnsureLoadedInBounds(region vec2.Bounds) {
	if l.loading {
		idx := region.Min.FloorDiv(l.desc.Size)
		gridlog.Cycle(l.logger, l.name, [2]int64{idx.X, idx.Y})
		panic(CycleError{Layer: l.name, Index: idx})
	}
	l.loading = true
	defer func() { l.loading = false }()

	region = normalizeRegion(region)
	indices := region.Quantize(l.desc.Size).Indices()
	center := region.Center()
	sort.Slice(indices, func(i, j int) bool {
		di := l.desc.ChunkBounds(indices[i]).Min.DistSquared(center)
		dj := l.desc.ChunkBounds(indices[j]).Min.DistSquared(center)
		if di != dj {
			return di < dj
		}
		return indices[i].Less(indices[j])
	})

	for _, idx := range indices {
		l.ensureChunkProviders(idx)
		if _, ok := l.ring.Get(idx); ok {
			l.ring.Incref(idx)
			continue
		}
		payload := l.compute(idx)
		l.ring.Set(idx, payload)
	}
}

// ensureChunkProviders invokes Spec.EnsureAllDeps for the world bounds of
// chunk idx, so every upstream dependency is materialized before Compute
// runs for it (spec §4.3 step 1).
func (l *Layer[C]) ensureChunkProviders(idx vec2.Point) {
	l.spec.EnsureAllDeps(l.desc.ChunkBounds(idx))
}

// GetOrCompute forces single-chunk materialization and returns its
// payload, computing it (and its dependencies) on miss. It is the
// shorthand single-index variant of EnsureLoadedInBounds/Get (spec §4.3,
// §6). On a hit the chunk's refcount is left unchanged; on a miss the new
// chunk is stored with refcount 1, as every ring insert is, and nothing in
// GetOrCompute releases that reference.
func (l *Layer[C]) GetOrCompute(idx vec2.Point) C {
	if v, ok := l.ring.Get(idx); ok {
		return v
	}
	l.ensureChunkProviders(idx)
	payload := l.compute(idx)
	l.ring.Set(idx, payload)
	return payload
}

// GetRange returns every chunk currently resident whose bounds intersect
// region. It never triggers computation — the caller must have previously
// called EnsureLoadedInBounds (spec §4.3).
func (l *Layer[C]) GetRange(region vec2.Bounds) []C {
	return l.ring.IterRange(region, l.desc.Size)
}

// ReleaseBounds decrements the refcount of every chunk intersecting
// region. Callers MUST pair every EnsureLoadedInBounds with a
// ReleaseBounds over the same region (spec §4.3). Only this layer's chunks
// are released: upstream chunks loaded through Spec.EnsureAllDeps keep their
// references, and Dep.ReleaseBounds is a separate call for one consumer
// chunk's padded region.
func (l *Layer[C]) ReleaseBounds(region vec2.Bounds) {
	region = normalizeRegion(region)
	for _, idx := range region.Quantize(l.desc.Size).Indices() {
		l.ring.Decref(idx)
	}
}

// Refcount exposes a chunk's current refcount, for tests asserting the
// paired-release property (spec §8, property 4).
func (l *Layer[C]) Refcount(idx vec2.Point) uint32 { return l.ring.Refcount(idx) }

// normalizeRegion applies spec §4.3's point-bounds edge policy: a region
// with Min==Max on any axis is treated as the 1x1 rectangle [Min, Min+1).
func normalizeRegion(region vec2.Bounds) vec2.Bounds {
	return vec2.BoundsFromMinMax(region.Min, region.Max)
}
