package layer

import "github.com/layerproc/layerproc/internal/vec2"

// Dep binds a consumer to one producer Layer and carries the world-unit
// padding the consumer needs from it (spec §4.4). Go has no const generics
// to encode Padding in the type itself (the language note in spec §9), so
// it is carried as an immutable field set at construction.
type Dep[C any] struct {
	layer   *Layer[C]
	Padding vec2.Point
}

// NewDep constructs a dependency handle. Shared ownership of producer is
// established implicitly: the same *Layer[C] may back any number of Dep
// handles, exactly as multiple arena-cache shards reference one generation
// ring.
func NewDep[C any](producer *Layer[C], padding vec2.Point) Dep[C] {
	return Dep[C]{layer: producer, Padding: padding}
}

// EnsureLoadedInBounds pads consumerChunkBounds by Padding and ensures the
// producer has materialized every chunk intersecting the padded region
// (spec §4.4).
func (d Dep[C]) EnsureLoadedInBounds(consumerChunkBounds vec2.Bounds) {
	d.layer.EnsureLoadedInBounds(consumerChunkBounds.Pad(d.Padding))
}

// ReleaseBounds mirrors EnsureLoadedInBounds, decrementing the producer's
// refcounts over the same padded region.
func (d Dep[C]) ReleaseBounds(consumerChunkBounds vec2.Bounds) {
	d.layer.ReleaseBounds(consumerChunkBounds.Pad(d.Padding))
}

// Get returns the producer's chunk at index, if resident.
func (d Dep[C]) Get(index vec2.Point) (C, bool) {
	return d.layer.ring.Get(index)
}

// GetRange returns every resident producer chunk intersecting region
// (world-space). It never triggers computation.
func (d Dep[C]) GetRange(region vec2.Bounds) []C {
	return d.layer.GetRange(region)
}

// GetGridRange returns every resident producer chunk whose index lies in
// the half-open chunk-index-space bounds indexBounds.
func (d Dep[C]) GetGridRange(indexBounds vec2.Bounds) []C {
	var out []C
	for _, idx := range indexBounds.Indices() {
		if v, ok := d.layer.ring.Get(idx); ok {
			out = append(out, v)
		}
	}
	return out
}

// GetOrCompute forces single-chunk materialization on the producer.
func (d Dep[C]) GetOrCompute(index vec2.Point) C {
	return d.layer.GetOrCompute(index)
}

// Descriptor exposes the producer's chunk shape, used by consumers that
// need to reason about the producer's chunk size (e.g. a 3x3 window).
func (d Dep[C]) Descriptor() Descriptor {
	return d.layer.Descriptor()
}
