package layer

import "github.com/layerproc/layerproc/internal/vec2"

// ComputeFunc computes a chunk's payload from its index. Implementations
// MUST be pure with respect to (index, the already-loaded dependency
// chunks) — spec §3 invariant 1. This replaces the teacher's
// side-effecting LoaderFunc[K,V] (see DESIGN.md): there is no user-facing
// "load from an external system" API in this domain, only deterministic
// computation.
type ComputeFunc[C any] func(index vec2.Point) C

// DepsFunc loads whatever upstream layers a chunk's Compute will need for
// the given chunk bounds.
type DepsFunc func(chunkBounds vec2.Bounds)

// FuncSpec adapts a plain descriptor, deps-loader, and compute function
// into a Spec without requiring a dedicated named type — convenient for
// small layers and for tests (e.g. spec.md scenario D/E, and the
// original_source tests/simple.rs TheLayer/Player/Map shapes).
type FuncSpec[C any] struct {
	Desc Descriptor
	Deps DepsFunc
	Fn   ComputeFunc[C]
}

func (f *FuncSpec[C]) Descriptor() Descriptor { return f.Desc }

func (f *FuncSpec[C]) EnsureAllDeps(chunkBounds vec2.Bounds) {
	if f.Deps != nil {
		f.Deps(chunkBounds)
	}
}

func (f *FuncSpec[C]) Compute(index vec2.Point) C { return f.Fn(index) }
