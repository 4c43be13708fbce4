package layer

import (
	"fmt"

	"github.com/layerproc/layerproc/internal/vec2"
)

// CycleError is raised when a layer's EnsureLoadedInBounds re-enters itself
// before completing — a violation of the DAG's acyclicity (spec §4.7,
// §7: "detected by a re-entrancy marker on each layer").
type CycleError struct {
	Layer string
	Index vec2.Point
}

func (e CycleError) Error() string {
	return fmt.Sprintf("layer %q: dependency cycle detected while loading chunk %v", e.Layer, e.Index)
}

// MissingDependencyError indicates that compute observed fewer dependency
// chunks than its declared padding guarantees — always a bug in either the
// Dep padding declaration or the EnsureAllDeps wiring, never a recoverable
// runtime condition (spec §7).
type MissingDependencyError struct {
	Layer  string
	Index  vec2.Point
	Detail string
}

func (e MissingDependencyError) Error() string {
	return fmt.Sprintf("layer %q: missing dependency chunk while computing %v: %s", e.Layer, e.Index, e.Detail)
}
