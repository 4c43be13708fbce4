package layer

import "github.com/layerproc/layerproc/internal/vec2"

// DebugKind discriminates the shape carried in a DebugElement (spec §6).
type DebugKind string

const (
	DebugChunk  DebugKind = "chunk"
	DebugLine   DebugKind = "line"
	DebugCircle DebugKind = "circle"
	DebugText   DebugKind = "text"
)

// DebugElement is one piece of purely observational visualization data a
// Spec may expose for a region, per spec §6's debug-view contract. The
// rendering loop that would consume these is explicitly out of scope
// (spec §1); this type only carries the data across that boundary.
type DebugElement struct {
	Kind DebugKind  `json:"kind"`
	A    vec2.Point `json:"a"`
	B    vec2.Point `json:"b,omitempty"`
	R    int64      `json:"r,omitempty"`
	Text string     `json:"text,omitempty"`
}

// Debugger is optionally implemented by a chunk type to expose its own
// DebugElements (spec §6: "each chunk type optionally exposes
// debug(bounds) -> [DebugElement]"). A chunk's fields already carry
// absolute world coordinates, so no bounds argument is needed here; a
// chunk type with nothing to show need not implement it.
type Debugger interface {
	Debug() []DebugElement
}

// Debug returns the debug elements of every resident chunk intersecting
// region whose type implements Debugger, or nil if C does not implement it.
func (l *Layer[C]) Debug(region vec2.Bounds) []DebugElement {
	var out []DebugElement
	for _, c := range l.GetRange(region) {
		if d, ok := any(c).(Debugger); ok {
			out = append(out, d.Debug()...)
		}
	}
	return out
}

// Snapshot is the ring occupancy view cmd/layerproc-inspect polls over
// HTTP (spec §6's debug-view contract, applied to ring stats rather than
// per-chunk DebugElements).
type Snapshot struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Occupied int    `json:"occupied"`
}

// Snapshot reports the layer's current ring occupancy.
func (l *Layer[C]) Snapshot() Snapshot {
	return Snapshot{Name: l.Name(), Capacity: l.ring.Capacity(), Occupied: l.ring.Occupied()}
}
