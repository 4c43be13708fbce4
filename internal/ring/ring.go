// Package ring implements the rolling grid cache: a bounded 2D ring buffer
// keyed by chunk index, with reference-counted slots and wrap-around
// addressing (spec §4.1). It is the substrate every Layer is built on, the
// direct analogue of the teacher arena-cache's sharded, fixed-capacity
// entry table (pkg/shard.go's index map plus internal/clockpro's single
// eviction hand), re-expressed here as a dense slice with an address
// function forced by chunk index rather than a CLOCK-Pro policy decision —
// see DESIGN.md for why the two eviction contracts differ.
package ring

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/layerproc/layerproc/internal/gridlog"
	"github.com/layerproc/layerproc/internal/metrics"
	"github.com/layerproc/layerproc/internal/vec2"
)

// Config describes the fixed shape of a RollingGrid (spec §3's chunk-type
// descriptor constants relevant to the ring itself).
type Config struct {
	// GridSize is the ring's nominal extent in chunks per axis.
	GridSize [2]uint8
	// GridOverlap is how many times the nominal grid area may be
	// oversubscribed before a colliding insert panics. Must be >= 1.
	GridOverlap uint8
}

// dims returns the ring's actual slot-table width and height in chunks.
func (c Config) dims() (w, h int) {
	return int(c.GridSize[0]) * int(c.GridOverlap), int(c.GridSize[1]) * int(c.GridOverlap)
}

// StoredChunk is the payload and bookkeeping kept for one occupied slot
// (spec §3).
type StoredChunk[C any] struct {
	Index    vec2.Point
	Payload  C
	Refcount uint32
}

// RingOverflowError is raised when an insert collides with a slot whose
// occupant still has a positive refcount (spec §4.1, §7: "fatal overflow").
// The ring is left unchanged: the colliding write is refused before any
// mutation, per spec §7's "no partial state is exposed" requirement.
type RingOverflowError struct {
	Layer            string
	Index, Resident  vec2.Point
	SlotX, SlotY     int
}

func (e RingOverflowError) Error() string {
	return fmt.Sprintf(
		"ring: overflow in layer %q inserting %v into slot (%d,%d) still held by %v with refcount>0; enlarge GRID_SIZE or GRID_OVERLAP",
		e.Layer, e.Index, e.SlotX, e.SlotY, e.Resident,
	)
}

// MissingSlotError indicates a ref/unref call targeting a chunk index the
// ring never loaded (or has since evicted) — a reference-discipline bug
// (spec §3 invariant 5), not a user-recoverable condition.
type MissingSlotError struct {
	Layer string
	Index vec2.Point
	Op    string
}

func (e MissingSlotError) Error() string {
	return fmt.Sprintf("ring: %s on layer %q targets index %v which holds no live slot", e.Op, e.Layer, e.Index)
}

// Ring is the generic rolling grid cache. C is the chunk payload type.
type Ring[C any] struct {
	mu      sync.Mutex
	name    string
	w, h    int
	slots   []*StoredChunk[C]
	logger  *zap.Logger
	metrics metrics.Sink
}

// Option configures a Ring at construction time.
type Option[C any] func(*Ring[C])

// WithLogger attaches a zap.Logger used for the rare diagnostic lines this
// package emits (ring overflow). Defaults to a no-op logger.
func WithLogger[C any](l *zap.Logger) Option[C] {
	return func(r *Ring[C]) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics attaches a metrics sink. Defaults to a no-op sink.
func WithMetrics[C any](m metrics.Sink) Option[C] {
	return func(r *Ring[C]) {
		if m != nil {
			r.metrics = m
		}
	}
}

// New constructs an empty Ring for the given layer name and configuration.
// GridSize axes and GridOverlap must be non-zero.
func New[C any](name string, cfg Config, opts ...Option[C]) *Ring[C] {
	if cfg.GridSize[0] == 0 || cfg.GridSize[1] == 0 {
		panic("ring: GridSize axes must be non-zero")
	}
	if cfg.GridOverlap == 0 {
		panic("ring: GridOverlap must be >= 1")
	}
	w, h := cfg.dims()
	r := &Ring[C]{
		name:    name,
		w:       w,
		h:       h,
		slots:   make([]*StoredChunk[C], w*h),
		logger:  gridlog.Nop(),
		metrics: metrics.Noop{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// slotOf returns the flat slot-table position chunk index i addresses to.
// Modulus is Euclidean so negative indices map correctly (invariant 9).
func (r *Ring[C]) slotOf(i vec2.Point) (sx, sy, flat int) {
	m := i.FloorMod(vec2.Pt(int64(r.w), int64(r.h)))
	sx, sy = int(m.X), int(m.Y)
	return sx, sy, sy*r.w + sx
}

// Get returns the payload stored at i, if the addressed slot currently
// holds i.
func (r *Ring[C]) Get(i vec2.Point) (C, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _, flat := r.slotOf(i)
	cur := r.slots[flat]
	var zero C
	if cur == nil || cur.Index != i {
		return zero, false
	}
	return cur.Payload, true
}

// Set writes payload into the slot addressed by i with a fresh refcount of
// 1. If the slot is occupied by a different index with refcount zero, the
// old entry is evicted; if that index still has a positive refcount, Set
// panics with RingOverflowError and leaves the ring unchanged (spec §4.1).
func (r *Ring[C]) Set(i vec2.Point, payload C) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sx, sy, flat := r.slotOf(i)
	cur := r.slots[flat]
	if cur != nil && cur.Index != i {
		if cur.Refcount > 0 {
			gridlog.RingOverflow(r.logger, r.name,
				[2]int64{i.X, i.Y}, [2]int64{int64(sx), int64(sy)}, [2]int64{cur.Index.X, cur.Index.Y})
			panic(RingOverflowError{Layer: r.name, Index: i, Resident: cur.Index, SlotX: sx, SlotY: sy})
		}
		r.metrics.IncRingEviction(r.name)
	}
	r.slots[flat] = &StoredChunk[C]{Index: i, Payload: payload, Refcount: 1}
	r.metrics.IncComputed(r.name)
	r.metrics.SetRingOccupancy(r.name, r.occupiedLocked(), len(r.slots))
}

// Incref increments the refcount of the slot holding i. The slot must
// currently hold i (spec §3 invariant 5); violating this is a programmer
// bug, surfaced as MissingSlotError.
func (r *Ring[C]) Incref(i vec2.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _, flat := r.slotOf(i)
	cur := r.slots[flat]
	if cur == nil || cur.Index != i {
		panic(MissingSlotError{Layer: r.name, Index: i, Op: "incref"})
	}
	cur.Refcount++
	r.metrics.IncReused(r.name)
}

// Decref decrements the refcount of the slot holding i, if any. Decrefing
// an index the ring no longer holds (already evicted, or never loaded) is
// a silent no-op: a consumer calling ReleaseBounds after an overlapping
// eviction must not panic on normal operation.
func (r *Ring[C]) Decref(i vec2.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _, flat := r.slotOf(i)
	cur := r.slots[flat]
	if cur == nil || cur.Index != i || cur.Refcount == 0 {
		return
	}
	cur.Refcount--
}

// Refcount returns the current refcount of i, or 0 if the slot does not
// hold i. Exposed for tests asserting the paired-release property.
func (r *Ring[C]) Refcount(i vec2.Point) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _, flat := r.slotOf(i)
	cur := r.slots[flat]
	if cur == nil || cur.Index != i {
		return 0
	}
	return cur.Refcount
}

// IterRange returns the payloads of every currently resident chunk whose
// world bounds (at the given chunk size) intersect region. It never
// triggers computation; slots that are vacant or hold a different index
// than their address implies are skipped, as spec §4.1 requires.
func (r *Ring[C]) IterRange(region vec2.Bounds, chunkSize vec2.Point) []C {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []C
	for _, s := range r.slots {
		if s == nil {
			continue
		}
		if vec2.ChunkBounds(s.Index, chunkSize).Intersects(region) {
			out = append(out, s.Payload)
		}
	}
	return out
}

// occupiedLocked counts live slots. Caller must hold r.mu.
func (r *Ring[C]) occupiedLocked() int {
	n := 0
	for _, s := range r.slots {
		if s != nil {
			n++
		}
	}
	return n
}

// Capacity returns the total number of slots (GRID_SIZE.x*GRID_SIZE.y*GRID_OVERLAP).
func (r *Ring[C]) Capacity() int { return r.w * r.h }

// Occupied returns the number of currently live slots, for the debug/ops
// snapshot spec §6 describes.
func (r *Ring[C]) Occupied() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.occupiedLocked()
}
