// Package metrics is a thin abstraction over Prometheus so that layerproc
// can be used with or without metrics, mirroring the no-op/Prometheus split
// the teacher's pkg/metrics.go uses for arena-cache.
//
// All metrics are per-layer, labeled by layer name; aggregation across
// layers is left to the Prometheus side (sum()/rate()). The hot path
// (Ring.Get, Incref, Decref) never pays for a disabled sink.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Sink is the internal interface abstracting the concrete metrics backend.
// Layer and Ring only depend on this interface, never on *prometheus.Registry
// directly.
type Sink interface {
	IncComputed(layer string)
	IncReused(layer string)
	IncRingEviction(layer string)
	SetRingOccupancy(layer string, occupied, capacity int)
}

// Noop is the default sink used when metrics are not configured.
type Noop struct{}

func (Noop) IncComputed(string)                  {}
func (Noop) IncReused(string)                     {}
func (Noop) IncRingEviction(string)                {}
func (Noop) SetRingOccupancy(string, int, int) {}

// Prom is the Prometheus-backed sink, created via New when a non-nil
// registry is supplied.
type Prom struct {
	computed  *prometheus.CounterVec
	reused    *prometheus.CounterVec
	evictions *prometheus.CounterVec
	occupancy *prometheus.GaugeVec
	capacity  *prometheus.GaugeVec
}

// New returns a no-op sink if reg is nil, otherwise a Prometheus sink with
// its collectors registered against reg.
func New(reg *prometheus.Registry) Sink {
	if reg == nil {
		return Noop{}
	}
	label := []string{"layer"}
	p := &Prom{
		computed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "layerproc",
			Name:      "chunks_computed_total",
			Help:      "Number of chunks computed from scratch.",
		}, label),
		reused: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "layerproc",
			Name:      "chunks_reused_total",
			Help:      "Number of chunk loads satisfied by an existing ring slot (refcount-only hit).",
		}, label),
		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "layerproc",
			Name:      "ring_evictions_total",
			Help:      "Number of ring slots overwritten after their prior occupant reached refcount zero.",
		}, label),
		occupancy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "layerproc",
			Name:      "ring_occupancy",
			Help:      "Number of currently occupied ring slots.",
		}, label),
		capacity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "layerproc",
			Name:      "ring_capacity",
			Help:      "Total number of ring slots (GRID_SIZE.x*GRID_SIZE.y*GRID_OVERLAP).",
		}, label),
	}
	reg.MustRegister(p.computed, p.reused, p.evictions, p.occupancy, p.capacity)
	return p
}

func (p *Prom) IncComputed(layer string) { p.computed.WithLabelValues(layer).Inc() }
func (p *Prom) IncReused(layer string)   { p.reused.WithLabelValues(layer).Inc() }
func (p *Prom) IncRingEviction(layer string) {
	p.evictions.WithLabelValues(layer).Inc()
}
func (p *Prom) SetRingOccupancy(layer string, occupied, capacity int) {
	p.occupancy.WithLabelValues(layer).Set(float64(occupied))
	p.capacity.WithLabelValues(layer).Set(float64(capacity))
}
