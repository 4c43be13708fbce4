// Package bench provides reproducible micro-benchmarks for layerproc.
// Run via: go test ./bench -bench=. -benchmem -cpu 1,4,16
//
// We measure:
//  1. EnsureLoadedInBounds - cold materialization of a region
//  2. EnsureLoadedInBounds (warm) - repeated ensure over an already-loaded
//     region (pure refcount bookkeeping, no Compute calls)
//  3. GetRange - iterating a resident region
//
// Results are printed in ns/op + alloc/op so CI can diff via benchstat.
//
// NOTE: correctness tests live in the package _test.go files; this file is
// only for performance.
package bench

import (
	"testing"

	"github.com/layerproc/layerproc/internal/vec2"
	"github.com/layerproc/layerproc/pkg/layer"
)

const chunkSize = 16

func newTestLayer() *layer.Layer[int] {
	spec := &layer.FuncSpec[int]{
		Desc: layer.Descriptor{Size: vec2.Splat(chunkSize), GridSize: [2]uint8{64, 64}, GridOverlap: 1},
		Fn:   func(idx vec2.Point) int { return int(idx.X + idx.Y) },
	}
	return layer.New[int]("bench", spec)
}

func BenchmarkEnsureLoadedInBoundsCold(b *testing.B) {
	region := vec2.Bounds{Min: vec2.Pt(0, 0), Max: vec2.Pt(16*8, 16*8)}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l := newTestLayer()
		l.EnsureLoadedInBounds(region)
	}
}

func BenchmarkEnsureLoadedInBoundsWarm(b *testing.B) {
	l := newTestLayer()
	region := vec2.Bounds{Min: vec2.Pt(0, 0), Max: vec2.Pt(16*8, 16*8)}
	l.EnsureLoadedInBounds(region)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.EnsureLoadedInBounds(region)
		l.ReleaseBounds(region)
	}
}

func BenchmarkGetRange(b *testing.B) {
	l := newTestLayer()
	region := vec2.Bounds{Min: vec2.Pt(0, 0), Max: vec2.Pt(16*8, 16*8)}
	l.EnsureLoadedInBounds(region)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = l.GetRange(region)
	}
}
