package alloc

import (
	"testing"
)

// BenchmarkArena_New measures construction; only one header is written.
func BenchmarkArena_New(b *testing.B) {
	b.ReportAllocs()
	for range b.N {
		a, err := NewArena(1<<16, nil)
		if err != nil {
			b.Fatal(err)
		}
		_ = a.Release()
	}
}

// BenchmarkArena_Allocate measures allocation throughput with periodic resets.
func BenchmarkArena_Allocate(b *testing.B) {
	a, err := NewArena(1<<20, nil)
	if err != nil {
		b.Fatal(err)
	}
	defer a.Release()

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		if _, err := a.Allocate(64); err != nil {
			if err := a.Reset(); err != nil {
				b.Fatal(err)
			}
		}
	}
}

// BenchmarkHeap_Allocate is the Go heap baseline for BenchmarkArena_Allocate.
func BenchmarkHeap_Allocate(b *testing.B) {
	h := NewHeap()
	b.ReportAllocs()
	for range b.N {
		if _, err := h.Allocate(64); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkFallback_Allocate measures routing overhead once the arena is depleted.
func BenchmarkFallback_Allocate(b *testing.B) {
	a, err := NewArena(4096, nil)
	if err != nil {
		b.Fatal(err)
	}
	fb := NewFallback(a, NewHeap(), nil)

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		buf, err := fb.Allocate(64)
		if err != nil {
			b.Fatal(err)
		}
		if err := fb.Deallocate(buf); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkTyped_Allocate measures the typed view over an arena.
func BenchmarkTyped_Allocate(b *testing.B) {
	a, err := NewArena(1<<20, nil)
	if err != nil {
		b.Fatal(err)
	}
	points := MustFor[point](a)

	b.ResetTimer()
	for range b.N {
		if _, err := points.Allocate(8); err != nil {
			_ = a.Reset()
		}
	}
}
