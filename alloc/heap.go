package alloc

import (
	"math/bits"

	"github.com/cockroachdb/errors"
)

// maxHeapAlloc is the largest request passed to the Go runtime: 2^47-1 bytes
// on 64-bit platforms, math.MaxInt32 on 32-bit ones. Larger requests would
// make the runtime panic instead of returning an error.
const maxHeapAlloc = 1<<(31+16*(bits.UintSize/64)) - 1

// DefaultHeap is the package-level Heap. Heap is stateless, so sharing it is free.
var DefaultHeap = &Heap{}

// Heap is a stateless allocator that delegates to Go's built-in heap.
//
// Deallocate only drops ownership; the garbage collector reclaims the memory
// once nothing references it. Typed views over a *Heap allocate with
// make([]T, n) directly, so element types holding pointers are allowed.
type Heap struct{}

// NewHeap returns a Heap. All Heaps are interchangeable.
func NewHeap() *Heap {
	return &Heap{}
}

// Allocate returns size bytes from the Go heap.
// Zero-byte requests still get a distinct address.
// Requests above MaxSize fail with ErrOutOfMemory.
func (h *Heap) Allocate(size int) ([]byte, error) {
	if size < 0 {
		return nil, errors.Wrapf(ErrBadSize, "heap: allocate %d bytes", size)
	}
	if size > maxHeapAlloc {
		return nil, errors.Wrapf(ErrOutOfMemory, "heap: allocate %d bytes, limit %d", size, maxHeapAlloc)
	}
	return make([]byte, size, max(size, 1)), nil
}

// Deallocate hands b back to the garbage collector.
func (h *Heap) Deallocate(b []byte) error {
	return nil
}

// MaxSize returns the largest request the Go heap accepts on this platform.
func (h *Heap) MaxSize() int {
	return maxHeapAlloc
}
