// Package alloc provides interchangeable allocators behind one contract that
// generic containers can consume: MaxSize, Allocate and Deallocate.
//
// # Allocator Interface
//
// The core abstraction is the byte-level Allocator interface:
//
//   - Allocate(size): storage for size bytes, or ErrNoSpace on exhaustion
//   - Deallocate(b): release a slice previously returned by Allocate
//   - MaxSize(): upper bound on a single request, in bytes
//
// Typed[T] is a stateless view binding an Allocator to an element type, and
// Rebind re-binds a view to another element type over the same allocator.
//
// # Implementations
//
// Heap: pass-through to the Go runtime allocator
//
//   - Stateless, always succeeds unless the request is too large (ErrOutOfMemory)
//   - Typed views allocate with make, so any element type is allowed
//
// Arena: fixed-capacity buffer with an intrusive free list
//
//   - Block headers (data, size, next) live inside the buffer
//   - First-fit search, 8-byte rounding, split when the leftover fits a header + 8 bytes
//   - Deallocate is a no-op; the arena only depletes until Reset or Release
//
// Fallback: primary first, secondary on exhaustion
//
//   - Tracks which delegate served each block
//   - Routes Deallocate to the owner; foreign blocks are contract violations
//
// # Usage Example
//
//	arena, err := alloc.NewArena(4096, nil)
//	if err != nil {
//	    return err
//	}
//	fb := alloc.NewFallback(arena, alloc.DefaultHeap, nil)
//
//	points, err := alloc.For[Point](fb)
//	if err != nil {
//	    return err
//	}
//	ps, err := points.Allocate(64)
//	if err != nil {
//	    return err // both arena and heap failed
//	}
//	defer points.Deallocate(ps)
//
// # Arena Layout
//
// A 64-byte arena starts as one 24-byte header followed by 40 free bytes.
// Allocating 8 bytes splits it:
//
//	0        24       32       56       64
//	| header | used 8 | header | free 8 |
//
// A second 8-byte request takes the remaining block whole (8 bytes cannot
// host another header plus payload), and a third fails with ErrNoSpace.
//
// # Errors
//
// Exhaustion (ErrNoSpace) is recoverable. Heap failures (ErrOutOfMemory) are
// returned unchanged through a Fallback. Misuse such as deallocating a foreign
// block returns an assertion failure; see IsContractViolation.
//
// None of the allocators lock. Callers sharing one across goroutines must
// wrap it in their own mutex.
package alloc
