package alloc

// Allocator is the byte-level allocator contract shared by every variant.
//
// Implementations:
//   - Heap: stateless pass-through to the Go runtime allocator
//   - Arena: fixed buffer, first-fit free list, Deallocate is a no-op
//   - Fallback: tries a primary allocator, then a secondary one
//
// None of the implementations are safe for concurrent use.
// Typed[T] binds an Allocator to an element type.
type Allocator interface {
	// Allocate returns a slice of exactly size bytes. The slice's data pointer
	// identifies the allocation, including for size == 0.
	// Exhaustion is reported as ErrNoSpace.
	Allocate(size int) ([]byte, error)

	// Deallocate releases a slice previously returned by Allocate on the same
	// allocator, with its original length.
	Deallocate(b []byte) error

	// MaxSize returns an upper bound, in bytes, on what a single Allocate
	// could ever satisfy.
	MaxSize() int
}

// Source names the delegate of a Fallback that served an allocation.
type Source uint8

const (
	SourcePrimary   Source = 1
	SourceSecondary Source = 2
)

// String returns the delegate name.
func (s Source) String() string {
	switch s {
	case SourcePrimary:
		return "primary"
	case SourceSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// Compile-time interface checks
var (
	_ Allocator = (*Heap)(nil)
	_ Allocator = (*Arena)(nil)
	_ Allocator = (*Fallback)(nil)
)
