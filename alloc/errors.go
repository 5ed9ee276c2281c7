package alloc

import "github.com/cockroachdb/errors"

var (
	// ErrNoSpace indicates that no free block (or no delegate) could satisfy
	// the request. It is the recoverable "no value" result of Arena and
	// Fallback allocations.
	ErrNoSpace = errors.New("alloc: no free block large enough")

	// ErrOutOfMemory indicates that the Go heap cannot satisfy the request.
	// Heap failures are escalated unchanged, never downgraded to ErrNoSpace.
	ErrOutOfMemory = errors.New("alloc: out of memory")

	// ErrBadSize indicates a negative size or element count.
	ErrBadSize = errors.New("alloc: size must be non-negative")

	// ErrBadCapacity indicates an arena capacity that cannot hold the initial
	// header plus a minimum payload, or that is not a multiple of 8.
	ErrBadCapacity = errors.New("alloc: bad arena capacity")

	// ErrReleased indicates use of an arena after Release.
	ErrReleased = errors.New("alloc: arena released")

	// ErrPointerElem indicates an element type holding Go pointers was bound
	// to byte-backed storage the garbage collector does not scan.
	ErrPointerElem = errors.New("alloc: element type contains pointers")

	// ErrAlignment indicates an element type aligned beyond 8 bytes.
	ErrAlignment = errors.New("alloc: element alignment exceeds 8 bytes")
)

// IsContractViolation reports whether err reports allocator misuse, such as
// deallocating a block that was never allocated or was already released.
func IsContractViolation(err error) bool {
	return errors.IsAssertionFailure(err)
}
