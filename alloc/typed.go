package alloc

import (
	"math"
	"reflect"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/allockit/internal/buf"
	"github.com/joshuapare/allockit/internal/format"
)

// Typed binds an Allocator to element type T. It holds no state of its own:
// two views over the same allocator share its buffer, free list and tracking.
//
//	arena, _ := alloc.NewArena(4096, nil)
//	ints, _ := alloc.For[int64](arena)
//	s, err := ints.Allocate(16) // []int64, len 16
//	...
//	_ = ints.Deallocate(s)
type Typed[T any] struct {
	a        Allocator
	elemSize int
	heap     bool
}

// For returns the view of a as an allocator of T.
//
// Byte-backed allocators (anything but *Heap) hand out memory the garbage
// collector does not scan for pointers, so T must be pointer-free there
// (ErrPointerElem). T must not need more than 8-byte alignment (ErrAlignment).
func For[T any](a Allocator) (Typed[T], error) {
	var zero T
	if align := unsafe.Alignof(zero); align > format.Alignment {
		return Typed[T]{}, errors.Wrapf(ErrAlignment, "%T needs %d-byte alignment", zero, align)
	}
	_, heap := a.(*Heap)
	if !heap && hasPointers(reflect.TypeFor[T]()) {
		return Typed[T]{}, errors.Wrapf(ErrPointerElem, "%T over %T", zero, a)
	}
	return Typed[T]{a: a, elemSize: int(unsafe.Sizeof(zero)), heap: heap}, nil
}

// MustFor is For that panics on error, for package-level views of known types.
func MustFor[T any](a Allocator) Typed[T] {
	t, err := For[T](a)
	if err != nil {
		panic(err)
	}
	return t
}

// Rebind returns a view of t's allocator for element type U. No storage is
// copied or created: allocations through either view come from the same
// underlying allocator.
func Rebind[U, T any](t Typed[T]) (Typed[U], error) {
	return For[U](t.a)
}

// Allocate returns storage for count elements of T. Storage from a
// byte-backed allocator is not zeroed by the allocator; a fresh arena happens
// to start zeroed, but reused pages after Reset do not.
//
// count * sizeof(T) saturates instead of overflowing, so an impossible
// request fails the way the allocator fails oversized requests (ErrNoSpace
// for an Arena, ErrOutOfMemory for a Heap).
func (t Typed[T]) Allocate(count int) ([]T, error) {
	if count < 0 {
		return nil, errors.Wrapf(ErrBadSize, "allocate %d elements", count)
	}
	if t.a == nil {
		return nil, errors.AssertionFailedf("allocate through an unbound typed view")
	}
	size := buf.SaturatingMul(count, t.elemSize)
	if t.heap {
		if size > t.a.MaxSize() {
			return nil, errors.Wrapf(ErrOutOfMemory, "heap: allocate %d elements of %d bytes", count, t.elemSize)
		}
		return make([]T, count), nil
	}

	b, err := t.a.Allocate(size)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), count), nil
}

// Deallocate releases s, which must be a slice returned by Allocate on this
// view (or a view rebound from it) with its original length.
func (t Typed[T]) Deallocate(s []T) error {
	if t.a == nil {
		return errors.AssertionFailedf("deallocate through an unbound typed view")
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*t.elemSize)
	return t.a.Deallocate(b)
}

// MaxSize returns the allocator's bound in elements of T. Zero-sized types
// report math.MaxInt.
func (t Typed[T]) MaxSize() int {
	if t.a == nil {
		return 0
	}
	if t.elemSize == 0 {
		return math.MaxInt
	}
	return t.a.MaxSize() / t.elemSize
}

// ElemSize returns sizeof(T).
func (t Typed[T]) ElemSize() int {
	return t.elemSize
}

// Allocator returns the underlying allocator.
func (t Typed[T]) Allocator() Allocator {
	return t.a
}

// hasPointers reports whether values of typ contain anything the garbage
// collector must trace.
func hasPointers(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return typ.Len() > 0 && hasPointers(typ.Elem())
	case reflect.Struct:
		for i := range typ.NumField() {
			if hasPointers(typ.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
