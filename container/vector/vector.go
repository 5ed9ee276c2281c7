// Package vector provides a growable array whose storage comes from an
// alloc.Allocator instead of the Go runtime.
package vector

import (
	"github.com/cockroachdb/errors"

	"github.com/joshuapare/allockit/alloc"
)

// ErrTooLong is returned when growing would exceed the allocator's MaxSize.
var ErrTooLong = errors.New("vector: length exceeds allocator max size")

// minGrow is the capacity of the first allocation made by Push.
const minGrow = 4

// Vector is a contiguous, growable sequence of T. Growth doubles the
// capacity, copies the live elements and deallocates the old storage through
// the allocator, so an Arena-backed vector consumes the arena monotonically.
//
// The zero Vector is not usable; create one with New. Not safe for
// concurrent use.
type Vector[T any] struct {
	a     alloc.Typed[T]
	items []T // len(items) is the capacity
	n     int
}

// New returns an empty vector drawing storage from a.
func New[T any](a alloc.Typed[T]) *Vector[T] {
	return &Vector[T]{a: a}
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return v.n }

// Cap returns the number of elements the current storage holds.
func (v *Vector[T]) Cap() int { return len(v.items) }

// Items returns the live elements. The slice aliases the vector's storage and
// is invalidated by the next growth or Release.
func (v *Vector[T]) Items() []T { return v.items[:v.n] }

// At returns element i. It panics if i is out of range, like a slice index.
func (v *Vector[T]) At(i int) T {
	return v.items[:v.n][i]
}

// Set replaces element i. It panics if i is out of range.
func (v *Vector[T]) Set(i int, x T) {
	v.items[:v.n][i] = x
}

// Push appends x, growing the storage when full.
func (v *Vector[T]) Push(x T) error {
	if v.n == len(v.items) {
		if err := v.grow(v.n + 1); err != nil {
			return err
		}
	}
	v.items[v.n] = x
	v.n++
	return nil
}

// Reserve makes room for at least n elements without further growth.
func (v *Vector[T]) Reserve(n int) error {
	if n <= len(v.items) {
		return nil
	}
	return v.resize(n)
}

// Release hands the storage back to the allocator and empties the vector.
// The vector can be reused afterwards.
func (v *Vector[T]) Release() error {
	if v.items == nil {
		return nil
	}
	err := v.a.Deallocate(v.items)
	v.items, v.n = nil, 0
	return err
}

// grow picks the next capacity for at least need elements: double the current
// capacity, clamped to MaxSize.
func (v *Vector[T]) grow(need int) error {
	limit := v.a.MaxSize()
	if need > limit {
		return errors.Wrapf(ErrTooLong, "need %d elements, max %d", need, limit)
	}
	c := max(len(v.items), minGrow/2) * 2
	if c < len(v.items) || c > limit {
		c = limit
	}
	return v.resize(max(c, need))
}

func (v *Vector[T]) resize(c int) error {
	if limit := v.a.MaxSize(); c > limit {
		return errors.Wrapf(ErrTooLong, "reserve %d elements, max %d", c, limit)
	}
	items, err := v.a.Allocate(c)
	if err != nil {
		return errors.Wrapf(err, "vector: grow to %d elements", c)
	}
	copy(items, v.items[:v.n])
	if v.items != nil {
		if err := v.a.Deallocate(v.items); err != nil {
			// The new storage is already live; keep it and report.
			v.items = items
			return errors.Wrap(err, "vector: release old storage")
		}
	}
	v.items = items
	return nil
}
