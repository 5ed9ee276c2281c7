// Package buf contains overflow-safe size arithmetic and range checks used
// when turning element counts into byte sizes and offsets into regions.
package buf

import (
	"math"

	"github.com/cockroachdb/errors"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative ints, returning ok = false when
// the product would overflow int or either operand is negative.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// SaturatingMul is MulOverflowSafe clamped to math.MaxInt on overflow.
// This is the count * elementSize calculation for allocation requests: an
// impossible product becomes a request no allocator can satisfy.
func SaturatingMul(a, b int) int {
	n, ok := MulOverflowSafe(a, b)
	if !ok {
		return math.MaxInt
	}
	return n
}

// CheckRange validates that n bytes starting at offset fit in a buffer of
// bufLen bytes. Returns the end offset if valid, or an error describing the
// specific failure (negative input, overflow or out of bounds).
//
//	end, err := buf.CheckRange(len(arena), h.Data, h.Size)
//	if err != nil {
//	    return errors.Wrapf(err, "block at %d", off)
//	}
func CheckRange(bufLen, offset, n int) (int, error) {
	if offset < 0 {
		return 0, errors.Newf("negative offset: %d", offset)
	}
	if n < 0 {
		return 0, errors.Newf("negative size: %d", n)
	}

	end, ok := AddOverflowSafe(offset, n)
	if !ok {
		return 0, errors.Newf("overflow: offset=%d + size=%d", offset, n)
	}

	if end > bufLen {
		return 0, errors.Newf("bounds: end=%d > len=%d", end, bufLen)
	}

	return end, nil
}

// Has reports whether [off, off+n) is within a buffer of bufLen bytes.
func Has(bufLen, off, n int) bool {
	_, err := CheckRange(bufLen, off, n)
	return err == nil
}
