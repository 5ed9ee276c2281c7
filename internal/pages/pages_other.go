//go:build !unix

package pages

import "github.com/cockroachdb/errors"

// fallbackPageSize is used where the page size cannot be queried.
const fallbackPageSize = 4096

// Reserve allocates size zeroed bytes on the Go heap when anonymous
// mappings are not available.
func Reserve(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, errors.Newf("pages: invalid reservation size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}

// Size returns the assumed page size.
func Size() int {
	return fallbackPageSize
}

// Mapped reports whether Reserve returns memory outside the Go heap.
func Mapped() bool {
	return false
}
