//go:build unix

package pages

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// Reserve maps size bytes of zeroed, private, read/write memory.
// The returned release function unmaps it; calling it twice is a no-op.
func Reserve(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, errors.Newf("pages: invalid reservation size %d", size)
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "pages: mmap %d bytes", size)
	}
	release := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		data = nil
		return err
	}
	return data, release, nil
}

// Size returns the operating system page size.
func Size() int {
	return unix.Getpagesize()
}

// Mapped reports whether Reserve returns memory outside the Go heap.
func Mapped() bool {
	return true
}
