package format

import "github.com/cockroachdb/errors"

// Header is the decoded form of one free-list node.
type Header struct {
	Data int // offset of the first usable byte
	Size int // usable bytes, excluding the header
	Next int // offset of the next free header, or NoBlock
}

// DecodeHeader reads the header stored at off.
// The caller guarantees that off+HeaderSize <= len(b).
func DecodeHeader(b []byte, off int) Header {
	return Header{
		Data: ReadOffset(b, off+DataFieldOffset),
		Size: int(ReadU64(b, off+SizeFieldOffset)),
		Next: ReadOffset(b, off+NextFieldOffset),
	}
}

// ParseHeader is DecodeHeader with bounds and alignment checks, for
// validation paths that cannot trust off.
func ParseHeader(b []byte, off int) (Header, error) {
	if off < 0 || off > len(b)-HeaderSize {
		return Header{}, errors.Wrapf(ErrTruncated, "header at %d, buffer %d bytes", off, len(b))
	}
	if !IsAligned8(off) {
		return Header{}, errors.Wrapf(ErrMisaligned, "header at %d", off)
	}
	h := DecodeHeader(b, off)
	if h.Size < 0 || !IsAligned8(h.Size) {
		return h, errors.Wrapf(ErrMisaligned, "header at %d has size %d", off, h.Size)
	}
	return h, nil
}

// PutHeader writes h at off.
func PutHeader(b []byte, off int, h Header) {
	PutOffset(b, off+DataFieldOffset, h.Data)
	PutU64(b, off+SizeFieldOffset, uint64(h.Size))
	PutOffset(b, off+NextFieldOffset, h.Next)
}

// PutNext rewrites only the next field of the header at off.
func PutNext(b []byte, off int, next int) {
	PutOffset(b, off+NextFieldOffset, next)
}

// InitialHeader returns the single free block covering a fresh buffer of
// capacity bytes: one header at offset 0 and everything after it usable.
func InitialHeader(capacity int) Header {
	return Header{
		Data: HeaderSize,
		Size: capacity - HeaderSize,
		Next: NoBlock,
	}
}
