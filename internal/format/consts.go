// Package format describes the in-buffer layout of arena free-list headers.
//
// An arena is one contiguous byte buffer. Every free region in it is preceded
// by a block header made of three little-endian 64-bit words:
//
//	+0   data  buffer offset of the first usable byte
//	+8   size  usable bytes, excluding the header
//	+16  next  buffer offset of the next free header, or NilOffset
//
// Headers only ever live inside the buffer they describe.
package format

const (
	// WordSize is the width of every header field.
	WordSize = 8

	// HeaderSize is the size of one block header (data, size, next).
	HeaderSize = 3 * WordSize

	// DataFieldOffset is the offset of the data field within a header.
	DataFieldOffset = 0

	// SizeFieldOffset is the offset of the size field within a header.
	SizeFieldOffset = WordSize

	// NextFieldOffset is the offset of the next field within a header.
	NextFieldOffset = 2 * WordSize

	// Alignment is the granularity of every block size and data offset.
	Alignment = 8

	// AlignmentMask is the bitmask used for aligning to 8-byte boundaries (Alignment - 1).
	AlignmentMask = Alignment - 1

	// MinPayload is the smallest usable region a split may leave behind.
	MinPayload = Alignment

	// MinSplitRemainder is the leftover a block needs before it is split:
	// room for a new header plus the minimum payload.
	MinSplitRemainder = HeaderSize + MinPayload

	// NilOffset terminates the free list.
	NilOffset = ^uint64(0)

	// NoBlock is NilOffset decoded as an int offset.
	NoBlock = -1
)
