package format

import "encoding/binary"

// Binary encoding utilities for header words.
//
// Implementation: Uses encoding/binary.LittleEndian. The compiler inlines
// these into single loads and stores, so no unsafe variant is needed.

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

// PutOffset writes an int offset, encoding NoBlock as NilOffset.
func PutOffset(b []byte, off int, v int) {
	if v == NoBlock {
		PutU64(b, off, NilOffset)
		return
	}
	PutU64(b, off, uint64(v))
}

// ReadOffset reads an offset written by PutOffset. NilOffset decodes to NoBlock.
func ReadOffset(b []byte, off int) int {
	v := ReadU64(b, off)
	if v == NilOffset {
		return NoBlock
	}
	return int(v)
}
