package format

// Align8 returns n aligned up to the next 8-byte boundary.
// Used for block sizes, which must stay multiples of Alignment.
//
// Example:
//
//	Align8(0)  = 0
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
func Align8(n int) int {
	return (n + AlignmentMask) & ^AlignmentMask
}

// IsAligned8 reports whether n is a multiple of Alignment.
func IsAligned8(n int) bool {
	return n&AlignmentMask == 0
}

// AlignDown8 returns n aligned down to the previous 8-byte boundary.
func AlignDown8(n int) int {
	return n & ^AlignmentMask
}
