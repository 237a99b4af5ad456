// SPDX-License-Identifier: MIT
package utils

// The classical hand-unrolled interleaving routines with fixed magic
// constants. They serve as references for the generated dilution schedules
// and as the baseline of the bench command.

// Part1By1 spreads the low 16 bits of n over the even bit positions.
func Part1By1(n uint32) uint32 {
	n &= 0x0000ffff
	n = (n | (n << 8)) & 0x00FF00FF // 0b 0000 0000 1111 1111
	n = (n | (n << 4)) & 0x0F0F0F0F // 0b 0000 1111 0000 1111
	n = (n | (n << 2)) & 0x33333333 // 0b 0011 0011 0011 0011
	n = (n | (n << 1)) & 0x55555555 // 0b 0101 0101 0101 0101
	return n
}

// Part1By2 spreads the low 10 bits of n over every third bit position.
func Part1By2(n uint32) uint32 {
	n &= 0x000003ff
	n = (n ^ (n << 16)) & 0xFF0000FF // 0b 0000 0000 1111 1111
	n = (n ^ (n << 8)) & 0x0300F00F  // 0b 1111 0000 0000 1111
	n = (n ^ (n << 4)) & 0x030C30C3  // 0b 0011 0000 1100 0011
	n = (n ^ (n << 2)) & 0x09249249  // 0b 1001 0010 0100 1001
	return n
}

// Unpart1By1 is the inverse of Part1By1.
func Unpart1By1(n uint32) uint32 {
	n &= 0x55555555
	n = (n ^ (n >> 1)) & 0x33333333
	n = (n ^ (n >> 2)) & 0x0f0f0f0f
	n = (n ^ (n >> 4)) & 0x00ff00ff
	n = (n ^ (n >> 8)) & 0x0000ffff
	return n
}

// Unpart1By2 is the inverse of Part1By2.
func Unpart1By2(n uint32) uint32 {
	n &= 0x09249249
	n = (n ^ (n >> 2)) & 0x030c30c3
	n = (n ^ (n >> 4)) & 0x0300f00f
	n = (n ^ (n >> 8)) & 0xff0000ff
	n = (n ^ (n >> 16)) & 0x000003ff
	return n
}

// Interleave3 builds a 30-bit Morton key from three 10-bit coordinates.
func Interleave3(x, y, z uint32) uint32 {
	return Part1By2(x) | (Part1By2(y) << 1) | (Part1By2(z) << 2)
}

// Deinterleave3 splits a key built by Interleave3.
func Deinterleave3(n uint32) (x, y, z uint32) {
	return Unpart1By2(n), Unpart1By2(n >> 1), Unpart1By2(n >> 2)
}

// Dilate8 expands the bits of a uint8 with two zero bits.
func Dilate8(x uint8) uint32 {
	n := uint32(x)               // 000000000000000087654321
	n = (n ^ n<<8) & 0xf00f      // 000000008765000000004321
	n = (n ^ n<<4) & 0xc30c3     // 000087000065000043000021
	return (n ^ n<<2) & 0x249249 // 008007006005004003002001
}

// Dilate16 expands the bits of a uint16 with two zero bits.
func Dilate16(x uint16) uint64 {
	n := uint64(x)
	n = (n ^ n<<16) & 0xff0000ff
	n = (n ^ n<<8) & 0xf00f00f00f
	n = (n ^ n<<4) & 0xc30c30c30c3
	return (n ^ n<<2) & 0x249249249249
}
