// SPDX-License-Identifier: MIT
package utils

import "math/rand/v2"

// edgeValues lead every generated sample, they are the inputs most likely
// to break a bit trick.
var edgeValues = []uint64{
	0,
	1,
	2,
	3,
	0x7,
	0x80,
	0xFF,
	0x3FF,
	0xFFFF,
	0x5555555555555555,
	0xAAAAAAAAAAAAAAAA,
	0x8000000000000000,
	0xFFFFFFFFFFFFFFFF,
}

// GenerateValues returns size pseudo random 64-bit values. The same seed
// always gives the same values. The first values (up to size) are fixed
// edge cases such as 0, 1 and all ones.
func GenerateValues(size int, seed uint64) []uint64 {
	values := make([]uint64, size)
	n := copy(values, edgeValues)
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	for i := n; i < size; i++ {
		// Shift by a random amount so that short values are as common as
		// long ones.
		values[i] = rng.Uint64() >> rng.UintN(64)
	}
	return values
}

// GenerateValues32 is GenerateValues truncated to 32 bits.
func GenerateValues32(size int, seed uint64) []uint32 {
	wide := GenerateValues(size, seed)
	values := make([]uint32, size)
	for i, v := range wide {
		values[i] = uint32(v)
	}
	return values
}
