// SPDX-License-Identifier: MIT
package bitint

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// NextPowerOfTwo returns the next power of 2 >= size.
// Algorithm explained:
//  1. Subtract 1 from size to handle exact powers of 2
//  2. Find position of highest set bit
//  3. Shift 1 left by that position
//
// Examples:
//
//	Input  Output  Explanation
//	4      4      Already power of 2 (preserved)
//	5      8      Next power after 5
//	0      1      Handle zero case
//	-1     1      Handle negative case
//
// The result wraps to 0 when the next power does not fit T.
func NextPowerOfTwo[T constraints.Integer](size T) T {
	if size <= 0 {
		return 1
	}
	return T(uint64(1) << bits.Len64(uint64(size-1)))
}

// IsPowerOfTwo checks if n is a power of 2 using bit manipulation.
// The expression (n & (n-1)) == 0 works because:
//   - Powers of 2 have exactly one bit set
//   - Subtracting 1 from a power of 2 sets all lower bits
//   - AND operation will be 0 only for powers of 2
//
// Examples:
//
//	Input  Output  Binary
//	8      true    1000 & 0111 = 0000
//	7      false   0111 & 0110 = 0110
//	0      false   Not positive
//	-8     false   Not positive
func IsPowerOfTwo[T constraints.Integer](n T) bool {
	return n > 0 && (n&(n-1)) == 0
}
