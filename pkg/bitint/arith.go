// SPDX-License-Identifier: MIT
package bitint

import (
	"fmt"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// CeilDiv returns ceil(a/b). Unlike (a+b-1)/b it cannot overflow.
// A zero b panics like any integer division by zero.
func CeilDiv[T constraints.Unsigned](a, b T) T {
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}

// Pow returns base**exp by squaring. The result wraps modulo 2^64.
func Pow(base uint64, exp uint) uint64 {
	result := uint64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

// FloorLog returns floor(log_base(x)), the largest k with base**k <= x.
// Both 0 and 1 yield 0. It panics with ErrBase when base < 2.
func FloorLog(base, x uint64) uint {
	mustBase(base)
	if x == 0 {
		return 0
	}
	if base == 2 {
		return uint(bits.Len64(x) - 1)
	}
	var k uint
	for x >= base {
		x /= base
		k++
	}
	return k
}

// CeilLog returns ceil(log_base(x)), the smallest k with base**k >= x.
// Both 0 and 1 yield 0. It panics with ErrBase when base < 2.
//
// The loop relies on base**k >= x being equivalent to
// base**(k-1) >= ceil(x/base), which keeps every step exact.
func CeilLog(base, x uint64) uint {
	mustBase(base)
	if x <= 1 {
		return 0
	}
	if base == 2 {
		return uint(bits.Len64(x - 1))
	}
	var k uint
	for x > 1 {
		x = CeilDiv(x, base)
		k++
	}
	return k
}

func mustBase(base uint64) {
	if base < 2 {
		panic(fmt.Errorf("%w: got %d", ErrBase, base))
	}
}
