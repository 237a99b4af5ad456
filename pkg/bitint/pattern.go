// SPDX-License-Identifier: MIT
package bitint

import (
	"fmt"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// MaxWidth is the widest value, in bits, any pattern in this package spans.
const MaxWidth = 64

// Width returns the number of bits of T.
func Width[T constraints.Unsigned]() uint {
	return uint(bits.OnesCount64(uint64(^T(0))))
}

// Step returns the value with the lowest n bits set, e.g. 0b0000_0111 for
// n=3. n=0 gives 0 and any n at or above the width of T gives all ones.
func Step[T constraints.Unsigned](n uint) T {
	return T(step(Width[T](), n))
}

// Ones is an alias of Step.
func Ones[T constraints.Unsigned](n uint) T {
	return Step[T](n)
}

// RectangularWave returns n repetitions of l set bits followed by m clear
// bits, starting at bit 0, e.g. 0b11_1000_0111 for (l, m, n) = (3, 4, 2).
// Everything above the n-th period is zero and periods reaching past the
// width of T are cut off.
func RectangularWave[T constraints.Unsigned](l, m, n uint) T {
	return T(wave(Width[T](), l, m, n))
}

// RectangularWaveFill is RectangularWave with as many periods as are
// needed to cover T, see Repeats.
func RectangularWaveFill[T constraints.Unsigned](l, m uint) T {
	w := Width[T]()
	return T(wave(w, l, m, Repeats(w, l, m)))
}

// SquareWave fills T with runs of l set and l clear bits, so
// SquareWave[uint32](1) is 0x55555555 and SquareWave[uint32](8) is 0x00FF00FF.
func SquareWave[T constraints.Unsigned](l uint) T {
	return RectangularWaveFill[T](l, l)
}

// Repeats returns the number of (l+m)-bit periods needed to cover width
// bits, ceil(width/(l+m)). The last period may stick out. An empty period
// repeats zero times.
func Repeats(width, l, m uint) uint {
	l, m = min(l, width), min(m, width)
	if l+m == 0 {
		return 0
	}
	return CeilDiv(width, l+m)
}

// StepWidth is Step for a width given at runtime.
func StepWidth(width, n uint) (uint64, error) {
	if err := checkWidth(width); err != nil {
		return 0, err
	}
	return step(width, n), nil
}

// RectangularWaveWidth is RectangularWave for a width given at runtime. Pass
// Repeats(width, l, m) as n to fill the width.
func RectangularWaveWidth(width, l, m, n uint) (uint64, error) {
	if err := checkWidth(width); err != nil {
		return 0, err
	}
	return wave(width, l, m, n), nil
}

// AllowedBits returns how many low input bits survive dilution with the
// given spacing into width bits, ceil(width/(spacing+1)).
func AllowedBits(width, spacing uint) uint {
	if width == 0 {
		return 0
	}
	if spacing >= width {
		return 1
	}
	return CeilDiv(width, spacing+1)
}

func checkWidth(width uint) error {
	if width == 0 || width > MaxWidth {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrWidth, width, MaxWidth)
	}
	return nil
}

// step saturates at width and never shifts by 64.
func step(width, n uint) uint64 {
	n = min(n, width)
	if n >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<n - 1
}

func wave(width, l, m, n uint) uint64 {
	// A run longer than the width behaves exactly like one of the width,
	// clamping keeps l+m from overflowing.
	l, m = min(l, width), min(m, width)
	period := l + m
	if period == 0 {
		return 0
	}
	// Periods starting at or past the width vanish in the truncation.
	n = min(n, CeilDiv(width, period))

	one := step(width, l)
	var v uint64
	for ; n > 0; n-- {
		v = v<<period | one
	}
	return v & step(width, width)
}
