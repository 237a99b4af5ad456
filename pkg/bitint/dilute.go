// SPDX-License-Identifier: MIT
package bitint

import "golang.org/x/exp/constraints"

// Dilute inserts spacing zero bits between the bits of x, so bit i of x
// moves to bit i*(spacing+1). Only the lowest AllowedBits(Width[T](), spacing)
// bits of x take part, higher bits are silently dropped. Spacing 0 returns x.
//
//	Dilute[uint8](1, 0b0111) == 0b0001_0101
//	Dilute[uint8](4, 0b0111) == 0b0010_0001 // only 2 bits fit
func Dilute[T constraints.Unsigned](spacing uint, x T) T {
	if spacing == 0 {
		return x
	}
	return T(nativeSchedule(Width[T](), spacing).Apply(uint64(x)))
}

// DiluteStrict is Dilute returning ErrTruncated for inputs that do not fit.
func DiluteStrict[T constraints.Unsigned](spacing uint, x T) (T, error) {
	if spacing == 0 {
		return x, nil
	}
	v, err := nativeSchedule(Width[T](), spacing).ApplyStrict(uint64(x))
	return T(v), err
}

// Concentrate is the inverse of Dilute: it collects bits 0, spacing+1,
// 2*(spacing+1), ... of x into the low bits of the result.
func Concentrate[T constraints.Unsigned](spacing uint, x T) T {
	if spacing == 0 {
		return x
	}
	return T(nativeSchedule(Width[T](), spacing).Invert(uint64(x)))
}

// DiluteNaive moves one bit at a time. It gives the same result as Dilute
// and exists as a reference for it.
func DiluteNaive[T constraints.Unsigned](spacing uint, x T) T {
	x &= Step[T](AllowedBits(Width[T](), spacing))
	var result T
	for shift := uint(0); x != 0; shift += spacing + 1 {
		result |= (x & 1) << shift
		x >>= 1
	}
	return result
}

// Interleave builds the Morton (Z-order) key of coords: coordinate k is
// diluted with spacing len(coords)-1 and shifted left by k, so bit i of
// coordinate k lands at bit i*len(coords)+k. Bits that would land past
// the width of T are lost.
func Interleave[T constraints.Unsigned](coords ...T) T {
	if len(coords) == 0 {
		return 0
	}
	s := nativeSchedule(Width[T](), uint(len(coords)-1))
	var key T
	for k, c := range coords {
		key |= T(s.Apply(uint64(c))) << k
	}
	return key
}

// Deinterleave splits a key built by Interleave back into len(out)
// coordinates.
func Deinterleave[T constraints.Unsigned](key T, out []T) {
	if len(out) == 0 {
		return
	}
	s := nativeSchedule(Width[T](), uint(len(out)-1))
	for k := range out {
		out[k] = T(s.Invert(uint64(key >> k)))
	}
}
