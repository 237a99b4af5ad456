// SPDX-License-Identifier: MIT
package bitint

import (
	"fmt"
	"math/bits"
)

// maxRounds is the round count of the longest schedule: 64 bits with
// spacing 0 move blocks of 32, 16, 8, 4, 2 and 1 bits.
const maxRounds = 6

// Round is one shift-and-mask step of a dilution schedule.
type Round struct {
	Block uint   // input bits per block once the round is done
	Shift uint   // Block * spacing
	Mask  uint64 // RectangularWave(Block, Block*spacing) over the width
}

// Schedule is the fixed sequence of rounds that dilutes values of one width
// with one spacing. It depends on nothing but those two numbers and is
// never modified after construction, so a single Schedule may be shared by
// any number of goroutines.
type Schedule struct {
	width    uint
	spacing  uint
	allowed  uint
	sanitize uint64
	rounds   [maxRounds]Round
	n        int
}

// TraceStep describes one step of Schedule.Trace. Step 0 is the masking of
// the input to the allowed bits, its Round carries only that mask.
type TraceStep struct {
	Index int
	Round Round
	In    uint64
	Out   uint64
}

// NewSchedule derives the dilution schedule for width bits and the given
// spacing. It fails with ErrWidth when width is not within [1, MaxWidth].
func NewSchedule(width, spacing uint) (*Schedule, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	s := newSchedule(width, spacing)
	return &s, nil
}

func newSchedule(width, spacing uint) Schedule {
	s := Schedule{
		width:   width,
		spacing: spacing,
		allowed: AllowedBits(width, spacing),
	}
	s.sanitize = step(width, s.allowed)

	// The first block is the upper half of the smallest power of two
	// holding all allowed bits, which gives ceil(log2(allowed)) rounds.
	for block := NextPowerOfTwo(s.allowed) / 2; block > 0; block /= 2 {
		gap := block * spacing
		s.rounds[s.n] = Round{
			Block: block,
			Shift: gap,
			Mask:  wave(width, block, gap, Repeats(width, block, gap)),
		}
		s.n++
	}
	return s
}

// Width returns the number of bits of the diluted values.
func (s *Schedule) Width() uint { return s.width }

// Spacing returns the number of zero bits inserted between input bits.
func (s *Schedule) Spacing() uint { return s.spacing }

// AllowedBits returns how many low input bits are diluted.
func (s *Schedule) AllowedBits() uint { return s.allowed }

// Steps returns 1 + ceil(log2(AllowedBits)): the input masking plus one
// step per round.
func (s *Schedule) Steps() int { return s.n + 1 }

// Sanitize returns the mask applied to the input before the first round.
func (s *Schedule) Sanitize() uint64 { return s.sanitize }

// Rounds returns a copy of the rounds, largest block first.
func (s *Schedule) Rounds() []Round {
	return append([]Round(nil), s.rounds[:s.n]...)
}

// Apply dilutes x. Bits of x above AllowedBits are dropped.
func (s *Schedule) Apply(x uint64) uint64 {
	x &= s.sanitize
	for i := 0; i < s.n; i++ {
		r := &s.rounds[i]
		x = (x | x<<r.Shift) & r.Mask
	}
	return x
}

// ApplyStrict dilutes x like Apply but returns ErrTruncated instead of
// dropping bits above AllowedBits.
func (s *Schedule) ApplyStrict(x uint64) (uint64, error) {
	if x&^s.sanitize != 0 {
		return 0, fmt.Errorf("%w: %#x has %d significant bits, %d allowed",
			ErrTruncated, x, bits.Len64(x), s.allowed)
	}
	return s.Apply(x), nil
}

// Trace dilutes x like Apply and calls fn after every step.
func (s *Schedule) Trace(x uint64, fn func(TraceStep)) uint64 {
	in := x
	x &= s.sanitize
	fn(TraceStep{Index: 0, Round: Round{Block: s.allowed, Mask: s.sanitize}, In: in, Out: x})
	for i := 0; i < s.n; i++ {
		r := s.rounds[i]
		in = x
		x = (x | x<<r.Shift) & r.Mask
		fn(TraceStep{Index: i + 1, Round: r, In: in, Out: x})
	}
	return x
}

// Invert undoes Apply: it gathers the bits at positions 0, S+1, 2(S+1), ...
// into a dense value. Bits at any other position are ignored.
func (s *Schedule) Invert(x uint64) uint64 {
	if s.n == 0 {
		return x & s.sanitize
	}
	// Running the rounds backwards, each one pulls the upper half of every
	// block back next to its lower half and masks with the layout that
	// existed before the round.
	x &= s.rounds[s.n-1].Mask
	for i := s.n - 1; i >= 0; i-- {
		prev := s.sanitize
		if i > 0 {
			prev = s.rounds[i-1].Mask
		}
		x = (x | x>>s.rounds[i].Shift) & prev
	}
	return x
}

// String renders the schedule the way it would be written by hand.
func (s *Schedule) String() string {
	out := fmt.Sprintf("x &= %#x", s.sanitize)
	for i := 0; i < s.n; i++ {
		r := &s.rounds[i]
		out += fmt.Sprintf("; x = (x | x<<%d) & %#x", r.Shift, r.Mask)
	}
	return out
}

// native holds the schedule of every spacing for the native widths 8, 16,
// 32 and 64. It is filled during package initialization and read-only
// afterwards. Spacings at or above width-1 all keep a single input bit, so
// the table stops there.
var native = func() (t [4][MaxWidth]Schedule) {
	for i := range t {
		w := uint(8) << i
		for s := uint(0); s < w; s++ {
			t[i][s] = newSchedule(w, s)
		}
	}
	return t
}()

// nativeSchedule expects width to be 8, 16, 32 or 64.
func nativeSchedule(width, spacing uint) *Schedule {
	spacing = min(spacing, width-1)
	return &native[bits.TrailingZeros(width>>3)][spacing]
}
