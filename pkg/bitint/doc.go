/*
Package bitint provides integer bit manipulation for fixed-width unsigned
values: exact integer logarithms, power-of-two helpers, constant bit
patterns and bit dilution (spreading the bits of a value apart so that
several values can be interleaved into one key).

Design Principles:
- Zero Allocations: the hot paths (Dilute, Concentrate, Schedule.Apply) use stack memory only
- Exact Arithmetic: no floating point anywhere, logarithms are computed on integers
- Width Bound: every pattern fits a native unsigned type of at most 64 bits
- Pure: identical input always gives identical output, safe for concurrent use

Usage:

	// 0b0101_0101: one set bit, one clear bit, filling all of a uint8
	mask := bitint.SquareWave[uint8](1)

	// Spread 0b111 apart with one zero between each bit: 0b10101
	key := bitint.Dilute[uint32](1, 0b111)

	// Morton key of a 2D coordinate
	z := bitint.Interleave[uint32](x, y)

----------------------------------------------------------------------

What this code does:

	Dilution moves input bit i to position i*(S+1). Instead of moving
	every bit on its own, the bits are moved in blocks. In the first
	round the upper half of the input travels as one block, then each
	half is split again, until single bits are left. With spacing S
	the upper half of a block of 2b bits has to travel b*S positions,
	so every round is

	  x = (x | x<<(b*S)) & RectangularWave(b, b*S)

	The OR leaves a copy of every bit behind, the mask keeps only the
	copies that landed where they belong. For 32 bits and S=1 this
	unrolls into the well known sequence

	  x &= 0x0000FFFF
	  x = (x | x<<8) & 0x00FF00FF
	  x = (x | x<<4) & 0x0F0F0F0F
	  x = (x | x<<2) & 0x33333333
	  x = (x | x<<1) & 0x55555555

	A value of W bits can hold ceil(W/(S+1)) diluted input bits. Higher
	input bits are dropped before the first round; DiluteStrict reports
	them instead.
*/
package bitint
