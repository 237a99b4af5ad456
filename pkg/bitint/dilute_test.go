// SPDX-License-Identifier: MIT
package bitint

import (
	"errors"
	"fmt"
	"testing"

	"bitpat/pkg/utils"

	"golang.org/x/exp/constraints"
)

func TestDilute(t *testing.T) {
	tests := []struct {
		name     string
		got      uint64
		expected uint64
	}{
		{"uint8 spacing 4 of 0b111", uint64(Dilute[uint8](4, 0b111)), 0b00100001},
		{"uint8 spacing 1 of 0b111", uint64(Dilute[uint8](1, 0b111)), 0b00010101},
		{"uint8 spacing 1 of 0xF", uint64(Dilute[uint8](1, 0xF)), 0x55},
		{"uint8 spacing 1 of 0xFF", uint64(Dilute[uint8](1, 0xFF)), 0x55}, // High nibble dropped
		{"uint8 spacing 0", uint64(Dilute[uint8](0, 0xAB)), 0xAB},
		{"uint16 spacing 3 of 0xF", uint64(Dilute[uint16](3, 0xF)), 0x1111},
		{"uint32 spacing 1 of 0xFFFF", uint64(Dilute[uint32](1, 0xFFFF)), 0x55555555},
		{"uint32 spacing 2 of 0x3FF", uint64(Dilute[uint32](2, 0x3FF)), 0x09249249},
		{"uint32 spacing 30 of 0b11", uint64(Dilute[uint32](30, 0b11)), 0x80000001},
		{"uint32 spacing 31 of 0b11", uint64(Dilute[uint32](31, 0b11)), 0x1},
		{"uint64 spacing 63", uint64(Dilute[uint64](63, 0xFF)), 0x1},
		{"uint64 spacing 1000", uint64(Dilute[uint64](1000, 0b11)), 0x1},
		{"uint64 spacing 1 of all ones", Dilute[uint64](1, ^uint64(0)), 0x5555555555555555},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %#b, expected %#b", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestDiluteMatchesPart1By1(t *testing.T) {
	for x := uint32(0); x <= 0xFFFF; x++ {
		if got, want := Dilute[uint32](1, x), utils.Part1By1(x); got != want {
			t.Fatalf("Dilute[uint32](1, %#x) = %#x, part1by1 gives %#x", x, got, want)
		}
	}
}

func TestDiluteMatchesPart1By2(t *testing.T) {
	for x := uint32(0); x <= 0x3FF; x++ {
		if got, want := Dilute[uint32](2, x), utils.Part1By2(x); got != want {
			t.Fatalf("Dilute[uint32](2, %#x) = %#x, part1by2 gives %#x", x, got, want)
		}
	}
}

func TestDiluteMatchesDilate(t *testing.T) {
	for x := 0; x <= 0xFF; x++ {
		if got, want := Dilute[uint32](2, uint32(x)), utils.Dilate8(uint8(x)); got != want {
			t.Fatalf("Dilute[uint32](2, %#x) = %#x, Dilate8 gives %#x", x, got, want)
		}
	}
	for _, v := range utils.GenerateValues(256, 3) {
		x := uint16(v)
		if got, want := Dilute[uint64](2, uint64(x)), utils.Dilate16(x); got != want {
			t.Fatalf("Dilute[uint64](2, %#x) = %#x, Dilate16 gives %#x", x, got, want)
		}
	}
}

func checkAgainstNaive[T constraints.Unsigned](t *testing.T, values []uint64) {
	t.Helper()
	width := Width[T]()
	for spacing := uint(0); spacing <= width+1; spacing++ {
		for _, v := range values {
			x := T(v)
			if got, want := Dilute(spacing, x), DiluteNaive(spacing, x); got != want {
				t.Fatalf("Dilute[uint%d](%d, %#x) = %#x, naive gives %#x", width, spacing, x, got, want)
			}
		}
	}
}

func TestDiluteMatchesNaive(t *testing.T) {
	values := utils.GenerateValues(512, 11)
	t.Run("uint8", func(t *testing.T) { checkAgainstNaive[uint8](t, values) })
	t.Run("uint16", func(t *testing.T) { checkAgainstNaive[uint16](t, values) })
	t.Run("uint32", func(t *testing.T) { checkAgainstNaive[uint32](t, values) })
	t.Run("uint64", func(t *testing.T) { checkAgainstNaive[uint64](t, values) })
	t.Run("uint", func(t *testing.T) { checkAgainstNaive[uint](t, values) })
}

// Reading every (S+1)-th bit of the result gives back the input.
func TestDiluteRoundTrip(t *testing.T) {
	values := utils.GenerateValues(512, 5)
	for spacing := uint(0); spacing <= 64; spacing++ {
		allowed := AllowedBits(64, spacing)
		for _, v := range values {
			x := v & Step[uint64](allowed)
			d := Dilute(spacing, x)

			var back uint64
			for i := uint(0); i < allowed; i++ {
				back |= (d >> (i * (spacing + 1)) & 1) << i
			}
			if back != x {
				t.Fatalf("Dilute(%d, %#x) = %#x reads back as %#x", spacing, x, d, back)
			}
			if c := Concentrate(spacing, d); c != x {
				t.Fatalf("Concentrate(%d, %#x) = %#x, expected %#x", spacing, d, c, x)
			}
		}
	}
}

// Input bits above AllowedBits are dropped.
func TestDiluteTruncation(t *testing.T) {
	values := utils.GenerateValues32(512, 9)
	for spacing := uint(1); spacing <= 33; spacing++ {
		mask := Step[uint32](AllowedBits(32, spacing))
		for _, x := range values {
			if got, want := Dilute(spacing, x), Dilute(spacing, x&mask); got != want {
				t.Fatalf("Dilute(%d, %#x) = %#x, expected %#x", spacing, x, got, want)
			}
		}
	}
}

func TestDiluteStrict(t *testing.T) {
	got, err := DiluteStrict[uint8](4, 0b11)
	if err != nil || got != 0b100001 {
		t.Errorf("DiluteStrict[uint8](4, 0b11) = %#b, %v, expected 0b100001", got, err)
	}

	_, err = DiluteStrict[uint8](4, 0b111)
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("DiluteStrict[uint8](4, 0b111) error = %v, expected ErrTruncated", err)
	}

	got, err = DiluteStrict[uint8](0, 0xFF)
	if err != nil || got != 0xFF {
		t.Errorf("DiluteStrict[uint8](0, 0xFF) = %#x, %v, expected 0xff", got, err)
	}
}

func TestConcentrateMatchesUnpart(t *testing.T) {
	for _, x := range utils.GenerateValues32(1024, 13) {
		if got, want := Concentrate[uint32](1, x), utils.Unpart1By1(x); got != want {
			t.Fatalf("Concentrate[uint32](1, %#x) = %#x, unpart1by1 gives %#x", x, got, want)
		}
	}
	for x := uint32(0); x <= 0x3FF; x++ {
		key := utils.Part1By2(x)
		if got, want := Concentrate[uint32](2, key), utils.Unpart1By2(key); got != want {
			t.Fatalf("Concentrate[uint32](2, %#x) = %#x, unpart1by2 gives %#x", key, got, want)
		}
	}
}

func TestInterleave(t *testing.T) {
	values := utils.GenerateValues32(256, 17)
	for i := 1; i < len(values); i++ {
		x, y := values[i-1], values[i]
		want := utils.Part1By1(x) | utils.Part1By1(y)<<1
		if got := Interleave(x, y); got != want {
			t.Fatalf("Interleave(%#x, %#x) = %#x, expected %#x", x, y, got, want)
		}
	}
	for i := 2; i < len(values); i++ {
		x, y, z := values[i-2]&0x3FF, values[i-1]&0x3FF, values[i]&0x3FF
		if got, want := Interleave(x, y, z), utils.Interleave3(x, y, z); got != want {
			t.Fatalf("Interleave(%#x, %#x, %#x) = %#x, expected %#x", x, y, z, got, want)
		}
	}

	if got := Interleave[uint32](); got != 0 {
		t.Errorf("Interleave() = %#x, expected 0", got)
	}
	if got := Interleave[uint16](0xBEEF); got != 0xBEEF {
		t.Errorf("Interleave(0xBEEF) = %#x, expected 0xbeef", got)
	}
}

func TestDeinterleave(t *testing.T) {
	tests := []struct {
		dims int
		bits uint // Coordinate bits that always fit a uint64 key
	}{
		{1, 64},
		{2, 32},
		{3, 21},
		{4, 16},
		{8, 8},
	}

	values := utils.GenerateValues(64, 19)
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dD", tt.dims), func(t *testing.T) {
			coords := make([]uint64, tt.dims)
			out := make([]uint64, tt.dims)
			for i := range values {
				for k := range coords {
					coords[k] = values[(i+k)%len(values)] & Step[uint64](tt.bits)
				}
				Deinterleave(Interleave(coords...), out)
				for k := range coords {
					if out[k] != coords[k] {
						t.Fatalf("Deinterleave(Interleave(%#x)) = %#x", coords, out)
					}
				}
			}
		})
	}

	// Nothing to fill.
	Deinterleave[uint64](0xFF, nil)
}

func TestDiluteZeroAllocs(t *testing.T) {
	var sink uint32
	allocs := testing.AllocsPerRun(100, func() {
		sink ^= Dilute[uint32](1, sink|0x1234)
		sink ^= Concentrate[uint32](1, sink)
	})
	if allocs > 0 {
		t.Errorf("Expected zero allocations in Dilute/Concentrate, got %.1f", allocs)
	}
}

func BenchmarkDilute(b *testing.B) {
	benchmarks := []struct {
		name    string
		spacing uint
	}{
		{"Spacing1", 1},
		{"Spacing2", 2},
		{"Spacing5", 5},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			var x uint32
			b.ReportAllocs()
			for b.Loop() {
				x ^= Dilute(bm.spacing, x) | 0x12345
			}
		})
	}
}

func BenchmarkDiluteNaive(b *testing.B) {
	var x uint32
	b.ReportAllocs()
	for b.Loop() {
		x ^= DiluteNaive(1, x) | 0x12345
	}
}

func BenchmarkPart1By1(b *testing.B) {
	var x uint32
	b.ReportAllocs()
	for b.Loop() {
		x ^= utils.Part1By1(x) | 0x12345
	}
}
