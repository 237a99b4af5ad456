// SPDX-License-Identifier: MIT
//
// Package bench times the dilution schedules against the hand-written magic
// constant routines they generalize, and summarizes the rounds with gonum.
package bench

import (
	"context"
	"fmt"
	"time"

	"bitpat/pkg/bitint"
	"bitpat/pkg/utils"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Options controls how long every case runs.
type Options struct {
	Iterations int    // Calls per timed round
	Rounds     int    // Timed rounds per case
	Seed       uint64 // Input values seed
}

// Result summarizes one case in nanoseconds per call.
type Result struct {
	Name   string
	Mean   float64
	StdDev float64
	Min    float64
}

type benchCase struct {
	name   string
	single func(uint32) uint32
	// reference, when set, must agree with single on every input.
	reference func(uint32) uint32
}

var sink uint32

func cases() []benchCase {
	schedule48, _ := bitint.NewSchedule(48, 2)
	dilute1 := func(x uint32) uint32 { return bitint.Dilute[uint32](1, x) }
	dilute2 := func(x uint32) uint32 { return bitint.Dilute[uint32](2, x) }
	naive1 := func(x uint32) uint32 { return bitint.DiluteNaive[uint32](1, x) }
	apply48 := func(x uint32) uint32 { return uint32(schedule48.Apply(uint64(x)) >> 16) }

	return []benchCase{
		{name: "Dilute/1", single: dilute1, reference: utils.Part1By1},
		{name: "Part1By1", single: utils.Part1By1},
		{name: "DiluteNaive/1", single: naive1, reference: utils.Part1By1},
		{name: "Dilute/2", single: dilute2, reference: utils.Part1By2},
		{name: "Part1By2", single: utils.Part1By2},
		{name: "Schedule(48,2)", single: apply48},
	}
}

// Verify checks that every case with a reference agrees with it on values.
func Verify(values []uint32) error {
	for _, c := range cases() {
		if c.reference == nil {
			continue
		}
		for _, x := range values {
			if got, want := c.single(x), c.reference(x); got != want {
				return fmt.Errorf("%s(%#x) = %#x, reference gives %#x", c.name, x, got, want)
			}
		}
	}
	return nil
}

// Run verifies then times every case. It stops early with ctx's error when
// ctx is done between rounds.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if opts.Iterations <= 0 || opts.Rounds <= 0 {
		return nil, fmt.Errorf("bench: iterations and rounds must be positive, got %d and %d", opts.Iterations, opts.Rounds)
	}

	values := utils.GenerateValues32(opts.Iterations, opts.Seed)
	if err := Verify(values); err != nil {
		return nil, fmt.Errorf("bench: %w", err)
	}

	var results []Result
	samples := make([]float64, opts.Rounds)
	for _, c := range cases() {
		for r := range samples {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			samples[r] = timeRound(c.single, values)
		}
		mean, std := stat.MeanStdDev(samples, nil)
		if len(samples) == 1 {
			std = 0
		}
		results = append(results, Result{
			Name:   c.name,
			Mean:   mean,
			StdDev: std,
			Min:    floats.Min(samples),
		})
	}
	return results, nil
}

// timeRound returns nanoseconds per call of fn over values.
func timeRound(fn func(uint32) uint32, values []uint32) float64 {
	var acc uint32
	start := time.Now()
	for _, x := range values {
		acc ^= fn(x ^ acc&1)
	}
	elapsed := time.Since(start)
	sink ^= acc
	return float64(elapsed.Nanoseconds()) / float64(len(values))
}

// Table renders results with one row per case.
func Table(results []Result) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("case", "mean ns/op", "stddev", "min")
	for _, r := range results {
		t.Row(r.Name, fmt.Sprintf("%.2f", r.Mean), fmt.Sprintf("%.2f", r.StdDev), fmt.Sprintf("%.2f", r.Min))
	}
	return t.Render()
}
