// SPDX-License-Identifier: MIT
//
// Package render formats pattern values and dilution schedules for the
// terminal. Set bits are highlighted with lipgloss when color is enabled and
// the output supports it.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"bitpat/pkg/bitint"

	"github.com/charmbracelet/lipgloss"
)

// Output formats.
const (
	Binary  = "bin"
	Hex     = "hex"
	Decimal = "dec"
)

// Options controls how values are printed.
type Options struct {
	Width  uint   // Digits cover this many bits
	Format string // Binary, Hex or Decimal
	Color  bool   // Highlight set bits
	Group  uint   // Binary digits per group, 0 for none
}

// Renderer formats values for one output.
type Renderer struct {
	opts   Options
	one    lipgloss.Style
	zero   lipgloss.Style
	header lipgloss.Style
}

// New creates a Renderer for output written to w. The color profile is
// detected from w, so a buffer or pipe gets plain text.
func New(w io.Writer, opts Options) *Renderer {
	if opts.Width == 0 || opts.Width > bitint.MaxWidth {
		opts.Width = bitint.MaxWidth
	}
	lr := lipgloss.NewRenderer(w)
	return &Renderer{
		opts:   opts,
		one:    lr.NewStyle().Foreground(lipgloss.Color("#25A065")).Bold(true),
		zero:   lr.NewStyle().Faint(true),
		header: lr.NewStyle().Foreground(lipgloss.Color("#FFFDF5")).Background(lipgloss.Color("#25A065")).Padding(0, 1).Bold(true),
	}
}

// Width returns the number of bits values are printed with.
func (r *Renderer) Width() uint { return r.opts.Width }

// Value formats x in the configured format, truncated to the configured width.
func (r *Renderer) Value(x uint64) string {
	x &= bitint.Ones[uint64](r.opts.Width)
	switch r.opts.Format {
	case Hex:
		digits := int(bitint.CeilDiv(r.opts.Width, 4))
		return fmt.Sprintf("0x%0*x", digits, x)
	case Decimal:
		return strconv.FormatUint(x, 10)
	default:
		return r.binary(x)
	}
}

// binary prints every bit from the most significant down, grouped from the
// least significant end.
func (r *Renderer) binary(x uint64) string {
	var sb strings.Builder
	for i := int(r.opts.Width) - 1; i >= 0; i-- {
		bit := x>>uint(i)&1 == 1
		switch {
		case !r.opts.Color && bit:
			sb.WriteByte('1')
		case !r.opts.Color:
			sb.WriteByte('0')
		case bit:
			sb.WriteString(r.one.Render("1"))
		default:
			sb.WriteString(r.zero.Render("0"))
		}
		if g := r.opts.Group; g > 0 && i > 0 && uint(i)%g == 0 {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// Header renders a title line.
func (r *Renderer) Header(title string) string {
	if !r.opts.Color {
		return title
	}
	return r.header.Render(title)
}

// Step formats one line of a dilution trace.
func (r *Renderer) Step(st bitint.TraceStep) string {
	if st.Index == 0 {
		return fmt.Sprintf("[%d] sanitize          %s", st.Index, r.Value(st.Out))
	}
	return fmt.Sprintf("[%d] block %-2d shift %-3d %s", st.Index, st.Round.Block, st.Round.Shift, r.Value(st.Out))
}

// Schedule formats a schedule with one line per round.
func (r *Renderer) Schedule(s *bitint.Schedule) string {
	var sb strings.Builder
	sb.WriteString(r.Header(fmt.Sprintf("width %d spacing %d", s.Width(), s.Spacing())))
	fmt.Fprintf(&sb, "\nallowed bits %d, %d steps\n", s.AllowedBits(), s.Steps())
	fmt.Fprintf(&sb, "sanitize               %s\n", r.Value(s.Sanitize()))
	for i, round := range s.Rounds() {
		fmt.Fprintf(&sb, "round %d block %-2d shift %-3d %s\n", i+1, round.Block, round.Shift, r.Value(round.Mask))
	}
	return sb.String()
}
