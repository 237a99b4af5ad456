package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"bitpat/internal/bench"
	"bitpat/internal/config"
	"bitpat/internal/log"
	"bitpat/internal/render"
	"bitpat/internal/tui"
	"bitpat/pkg/bitint"
)

// Run executes the subcommand selected in opts with the merged configuration
// cfg, writing results to w.
func Run(ctx context.Context, opts *config.Options, cfg *config.Config, w io.Writer) error {
	width, spacing := cfg.Pattern.Width, cfg.Pattern.Spacing
	r := render.New(w, render.Options{
		Width:  width,
		Format: cfg.Render.Format,
		Color:  cfg.Render.Color,
		Group:  cfg.Render.Group,
	})
	log.Debugf("cmd: %s %v (width %d, spacing %d)", opts.Command, opts.Args, width, spacing)

	switch opts.Command {
	case CommandStep:
		n, err := parseCount(opts.Args[0])
		if err != nil {
			return err
		}
		v, err := bitint.StepWidth(width, n)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, r.Value(v))

	case CommandWave:
		return runWave(w, r, width, opts.Args)

	case CommandDilute:
		return runDilute(w, r, opts, width, spacing)

	case CommandConcentrate:
		s, err := schedules.Schedule(width, spacing)
		if err != nil {
			return err
		}
		values, err := parseValues(opts.Args)
		if err != nil {
			return err
		}
		for i, x := range values {
			fmt.Fprintf(w, "%s -> %s\n", opts.Args[i], r.Value(s.Invert(x)))
		}

	case CommandInterleave:
		return runInterleave(w, r, width, opts.Args)

	case CommandSchedule:
		s, err := schedules.Schedule(width, spacing)
		if err != nil {
			return err
		}
		fmt.Fprint(w, r.Schedule(s))
		log.Debugf("cmd: %s", s)

	case CommandBench:
		results, err := bench.Run(ctx, bench.Options{
			Iterations: cfg.Bench.Iterations,
			Rounds:     cfg.Bench.Rounds,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(w, bench.Table(results))

	case CommandExplore:
		var x uint64
		if len(opts.Args) > 0 {
			var err error
			if x, err = parseValue(opts.Args[0]); err != nil {
				return err
			}
		}
		return tui.Run(ctx, tui.NewExplorer(w, width, spacing, x, cfg.Render.Format))

	default:
		return fmt.Errorf("unknown command %q", opts.Command)
	}
	return nil
}

// schedules is shared by every command run in this process.
var schedules = bitint.NewCache()

func runWave(w io.Writer, r *render.Renderer, width uint, args []string) error {
	counts := make([]uint, len(args))
	for i, arg := range args {
		n, err := parseCount(arg)
		if err != nil {
			return err
		}
		counts[i] = n
	}

	on := counts[0]
	off := on
	if len(counts) > 1 {
		off = counts[1]
	}
	periods := bitint.Repeats(width, on, off)
	if len(counts) > 2 {
		periods = counts[2]
	}

	v, err := bitint.RectangularWaveWidth(width, on, off, periods)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, r.Value(v))
	return nil
}

func runDilute(w io.Writer, r *render.Renderer, opts *config.Options, width, spacing uint) error {
	s, err := schedules.Schedule(width, spacing)
	if err != nil {
		return err
	}
	values, err := parseValues(opts.Args)
	if err != nil {
		return err
	}

	for i, x := range values {
		if opts.Strict {
			if _, err := s.ApplyStrict(x); err != nil {
				return fmt.Errorf("%s: %w", opts.Args[i], err)
			}
		} else if dropped := x &^ s.Sanitize(); dropped != 0 {
			log.Debugf("cmd: %s loses bits %#x at spacing %d", opts.Args[i], dropped, spacing)
		}

		var out uint64
		if opts.Trace {
			fmt.Fprintf(w, "%s\n", opts.Args[i])
			out = s.Trace(x, func(st bitint.TraceStep) {
				fmt.Fprintln(w, r.Step(st))
			})
		} else {
			out = s.Apply(x)
		}
		fmt.Fprintf(w, "%s -> %s\n", opts.Args[i], r.Value(out))
	}
	return nil
}

func runInterleave(w io.Writer, r *render.Renderer, width uint, args []string) error {
	coords, err := parseValues(args)
	if err != nil {
		return err
	}

	key := bitint.Interleave(coords...) & bitint.Ones[uint64](width)

	// Coordinates with more bits than their share of the width come back short.
	back := make([]uint64, len(coords))
	bitint.Deinterleave(key, back)
	for i := range coords {
		if back[i] != coords[i] {
			log.Warnf("cmd: coordinate %s does not fit %d bits of %d dimensions", args[i], width/uint(len(coords)), len(coords))
		}
	}

	fmt.Fprintln(w, r.Value(key))
	return nil
}

// parseValue accepts Go integer literals such as 42, 0x2a, 0b101010 and 1_000.
func parseValue(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return v, nil
}

func parseValues(args []string) ([]uint64, error) {
	values := make([]uint64, len(args))
	for i, arg := range args {
		v, err := parseValue(arg)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func parseCount(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 0, strconv.IntSize)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q: %w", s, err)
	}
	return uint(v), nil
}
