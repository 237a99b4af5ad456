package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"bitpat/internal/config"
	"bitpat/pkg/bitint"

	"github.com/stretchr/testify/require"
)

func testConfig(width, spacing uint, format string, group uint) *config.Config {
	cfg := config.Default()
	cfg.Pattern.Width = width
	cfg.Pattern.Spacing = spacing
	cfg.Render.Format = format
	cfg.Render.Color = false
	cfg.Render.Group = group
	cfg.Bench.Iterations = 64
	cfg.Bench.Rounds = 2
	return cfg
}

func run(t *testing.T, cfg *config.Config, opts *config.Options) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := Run(context.Background(), opts, cfg, &out)
	return out.String(), err
}

func command(name string, args ...string) *config.Options {
	opts := config.NewOptions()
	opts.Command = name
	opts.Args = args
	return opts
}

func TestRun(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
		opts *config.Options
		want string
	}{
		{"step", testConfig(8, 1, config.FormatBinary, 4), command(CommandStep, "3"), "0000_0111\n"},
		{"step saturates", testConfig(64, 1, config.FormatHex, 0), command(CommandStep, "70"), "0xffffffffffffffff\n"},
		{"step zero", testConfig(12, 1, config.FormatDecimal, 0), command(CommandStep, "0"), "0\n"},
		{"wave", testConfig(16, 1, config.FormatHex, 0), command(CommandWave, "3", "4", "2"), "0x0387\n"},
		{"wave fills", testConfig(32, 1, config.FormatHex, 0), command(CommandWave, "1"), "0x55555555\n"},
		{"wave off", testConfig(32, 1, config.FormatHex, 0), command(CommandWave, "8", "16"), "0xff0000ff\n"},
		{
			"dilute",
			testConfig(8, 4, config.FormatBinary, 0),
			command(CommandDilute, "0b111", "0b11"),
			"0b111 -> 00100001\n0b11 -> 00100001\n",
		},
		{
			"dilute matches part1by2",
			testConfig(32, 2, config.FormatHex, 0),
			command(CommandDilute, "0x3ff"),
			"0x3ff -> 0x09249249\n",
		},
		{
			"concentrate",
			testConfig(32, 1, config.FormatHex, 0),
			command(CommandConcentrate, "0x55555555", "0xAAAAAAAA"),
			"0x55555555 -> 0x0000ffff\n0xAAAAAAAA -> 0x00000000\n",
		},
		{
			"interleave",
			testConfig(8, 1, config.FormatBinary, 0),
			command(CommandInterleave, "0b11", "0b01"),
			"00000111\n",
		},
		{
			"interleave three",
			testConfig(9, 0, config.FormatBinary, 0),
			command(CommandInterleave, "1", "2", "4"),
			"100010001\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.cfg, tt.opts)
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

func TestRunDiluteTrace(t *testing.T) {
	opts := command(CommandDilute, "0xF")
	opts.Trace = true

	out, err := run(t, testConfig(16, 3, config.FormatHex, 0), opts)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Equal(t, []string{
		"0xF",
		"[0] sanitize          0x000f",
		"[1] block 2  shift 6   0x0303",
		"[2] block 1  shift 3   0x1111",
		"0xF -> 0x1111",
	}, lines)
}

func TestRunDiluteStrict(t *testing.T) {
	opts := command(CommandDilute, "0b11", "0b111")
	opts.Strict = true

	out, err := run(t, testConfig(8, 4, config.FormatBinary, 0), opts)
	require.ErrorIs(t, err, bitint.ErrTruncated)
	require.ErrorContains(t, err, "0b111")
	require.Equal(t, "0b11 -> 00100001\n", out)
}

func TestRunSchedule(t *testing.T) {
	out, err := run(t, testConfig(32, 2, config.FormatHex, 0), command(CommandSchedule))
	require.NoError(t, err)
	require.Contains(t, out, "width 32 spacing 2")
	require.Contains(t, out, "allowed bits 11, 5 steps")
	require.Contains(t, out, "0x49249249")
}

func TestRunBench(t *testing.T) {
	out, err := run(t, testConfig(32, 1, config.FormatBinary, 0), command(CommandBench))
	require.NoError(t, err)
	require.Contains(t, out, "Dilute/1")
	require.Contains(t, out, "Part1By2")
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
		opts *config.Options
		msg  string
	}{
		{"unknown command", testConfig(8, 1, config.FormatBinary, 0), command("frobnicate"), `unknown command "frobnicate"`},
		{"bad value", testConfig(8, 1, config.FormatBinary, 0), command(CommandDilute, "0xZZ"), `invalid value "0xZZ"`},
		{"negative value", testConfig(8, 1, config.FormatBinary, 0), command(CommandConcentrate, "-1"), `invalid value "-1"`},
		{"bad count", testConfig(8, 1, config.FormatBinary, 0), command(CommandStep, "three"), `invalid count "three"`},
		{"bad wave count", testConfig(8, 1, config.FormatBinary, 0), command(CommandWave, "1", "x"), `invalid count "x"`},
		{"bad coordinate", testConfig(8, 1, config.FormatBinary, 0), command(CommandInterleave, "1", "y"), `invalid value "y"`},
		{"bad explore input", testConfig(8, 1, config.FormatBinary, 0), command(CommandExplore, "nope"), `invalid value "nope"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.cfg, tt.opts)
			require.ErrorContains(t, err, tt.msg)
		})
	}
}

// Width is validated by the configuration, but the library still refuses
// widths it cannot hold.
func TestRunInvalidWidth(t *testing.T) {
	cfg := testConfig(8, 1, config.FormatBinary, 0)
	cfg.Pattern.Width = 0

	_, err := run(t, cfg, command(CommandStep, "1"))
	require.ErrorIs(t, err, bitint.ErrWidth)

	_, err = run(t, cfg, command(CommandSchedule))
	require.ErrorIs(t, err, bitint.ErrWidth)
}
