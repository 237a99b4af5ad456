// SPDX-License-Identifier: MIT
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"bitpat/internal/log"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the application configuration, loaded from YAML.
type Config struct {
	Debug    bool          `yaml:"debug"`     // Enable debug mode (verbose logging).
	LogLevel string        `yaml:"log_level"` // Logging level (e.g., "debug", "info", "warn", "error").
	Pattern  PatternConfig `yaml:"pattern"`   // Word geometry used by every command.
	Render   RenderConfig  `yaml:"render"`    // How values are printed.
	Bench    BenchConfig   `yaml:"bench"`     // Benchmark command settings.
}

// PatternConfig describes the word the patterns are built for.
type PatternConfig struct {
	Width   uint `yaml:"width"`   // Bits in the word, 1 to 64.
	Spacing uint `yaml:"spacing"` // Empty bits between payload bits when diluting.
}

// RenderConfig controls value output.
type RenderConfig struct {
	Format string `yaml:"format"` // One of "bin", "hex", "dec".
	Color  bool   `yaml:"color"`  // Highlight set bits.
	Group  uint   `yaml:"group"`  // Binary digits per group, 0 for none.
}

// BenchConfig holds settings for the bench command.
type BenchConfig struct {
	Iterations int `yaml:"iterations"` // Calls per timed round.
	Rounds     int `yaml:"rounds"`     // Timed rounds per implementation.
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Debug:    false,
		LogLevel: DefaultLogLevel,
		Pattern: PatternConfig{
			Width:   DefaultWidth,
			Spacing: DefaultSpacing,
		},
		Render: RenderConfig{
			Format: DefaultFormat,
			Color:  DefaultColor,
			Group:  DefaultGroup,
		},
		Bench: BenchConfig{
			Iterations: DefaultBenchIterations,
			Rounds:     DefaultBenchRounds,
		},
	}
}

// LoadConfig loads configuration from the YAML file at path. If path is empty
// it looks for DefaultConfigFile in the working directory and falls back to the
// built-in defaults when there is none. Environment overrides are applied after
// the file, then the result is validated.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			log.Debugf("configuration: no %s found, using defaults", DefaultConfigFile)
			cfg.applyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid default configuration: %w", err)
			}
			return cfg, nil
		}
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	log.Debugf("configuration: loaded %s", path)

	// Apply environment variable overrides AFTER loading from file.
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks every field against its allowed range.
func (c *Config) Validate() error {
	if c.Pattern.Width < MinWidth || c.Pattern.Width > MaxWidth {
		return fmt.Errorf("%w: pattern.width %d not in [%d, %d]", ErrInvalid, c.Pattern.Width, MinWidth, MaxWidth)
	}
	if !slices.Contains([]string{FormatBinary, FormatHex, FormatDecimal}, c.Render.Format) {
		return fmt.Errorf("%w: render.format %q is not one of bin, hex, dec", ErrInvalid, c.Render.Format)
	}
	if c.Render.Group > MaxWidth {
		return fmt.Errorf("%w: render.group %d exceeds %d", ErrInvalid, c.Render.Group, MaxWidth)
	}
	if _, ok := log.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	if c.Bench.Iterations <= 0 {
		return fmt.Errorf("%w: bench.iterations must be positive", ErrInvalid)
	}
	if c.Bench.Rounds <= 0 || c.Bench.Rounds > MaxBenchRounds {
		return fmt.Errorf("%w: bench.rounds %d not in [1, %d]", ErrInvalid, c.Bench.Rounds, MaxBenchRounds)
	}
	return nil
}

// Level returns the effective log level. Debug mode wins over log_level.
func (c *Config) Level() log.LogLevel {
	if c.Debug {
		return log.LevelDebug
	}
	level, _ := log.ParseLevel(c.LogLevel)
	return level
}

// applyEnvOverrides reads ENV_* variables. Values that do not parse are
// ignored with a warning.
func (c *Config) applyEnvOverrides() {
	// ENV_DEBUG
	if val, ok := os.LookupEnv("ENV_DEBUG"); ok {
		if bVal, err := strconv.ParseBool(val); err == nil {
			c.Debug = bVal
			log.Debugf("configuration: overriding debug from env: %v", bVal)
		} else {
			log.Warnf("configuration: ignoring ENV_DEBUG=%q: %v", val, err)
		}
	}
	// ENV_LOG_LEVEL
	if val, ok := os.LookupEnv("ENV_LOG_LEVEL"); ok {
		c.LogLevel = val
		log.Debugf("configuration: overriding log_level from env: %s", val)
	}

	// ENV_WIDTH, ENV_SPACING
	// These shape every pattern.
	if val, ok := os.LookupEnv("ENV_WIDTH"); ok {
		if n, err := strconv.ParseUint(val, 0, 0); err == nil {
			c.Pattern.Width = uint(n)
			log.Debugf("configuration: overriding pattern.width from env: %d", n)
		} else {
			log.Warnf("configuration: ignoring ENV_WIDTH=%q: %v", val, err)
		}
	}
	if val, ok := os.LookupEnv("ENV_SPACING"); ok {
		if n, err := strconv.ParseUint(val, 0, 0); err == nil {
			c.Pattern.Spacing = uint(n)
			log.Debugf("configuration: overriding pattern.spacing from env: %d", n)
		} else {
			log.Warnf("configuration: ignoring ENV_SPACING=%q: %v", val, err)
		}
	}

	// ENV_FORMAT
	if val, ok := os.LookupEnv("ENV_FORMAT"); ok {
		c.Render.Format = val
		log.Debugf("configuration: overriding render.format from env: %s", val)
	}
}
