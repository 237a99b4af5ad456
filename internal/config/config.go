package config

import "bitpat/pkg/bitint"

// Core configuration constants that define the boundaries and defaults
// for the pattern tools.
const (
	// Default values for the command line and file configuration
	DefaultWidth           = 32            // Bits in the target word
	DefaultSpacing         = 1             // One empty bit between payload bits
	DefaultFormat          = FormatBinary  // Binary output
	DefaultGroup           = 4             // Digits per group in binary output
	DefaultColor           = true          // Highlight set bits
	DefaultLogLevel        = "info"        // Quiet unless something goes wrong
	DefaultConfigFile      = "bitpat.yaml" // Searched in the working directory
	DefaultBenchIterations = 1 << 16       // Calls per timed round
	DefaultBenchRounds     = 8             // Timed rounds per implementation
	DefaultCommand         = ""            // No command by default
	DefaultVerbosity       = false         // Quiet operation

	// Limits
	MinWidth       = 1
	MaxWidth       = bitint.MaxWidth
	MaxBenchRounds = 1024
)

// Output formats for values.
const (
	FormatBinary  = "bin"
	FormatHex     = "hex"
	FormatDecimal = "dec"
)

// Options holds what was asked for on the command line. Fields that have a
// file equivalent only override the file when their flag was set.
type Options struct {
	Command    string   // Subcommand to execute
	Args       []string // Positional arguments of the subcommand
	ConfigPath string   // Explicit configuration file

	Width   uint
	Spacing uint
	Format  string

	Trace   bool // Print every dilution step
	Strict  bool // Fail instead of dropping high bits
	Verbose bool // Enable debug logging

	WidthSet   bool
	SpacingSet bool
	FormatSet  bool
}

// NewOptions creates Options with default values.
func NewOptions() *Options {
	return &Options{
		Command: DefaultCommand,
		Width:   DefaultWidth,
		Spacing: DefaultSpacing,
		Format:  DefaultFormat,
		Verbose: DefaultVerbosity,
	}
}

// Apply layers the explicitly set options over cfg and validates the result.
func (o *Options) Apply(cfg *Config) error {
	if o.WidthSet {
		cfg.Pattern.Width = o.Width
	}
	if o.SpacingSet {
		cfg.Pattern.Spacing = o.Spacing
	}
	if o.FormatSet {
		cfg.Render.Format = o.Format
	}
	if o.Verbose {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}
	return cfg.Validate()
}
