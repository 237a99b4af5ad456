package cmd

import (
	"io"

	"bitpat/internal/config"
	"bitpat/pkg/build"

	"github.com/spf13/cobra"
)

// Subcommands.
const (
	CommandStep        = "step"
	CommandWave        = "wave"
	CommandDilute      = "dilute"
	CommandConcentrate = "concentrate"
	CommandInterleave  = "interleave"
	CommandSchedule    = "schedule"
	CommandBench       = "bench"
	CommandExplore     = "explore"
)

// ParseArgs parses the command line into Options. Help and version requests
// are answered on out and leave Options.Command empty.
func ParseArgs(args []string, out io.Writer) (*config.Options, error) {
	buildInfo := build.GetBuildFlags()
	options := config.NewOptions()

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name,
		Short:         buildInfo.Description,
		Version:       buildInfo.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetVersionTemplate(buildInfo.String() + "\n")

	// Display help message
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// selects returns a Run function that records the subcommand.
	selects := func(name string) func(*cobra.Command, []string) {
		return func(cmd *cobra.Command, args []string) {
			options.Command = name
			options.Args = args
		}
	}

	// Pattern commands
	rootCmd.AddCommand(&cobra.Command{
		Use:   "step <n>",
		Short: "Print the value with the lowest n bits set",
		Args:  cobra.ExactArgs(1),
		Run:   selects(CommandStep),
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "wave <on> [off] [periods]",
		Short: "Print a rectangular wave of on set bits and off clear bits",
		Long: "Print periods repetitions of on set bits followed by off clear bits, starting at bit 0.\n" +
			"off defaults to on and periods defaults to as many as the width holds.",
		Args: cobra.RangeArgs(1, 3),
		Run:  selects(CommandWave),
	})

	// Dilution commands
	diluteCmd := &cobra.Command{
		Use:   "dilute <x>...",
		Short: "Spread the bits of each value apart by the spacing",
		Args:  cobra.MinimumNArgs(1),
		Run:   selects(CommandDilute),
	}
	diluteCmd.Flags().BoolVarP(&options.Trace, "trace", "t", false,
		"Print the value after every step of the schedule")
	diluteCmd.Flags().BoolVar(&options.Strict, "strict", false,
		"Fail when a value has more bits than fit the width")
	rootCmd.AddCommand(diluteCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "concentrate <x>...",
		Short: "Gather every (spacing+1)-th bit of each value back together",
		Args:  cobra.MinimumNArgs(1),
		Run:   selects(CommandConcentrate),
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "interleave <x> <y> [z...]",
		Short: "Print the Morton key of the coordinates",
		Args:  cobra.MinimumNArgs(2),
		Run:   selects(CommandInterleave),
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "schedule",
		Short: "Print the dilution schedule for the width and spacing",
		Args:  cobra.NoArgs,
		Run:   selects(CommandSchedule),
	})

	// Tools
	rootCmd.AddCommand(&cobra.Command{
		Use:   "bench",
		Short: "Time dilution against the hand-written magic constant routines",
		Args:  cobra.NoArgs,
		Run:   selects(CommandBench),
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "explore [x]",
		Short: "Step through dilution schedules interactively",
		Args:  cobra.MaximumNArgs(1),
		Run:   selects(CommandExplore),
	})

	// Configuration
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&options.ConfigPath, "config", "c", "",
		"Configuration file. Default is "+config.DefaultConfigFile+" if present")

	// Pattern geometry
	flags.UintVarP(&options.Width, "width", "w", config.DefaultWidth,
		"Width of the word in bits (1-64)")
	flags.UintVarP(&options.Spacing, "spacing", "s", config.DefaultSpacing,
		"Number of clear bits between diluted bits")
	flags.StringVarP(&options.Format, "format", "f", config.DefaultFormat,
		"Output format: bin, hex or dec")

	// Debug Configuration
	flags.BoolVarP(&options.Verbose, "verbose", "v", config.DefaultVerbosity,
		"Show verbose output")

	// Execute the CLI. A nil slice would make cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}

	options.WidthSet = flags.Changed("width")
	options.SpacingSet = flags.Changed("spacing")
	options.FormatSet = flags.Changed("format")

	return options, nil
}
