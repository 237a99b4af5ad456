package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"bitpat/cmd"
	"bitpat/internal/config"
	"bitpat/internal/log"
	"bitpat/pkg/build"
)

// main is the entry point for the bit pattern tool.
// The program flow is divided into two phases:
//
// 1. Startup Phase:
//   - Initialize build information
//   - Parse command line arguments
//   - Load the configuration file and environment overrides
//   - Layer explicitly set flags over the file
//
// 2. Command Phase:
//   - Execute the selected subcommand until it finishes or a
//     termination signal arrives
func main() {
	// ==================== STARTUP PHASE ====================

	// Development builds carry no ldflags; that is worth a note, not a failure.
	if err := build.Initialize(); err != nil {
		log.Debugf("build: %v", err)
	}

	// Parse command line arguments
	opts, err := cmd.ParseArgs(os.Args[1:], os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// Help and version output need nothing else
	if opts.Command == "" {
		return
	}

	// Verbose output covers loading the configuration too
	if opts.Verbose {
		log.SetLevel(log.LevelDebug)
	}

	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := opts.Apply(cfg); err != nil {
		log.Fatalf("%v", err)
	}
	log.SetLevel(cfg.Level())

	// ==================== COMMAND PHASE ====================

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, opts, cfg, os.Stdout); err != nil {
		stop()
		log.Fatalf("%s: %v", opts.Command, err)
	}
}
