// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/chip8vm/internal/listing"
	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// MachineConfig returns the machine configuration selected by the options.
func MachineConfig(opts options.Program) machine.Config {
	cfg := machine.DefaultConfig()
	cfg.Seed = opts.Seed
	cfg.Quirks.LogicResetsVF = !opts.NoLogicReset
	cfg.Quirks.ShiftUsesVY = opts.ShiftVY
	cfg.Quirks.LoadStoreIncrementsI = !opts.NoIndexChange
	cfg.Quirks.KeyWaitOnRelease = opts.KeyRelease
	return cfg
}

// RunnerConfig returns the host loop configuration selected by the options.
func RunnerConfig(opts options.Program) runner.Config {
	return runner.Config{
		InstructionsPerTick: opts.InstructionsPerTick,
		Realtime:            opts.Realtime,
	}
}

// ListingOptions returns the listing options selected by the options.
func ListingOptions(opts options.Program) listing.Options {
	listingOpts := listing.NewOptions()
	// Apply inverse logic for hex comments and offsets
	listingOpts.HexComments = !opts.NoHexComments
	listingOpts.OffsetComments = !opts.NoOffsets
	listingOpts.ZeroBytes = opts.ZeroBytes
	return listingOpts
}
