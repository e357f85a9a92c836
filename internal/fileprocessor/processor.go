// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/debugger"
	"github.com/retroenv/chip8vm/internal/listing"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile loads the program file and either writes its listing or runs
// it and writes the final machine state.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	image, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closer, ok := writer.(io.Closer); ok && writer != os.Stdout {
			_ = closer.Close()
		}
	}()

	return ProcessImage(ctx, logger, opts, image, writer)
}

// ProcessImage processes an already loaded program image.
func ProcessImage(ctx context.Context, logger *log.Logger, opts options.Program, image []byte, writer io.Writer) error {
	if opts.Disasm {
		if !opts.Quiet {
			logger.Info("Writing program listing", log.String("file", opts.Input), log.Int("size", len(image)))
		}
		if err := listing.New(writer, config.ListingOptions(opts)).Write(opts.Input, image); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
		return nil
	}

	m := machine.New(logger, config.MachineConfig(opts))
	if err := m.Load(opts.Input, image); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	var keys [machine.KeyCount]bool
	for _, key := range opts.KeyList {
		if key >= 0 && key < machine.KeyCount {
			keys[key] = true
		}
	}
	m.SetKeys(keys)

	dbg := debugger.New(logger, m)
	runErr := run(ctx, logger, opts, m, dbg)
	if errors.Is(runErr, context.Canceled) {
		return runErr
	}

	if err := dbg.WriteState(writer); err != nil {
		return fmt.Errorf("writing machine state: %w", err)
	}
	return runErr
}

// run executes the program, under debugger control when breakpoints are set.
func run(ctx context.Context, logger *log.Logger, opts options.Program, m *machine.Machine, dbg *debugger.Debugger) error {
	if len(opts.BreakpointList) == 0 {
		r := runner.New(logger, m, config.RunnerConfig(opts))
		if _, err := r.Run(ctx, opts.Steps, nil); err != nil {
			return fmt.Errorf("running program: %w", err)
		}
		return nil
	}

	for _, address := range opts.BreakpointList {
		dbg.AddBreakpoint(address)
	}

	limit := opts.Steps
	if limit == 0 {
		limit = math.MaxInt
	}

	result, err := dbg.Run(ctx, limit)
	logger.Info("Execution stopped",
		log.Stringer("reason", result.Reason),
		log.Hex("pc", result.PC),
		log.Int("steps", result.Executed))
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	if result.Reason == debugger.StopCanceled {
		return fmt.Errorf("running program: %w", ctx.Err())
	}
	return nil
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("chip8vm - "+strings.ToUpper(string(arch.CHIP8System))+" virtual machine",
		log.String("version", buildinfo.Version(version, commit, date)))
}
