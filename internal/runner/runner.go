// Package runner implements the host loop that drives a CHIP-8 machine frame
// by frame.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/retrogolib/log"
)

// DefaultInstructionsPerTick is the number of instructions executed per
// timer tick when no ratio is configured.
const DefaultInstructionsPerTick = 10

// TickRate is the rate of the delay and sound timers in Hz.
const TickRate = 60

// Config controls the host loop.
type Config struct {
	InstructionsPerTick int  // instructions executed between two timer ticks
	Realtime            bool // pace frames at TickRate instead of running as fast as possible
}

// DefaultConfig returns the default runner configuration.
func DefaultConfig() Config {
	return Config{
		InstructionsPerTick: DefaultInstructionsPerTick,
	}
}

// KeyEvent changes the state of a key between frames.
type KeyEvent struct {
	Key     int
	Pressed bool
}

// Summary describes a finished run.
type Summary struct {
	Frames int    // number of timer ticks
	Steps  int    // number of executed instructions
	Cycles uint64 // machine cycle counter after the run
}

// Runner drives a machine.
type Runner struct {
	logger  *log.Logger
	machine *machine.Machine
	cfg     Config
}

// New returns a runner for the machine.
func New(logger *log.Logger, m *machine.Machine, cfg Config) *Runner {
	if cfg.InstructionsPerTick <= 0 {
		cfg.InstructionsPerTick = DefaultInstructionsPerTick
	}
	return &Runner{
		logger:  logger,
		machine: m,
		cfg:     cfg,
	}
}

// Run starts the machine and executes frames until maxSteps instructions ran,
// the machine halts or is stopped, or the context is canceled. A maxSteps
// value of 0 runs without limit. Key events are applied between frames.
func (r *Runner) Run(ctx context.Context, maxSteps int, events <-chan KeyEvent) (Summary, error) {
	var summary Summary

	if err := r.machine.Start(); err != nil {
		return summary, fmt.Errorf("starting machine: %w", err)
	}
	defer r.machine.Stop()

	r.logger.Info("Running program",
		log.String("source", r.machine.Source()),
		log.Int("instructions_per_tick", r.cfg.InstructionsPerTick))

	var ticker *time.Ticker
	if r.cfg.Realtime {
		ticker = time.NewTicker(time.Second / TickRate)
		defer ticker.Stop()
	}

	err := r.loop(ctx, maxSteps, events, ticker, &summary)
	summary.Cycles = r.machine.Cycles()

	r.logger.Info("Program stopped",
		log.Int("frames", summary.Frames),
		log.Int("steps", summary.Steps),
		log.Int("cycles", int(summary.Cycles)))
	return summary, err
}

func (r *Runner) loop(ctx context.Context, maxSteps int, events <-chan KeyEvent,
	ticker *time.Ticker, summary *Summary) error {

	for r.machine.Running() {
		if err := ctx.Err(); err != nil {
			return err //nolint:wrapcheck // context error is passed through
		}
		r.applyKeyEvents(events)

		count := r.cfg.InstructionsPerTick
		if maxSteps > 0 {
			count = min(count, maxSteps-summary.Steps)
		}

		executed, err := r.machine.StepN(count)
		summary.Steps += executed
		if err != nil {
			return fmt.Errorf("executing instruction: %w", err)
		}

		r.machine.Tick()
		summary.Frames++

		if maxSteps > 0 && summary.Steps >= maxSteps {
			return nil
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err() //nolint:wrapcheck // context error is passed through
			case <-ticker.C:
			}
		}
	}
	return nil
}

// applyKeyEvents applies all pending key events without blocking.
func (r *Runner) applyKeyEvents(events <-chan KeyEvent) {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Pressed {
				r.machine.PressKey(event.Key)
			} else {
				r.machine.ReleaseKey(event.Key)
			}
		default:
			return
		}
	}
}
