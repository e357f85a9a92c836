// Package debugger implements breakpoints, traced stepping and state
// inspection on top of a CHIP-8 machine.
package debugger

import (
	"context"
	"errors"
	"slices"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// StopReason describes why Run returned.
type StopReason int

// Stop reasons of Run.
const (
	StopCount      StopReason = iota // the step limit was reached
	StopBreakpoint                   // a breakpoint was reached
	StopHalted                       // the machine halted on a fault
	StopCanceled                     // the context was canceled
)

func (r StopReason) String() string {
	switch r {
	case StopCount:
		return "step limit"
	case StopBreakpoint:
		return "breakpoint"
	case StopHalted:
		return "halted"
	case StopCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Result is the outcome of Run.
type Result struct {
	Reason   StopReason
	Executed int
	PC       uint16
}

// Debugger controls the execution of a machine.
type Debugger struct {
	logger  *log.Logger
	machine *machine.Machine

	breakpoints []uint16 // sorted
	lookup      set.Set[uint16]
}

// New returns a debugger for the machine.
func New(logger *log.Logger, m *machine.Machine) *Debugger {
	return &Debugger{
		logger:  logger,
		machine: m,
		lookup:  set.New[uint16](),
	}
}

// AddBreakpoint adds a breakpoint at the address.
func (d *Debugger) AddBreakpoint(address uint16) {
	if d.lookup.Contains(address) {
		return
	}

	index, _ := slices.BinarySearch(d.breakpoints, address)
	d.breakpoints = slices.Insert(d.breakpoints, index, address)
	d.lookup.Add(address)
}

// RemoveBreakpoint removes the breakpoint at the address and returns whether
// it existed.
func (d *Debugger) RemoveBreakpoint(address uint16) bool {
	index, found := slices.BinarySearch(d.breakpoints, address)
	if !found {
		return false
	}

	d.breakpoints = slices.Delete(d.breakpoints, index, index+1)
	d.lookup = set.New[uint16]()
	for _, bp := range d.breakpoints {
		d.lookup.Add(bp)
	}
	return true
}

// ClearBreakpoints removes all breakpoints.
func (d *Debugger) ClearBreakpoints() {
	d.breakpoints = nil
	d.lookup = set.New[uint16]()
}

// Breakpoints returns the breakpoint addresses in ascending order.
func (d *Debugger) Breakpoints() []uint16 {
	return slices.Clone(d.breakpoints)
}

// IsBreakpoint returns whether a breakpoint is set at the address.
func (d *Debugger) IsBreakpoint(address uint16) bool {
	return d.lookup.Contains(address)
}

// Step executes a single instruction and traces it.
func (d *Debugger) Step() error {
	pc := d.machine.PC()
	d.logger.Debug("Step",
		log.Hex("pc", pc),
		log.String("instruction", d.machine.Disassemble(pc)))

	if err := d.machine.Step(); err != nil {
		return err
	}
	return nil
}

// Run executes up to limit instructions. It stops before executing an
// instruction at a breakpoint address, a breakpoint at the starting address
// is stepped over so that Run can continue from a breakpoint.
func (d *Debugger) Run(ctx context.Context, limit int) (Result, error) {
	result := Result{Reason: StopCount}

	for result.Executed < limit {
		if err := ctx.Err(); err != nil {
			result.Reason = StopCanceled
			break
		}

		pc := d.machine.PC()
		if result.Executed > 0 && d.lookup.Contains(pc) {
			result.Reason = StopBreakpoint
			d.logger.Info("Breakpoint reached", log.Hex("address", pc))
			break
		}

		if err := d.Step(); err != nil {
			result.Reason = StopHalted
			result.PC = d.machine.PC()
			if errors.Is(err, machine.ErrHalted) {
				return result, nil
			}
			return result, err
		}
		result.Executed++
	}

	result.PC = d.machine.PC()
	return result, nil
}
