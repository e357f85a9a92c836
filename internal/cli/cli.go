// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)
	readQuirkFlags(flags, &opts)
	readOutputFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8vm [options] <program to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions validates option values and parses the list options
func normalizeOptions(opts *options.Program) error {
	if opts.Steps < 0 {
		return fmt.Errorf("invalid step count %d", opts.Steps)
	}
	if opts.InstructionsPerTick <= 0 {
		return fmt.Errorf("invalid instructions per tick %d", opts.InstructionsPerTick)
	}

	keys, err := parseKeys(opts.Keys)
	if err != nil {
		return err
	}
	opts.KeyList = keys

	breakpoints, err := parseBreakpoints(opts.Breakpoints)
	if err != nil {
		return err
	}
	opts.BreakpointList = breakpoints
	return nil
}

// parseKeys parses a comma separated list of hex key numbers.
func parseKeys(s string) ([]int, error) {
	var keys []int
	for _, field := range splitList(s) {
		key, err := strconv.ParseUint(field, 16, 8)
		if err != nil || key >= machine.KeyCount {
			return nil, fmt.Errorf("invalid key '%s', valid keys are 0-F", field)
		}
		keys = append(keys, int(key))
	}
	return keys, nil
}

// parseBreakpoints parses a comma separated list of hex addresses, with an
// optional $ or 0x prefix.
func parseBreakpoints(s string) ([]uint16, error) {
	var addresses []uint16
	for _, field := range splitList(s) {
		trimmed := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(field), "$"), "0x")
		address, err := strconv.ParseUint(trimmed, 16, 16)
		if err != nil || address >= machine.MemorySize {
			return nil, fmt.Errorf("invalid breakpoint address '%s'", field)
		}
		addresses = append(addresses, uint16(address))
	}
	return addresses, nil
}

func splitList(s string) []string {
	var fields []string
	for field := range strings.SplitSeq(s, ",") {
		field = strings.TrimSpace(field)
		if field != "" {
			fields = append(fields, field)
		}
	}
	return fields
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "name of the output file for the listing or state dump, printed on console if no name given")
	flags.BoolVar(&opts.Disasm, "disasm", false, "write a program listing instead of running the program")
	flags.IntVar(&opts.Steps, "steps", 1000, "maximum number of instructions to execute, 0 runs until the program halts")
	flags.IntVar(&opts.InstructionsPerTick, "ipt", runner.DefaultInstructionsPerTick, "instructions executed per 60 Hz timer tick")
	flags.BoolVar(&opts.Realtime, "realtime", false, "pace timer ticks at 60 Hz instead of running as fast as possible")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 picks a random seed")
	flags.StringVar(&opts.Keys, "keys", "", "comma separated hex keys held down during the run, for example 1,A")
	flags.StringVar(&opts.Breakpoints, "break", "", "comma separated hex addresses to stop execution at, for example 200,2A4")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readQuirkFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.BoolVar(&opts.NoLogicReset, "no-logic-reset", false, "do not reset VF after OR, AND and XOR")
	flags.BoolVar(&opts.ShiftVY, "shift-vy", false, "shift instructions read VY instead of VX")
	flags.BoolVar(&opts.NoIndexChange, "no-index-change", false, "register store and load leave I unchanged")
	flags.BoolVar(&opts.KeyRelease, "key-release", false, "key wait completes when the key is released")
}

func readOutputFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output offsets in comments")
	flags.BoolVar(&opts.ZeroBytes, "z", false, "output the trailing zero bytes of the program")
}
