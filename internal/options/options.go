// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string // program image to load
	Output string // output file for the listing or state dump, stdout if empty
}

// Flags contains behavior options.
type Flags struct {
	Disasm              bool   // write a program listing instead of running the program
	Steps               int    // maximum number of instructions to execute, 0 for no limit
	InstructionsPerTick int    // instructions executed per timer tick
	Realtime            bool   // pace timer ticks at 60 Hz
	Seed                uint64 // random number generator seed, 0 for a random seed
	Keys                string // comma separated hex keys held down during the run
	Breakpoints         string // comma separated hex addresses to stop at
	Debug               bool
	Quiet               bool
}

// QuirkFlags contains the behavior toggles of the interpreter.
type QuirkFlags struct {
	NoLogicReset  bool // OR/AND/XOR keep VF
	ShiftVY       bool // shifts read VY instead of VX
	NoIndexChange bool // FX55/FX65 keep I unchanged
	KeyRelease    bool // FX0A completes on key release
}

// OutputFlags contains listing formatting options.
type OutputFlags struct {
	NoHexComments bool
	NoOffsets     bool
	ZeroBytes     bool
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	QuirkFlags
	OutputFlags

	KeyList        []int    // parsed Keys
	BreakpointList []uint16 // parsed Breakpoints
}
