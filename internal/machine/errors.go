package machine

import "errors"

var (
	// ErrImageTooLarge is returned when a program image does not fit into memory.
	ErrImageTooLarge = errors.New("program image too large")
	// ErrNoImage is returned when reloading a machine that never loaded an image.
	ErrNoImage = errors.New("no program image loaded")

	// ErrStackOverflow is the fault of a call with a full stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is the fault of a return with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrUnknownOpcode is the fault of an instruction word without semantics.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrHalted is returned when stepping or starting a halted machine.
	ErrHalted = errors.New("machine is halted")
	// ErrOutOfRange is returned by debugger writes to invalid addresses or registers.
	ErrOutOfRange = errors.New("out of range")
)
