package machine

import (
	"github.com/retroenv/chip8vm/internal/opcode"
	"github.com/retroenv/retrogolib/log"
)

// Step fetches, decodes and executes the instruction at the program counter.
// It returns the execution fault that halted the machine, or ErrHalted
// without changing any state if the machine was already halted.
func (m *Machine) Step() error {
	if m.halted {
		return ErrHalted
	}

	address := m.pc
	ins := opcode.Decode(m.ReadOpcode(address))

	if err := m.execute(ins); err != nil {
		m.halt(address, ins, err)
		return err
	}
	m.pc &= addressMask

	m.cycles++
	return nil
}

// StepN executes up to count instructions and stops early when the machine
// halts. It returns the number of instructions executed and the fault that
// halted the machine, if any.
func (m *Machine) StepN(count int) (int, error) {
	if count <= 0 {
		return 0, nil
	}
	for executed := range count {
		if err := m.Step(); err != nil {
			return executed, err
		}
	}
	return count, nil
}

// halt transitions the machine into the terminal halted state.
func (m *Machine) halt(address uint16, ins opcode.Instruction, err error) {
	m.halted = true
	m.running = false
	m.fault = err

	m.logger.Warn("Machine halted",
		log.Hex("address", address),
		log.Hex("opcode", ins.Word),
		log.Err(err))
}

// Start marks the machine as running. The host loop polls Running and drives
// Step, Start does not execute anything itself.
func (m *Machine) Start() error {
	if m.halted {
		return ErrHalted
	}
	m.running = true
	return nil
}

// Stop marks the machine as not running.
func (m *Machine) Stop() {
	m.running = false
}

// Running returns whether the machine is marked as running.
func (m *Machine) Running() bool {
	return m.running
}

// Halted returns whether the machine stopped on an execution fault.
func (m *Machine) Halted() bool {
	return m.halted
}

// Fault returns the execution fault that halted the machine, or nil.
func (m *Machine) Fault() error {
	return m.fault
}

// Cycles returns the number of instructions executed without a fault.
func (m *Machine) Cycles() uint64 {
	return m.cycles
}
