package debugger

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8vm/internal/machine"
)

// State is a snapshot of the machine state for user interfaces.
type State struct {
	PC         uint16
	Index      uint16
	Registers  [machine.RegisterCount]byte
	Stack      []uint16 // return addresses in use, oldest first
	DelayTimer byte
	SoundTimer byte
	Cycles     uint64
	Running    bool
	Halted     bool
	Fault      error
	Next       string // disassembly of the instruction at PC
}

// Snapshot returns the current state of the machine.
func (d *Debugger) Snapshot() State {
	m := d.machine

	state := State{
		PC:         m.PC(),
		Index:      m.Index(),
		Registers:  m.Registers(),
		Stack:      make([]uint16, m.SP()),
		DelayTimer: m.DelayTimer(),
		SoundTimer: m.SoundTimer(),
		Cycles:     m.Cycles(),
		Running:    m.Running(),
		Halted:     m.Halted(),
		Fault:      m.Fault(),
		Next:       m.Disassemble(m.PC()),
	}
	for i := range state.Stack {
		state.Stack[i] = m.Stack(i)
	}
	return state
}

// WriteState writes a human readable dump of the machine state.
func (d *Debugger) WriteState(w io.Writer) error {
	s := d.Snapshot()

	var buf strings.Builder
	fmt.Fprintf(&buf, "PC=$%03X I=$%03X DT=%d ST=%d cycles=%d\n", s.PC, s.Index, s.DelayTimer, s.SoundTimer, s.Cycles)
	for i, v := range s.Registers {
		fmt.Fprintf(&buf, "V%X=$%02X", i, v)
		if i%8 == 7 {
			buf.WriteByte('\n')
		} else {
			buf.WriteByte(' ')
		}
	}

	buf.WriteString("stack:")
	for _, address := range s.Stack {
		fmt.Fprintf(&buf, " $%03X", address)
	}
	buf.WriteByte('\n')

	switch {
	case s.Halted:
		fmt.Fprintf(&buf, "halted: %v\n", s.Fault)
	default:
		fmt.Fprintf(&buf, "next: %s\n", s.Next)
	}

	if _, err := io.WriteString(w, buf.String()); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}

// WriteMemory writes a hex dump of count bytes starting at the address.
func (d *Debugger) WriteMemory(w io.Writer, address, count uint16) error {
	var buf strings.Builder
	for i := range count {
		a := address + i
		if int(a) >= machine.MemorySize {
			break
		}

		switch {
		case i == 0:
			fmt.Fprintf(&buf, "$%03X:", a)
		case i%16 == 0:
			fmt.Fprintf(&buf, "\n$%03X:", a)
		}
		fmt.Fprintf(&buf, " %02X", d.machine.ReadMemory(a))
	}
	buf.WriteByte('\n')

	if _, err := io.WriteString(w, buf.String()); err != nil {
		return fmt.Errorf("writing memory dump: %w", err)
	}
	return nil
}
