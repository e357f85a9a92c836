package machine

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/disasm"
)

// Memory returns a copy of the memory.
func (m *Machine) Memory() [MemorySize]byte {
	return m.memory
}

// ReadMemory returns the byte at the address, 0 for addresses outside of memory.
func (m *Machine) ReadMemory(address uint16) byte {
	if int(address) >= MemorySize {
		return 0
	}
	return m.memory[address]
}

// ReadOpcode returns the big endian instruction word at the address.
func (m *Machine) ReadOpcode(address uint16) uint16 {
	hi := m.memory[address&addressMask]
	lo := m.memory[(address+1)&addressMask]
	return uint16(hi)<<8 | uint16(lo)
}

// WriteMemory sets the byte at the address. It is intended for debugger
// tooling, programs modify memory only through instructions.
func (m *Machine) WriteMemory(address uint16, value byte) error {
	if int(address) >= MemorySize {
		return fmt.Errorf("%w: address $%04X", ErrOutOfRange, address)
	}
	m.memory[address] = value
	return nil
}

// Display returns a copy of the framebuffer, indexed by y*DisplayWidth + x.
func (m *Machine) Display() [DisplaySize]bool {
	return m.display
}

// Pixel returns whether the pixel at the coordinate is set, false for
// coordinates outside of the display.
func (m *Machine) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return m.display[y*DisplayWidth+x]
}

// ShouldDraw returns whether the display changed since the last call and
// clears the flag.
func (m *Machine) ShouldDraw() bool {
	redraw := m.redraw
	m.redraw = false
	return redraw
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// Index returns the index register I.
func (m *Machine) Index() uint16 {
	return m.i
}

// Register returns the value of register Vn, 0 for invalid registers.
func (m *Machine) Register(n int) byte {
	if n < 0 || n >= RegisterCount {
		return 0
	}
	return m.v[n]
}

// Registers returns a copy of the register file.
func (m *Machine) Registers() [RegisterCount]byte {
	return m.v
}

// SetRegister sets register Vn. It is intended for debugger tooling.
func (m *Machine) SetRegister(n int, value byte) error {
	if n < 0 || n >= RegisterCount {
		return fmt.Errorf("%w: register %d", ErrOutOfRange, n)
	}
	m.v[n] = value
	return nil
}

// SP returns the number of return addresses on the stack.
func (m *Machine) SP() uint8 {
	return m.sp
}

// Stack returns the return address saved at the stack depth, 0 for depths
// outside of the stack.
func (m *Machine) Stack(depth int) uint16 {
	if depth < 0 || depth >= StackDepth {
		return 0
	}
	return m.stack[depth]
}

// Disassemble returns the mnemonic of the instruction at the address. It does
// not depend on the program counter.
func (m *Machine) Disassemble(address uint16) string {
	return disasm.At(m.memory[:], address)
}
