package machine

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/opcode"
)

// flag is the register that receives carry, borrow, shift and collision flags.
const flag = 0xF

// execute applies the semantics of a decoded instruction. The program counter
// still points at the instruction and is advanced here, Step wraps it into
// memory afterwards.
func (m *Machine) execute(ins opcode.Instruction) error {
	x, y := ins.X, ins.Y

	switch ins.Kind {
	case opcode.ClearScreen:
		m.display = [DisplaySize]bool{}
		m.redraw = true

	case opcode.Return:
		if m.sp == 0 {
			return ErrStackUnderflow
		}
		m.sp--
		m.pc = m.stack[m.sp]
		return nil

	case opcode.Jump:
		m.pc = ins.NNN
		return nil

	case opcode.Call:
		if int(m.sp) >= StackDepth {
			return ErrStackOverflow
		}
		m.stack[m.sp] = (m.pc + opcode.Size) & addressMask
		m.sp++
		m.pc = ins.NNN
		return nil

	case opcode.JumpOffset:
		m.pc = ins.NNN + uint16(m.v[0])
		return nil

	case opcode.SkipEqualImm:
		m.skipIf(m.v[x] == ins.NN)
	case opcode.SkipNotEqualImm:
		m.skipIf(m.v[x] != ins.NN)
	case opcode.SkipEqualReg:
		m.skipIf(m.v[x] == m.v[y])
	case opcode.SkipNotEqualReg:
		m.skipIf(m.v[x] != m.v[y])
	case opcode.SkipKeyPressed:
		m.skipIf(m.keyDown(m.v[x]))
	case opcode.SkipKeyNotPressed:
		m.skipIf(!m.keyDown(m.v[x]))

	case opcode.LoadImm:
		m.v[x] = ins.NN
	case opcode.AddImm:
		m.v[x] += ins.NN

	case opcode.Move, opcode.Or, opcode.And, opcode.Xor, opcode.AddReg,
		opcode.Sub, opcode.ShiftRight, opcode.SubNeg, opcode.ShiftLeft:
		m.alu(ins.Kind, x, y)

	case opcode.LoadIndex:
		m.i = ins.NNN
	case opcode.Random:
		m.v[x] = byte(m.rng.UintN(256)) & ins.NN
	case opcode.Draw:
		m.draw(m.v[x], m.v[y], ins.N)

	case opcode.LoadDelay:
		m.v[x] = m.delayTimer
	case opcode.WaitKey:
		m.waitKey(x)
	case opcode.SetDelay:
		m.delayTimer = m.v[x]
	case opcode.SetSound:
		m.soundTimer = m.v[x]
	case opcode.AddIndex:
		m.i += uint16(m.v[x])
	case opcode.FontAddress:
		m.i = FontAddress + uint16(m.v[x]&0x0F)*GlyphSize
	case opcode.StoreBCD:
		value := m.v[x]
		m.memory[m.i&addressMask] = value / 100
		m.memory[(m.i+1)&addressMask] = value / 10 % 10
		m.memory[(m.i+2)&addressMask] = value % 10
	case opcode.StoreRegisters:
		for r := uint16(0); r <= uint16(x); r++ {
			m.memory[(m.i+r)&addressMask] = m.v[r]
		}
		m.advanceIndex(x)
	case opcode.LoadRegisters:
		for r := uint16(0); r <= uint16(x); r++ {
			m.v[r] = m.memory[(m.i+r)&addressMask]
		}
		m.advanceIndex(x)

	default:
		return fmt.Errorf("%w: $%04X at $%03X", ErrUnknownOpcode, ins.Word, m.pc)
	}

	m.pc += opcode.Size
	return nil
}

// skipIf skips the next instruction when the condition holds. The base
// advance of the executed instruction is applied by execute.
func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += opcode.Size
	}
}

// alu executes the register to register operations of the 8XYN family.
// The flag is written after the result so that it wins when x is VF.
func (m *Machine) alu(kind opcode.Kind, x, y uint8) {
	vx, vy := m.v[x], m.v[y]

	switch kind {
	case opcode.Move:
		m.v[x] = vy

	case opcode.Or:
		m.v[x] = vx | vy
		m.resetFlagAfterLogic()
	case opcode.And:
		m.v[x] = vx & vy
		m.resetFlagAfterLogic()
	case opcode.Xor:
		m.v[x] = vx ^ vy
		m.resetFlagAfterLogic()

	case opcode.AddReg:
		sum := uint16(vx) + uint16(vy)
		m.v[x] = byte(sum)
		m.v[flag] = byte(sum >> 8)

	case opcode.Sub:
		m.v[x] = vx - vy
		m.v[flag] = boolToByte(vx >= vy)
	case opcode.SubNeg:
		m.v[x] = vy - vx
		m.v[flag] = boolToByte(vy >= vx)

	case opcode.ShiftRight:
		src := m.shiftSource(vx, vy)
		m.v[x] = src >> 1
		m.v[flag] = src & 0x01
	case opcode.ShiftLeft:
		src := m.shiftSource(vx, vy)
		m.v[x] = src << 1
		m.v[flag] = src >> 7
	}
}

func (m *Machine) resetFlagAfterLogic() {
	if m.quirks.LogicResetsVF {
		m.v[flag] = 0
	}
}

func (m *Machine) shiftSource(vx, vy byte) byte {
	if m.quirks.ShiftUsesVY {
		return vy
	}
	return vx
}

func (m *Machine) advanceIndex(x uint8) {
	if m.quirks.LoadStoreIncrementsI {
		m.i += uint16(x) + 1
	}
}

// draw XORs an n byte sprite read from I onto the display at (vx, vy).
// Both coordinates wrap around the display edges independently.
func (m *Machine) draw(vx, vy byte, n uint8) {
	m.v[flag] = 0

	for row := uint16(0); row < uint16(n); row++ {
		sprite := m.memory[(m.i+row)&addressMask]
		py := (int(vy) + int(row)) % DisplayHeight

		for col := 0; col < 8; col++ {
			if sprite&(0x80>>col) == 0 {
				continue
			}

			px := (int(vx) + col) % DisplayWidth
			index := py*DisplayWidth + px
			if m.display[index] {
				m.v[flag] = 1
			}
			m.display[index] = !m.display[index]
		}
	}

	m.redraw = true
}

// waitKey implements FX0A. While no key completes the wait the program counter
// is moved back so that the instruction executes again on the next step.
func (m *Machine) waitKey(x uint8) {
	if m.quirks.KeyWaitOnRelease {
		if m.waitingKey < 0 {
			m.waitingKey = m.lowestPressedKey()
		}
		if m.waitingKey >= 0 && !m.keys[m.waitingKey] {
			m.v[x] = byte(m.waitingKey)
			m.waitingKey = -1
			return
		}
		m.pc -= opcode.Size
		return
	}

	key := m.lowestPressedKey()
	if key < 0 {
		m.pc -= opcode.Size
		return
	}
	m.v[x] = byte(key)
}

func (m *Machine) lowestPressedKey() int {
	for key, pressed := range m.keys {
		if pressed {
			return key
		}
	}
	return -1
}

func (m *Machine) keyDown(key byte) bool {
	return int(key) < KeyCount && m.keys[key]
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
