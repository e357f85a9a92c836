// Package disasm renders CHIP-8 instructions as assembly mnemonics.
//
// Instructions are classified by the opcode decoder, the same decoder that the
// machine executes, so both always agree on the family of an instruction word.
package disasm

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/opcode"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// OutOfBounds is returned for addresses whose instruction word does not lie
// completely inside memory.
const OutOfBounds = "out of bounds"

// At disassembles the big endian instruction word at the address.
func At(memory []byte, address uint16) string {
	if int(address)+1 >= len(memory) {
		return OutOfBounds
	}

	word := uint16(memory[address])<<8 | uint16(memory[address+1])
	return Instruction(opcode.Decode(word))
}

// Instruction returns the mnemonic of a decoded instruction including its
// parameters.
func Instruction(ins opcode.Instruction) string {
	name, params := format(ins)
	if params == "" {
		return name
	}
	return name + " " + params
}

// format returns the instruction name and the formatted parameters.
func format(ins opcode.Instruction) (string, string) {
	switch ins.Kind {
	case opcode.ClearScreen:
		return chip8.ClsName, ""
	case opcode.Return:
		return chip8.RetName, ""
	case opcode.Jump:
		return chip8.JpName, address(ins)
	case opcode.JumpOffset:
		return chip8.JpName, "V0, " + address(ins)
	case opcode.Call:
		return chip8.CallName, address(ins)

	case opcode.SkipEqualImm:
		return chip8.SeName, registerByte(ins)
	case opcode.SkipNotEqualImm:
		return chip8.SneName, registerByte(ins)
	case opcode.SkipEqualReg:
		return chip8.SeName, registerPair(ins)
	case opcode.SkipNotEqualReg:
		return chip8.SneName, registerPair(ins)
	case opcode.SkipKeyPressed:
		return chip8.SkpName, registerX(ins)
	case opcode.SkipKeyNotPressed:
		return chip8.SknpName, registerX(ins)

	case opcode.LoadImm:
		return chip8.LdName, registerByte(ins)
	case opcode.AddImm:
		return chip8.AddName, registerByte(ins)
	case opcode.Random:
		return chip8.RndName, registerByte(ins)

	case opcode.Move:
		return chip8.LdName, registerPair(ins)
	case opcode.Or:
		return chip8.OrName, registerPair(ins)
	case opcode.And:
		return chip8.AndName, registerPair(ins)
	case opcode.Xor:
		return chip8.XorName, registerPair(ins)
	case opcode.AddReg:
		return chip8.AddName, registerPair(ins)
	case opcode.Sub:
		return chip8.SubName, registerPair(ins)
	case opcode.SubNeg:
		return chip8.SubnName, registerPair(ins)
	case opcode.ShiftRight:
		return chip8.ShrName, registerX(ins)
	case opcode.ShiftLeft:
		return chip8.ShlName, registerX(ins)

	case opcode.LoadIndex:
		return chip8.LdName, "I, " + address(ins)
	case opcode.Draw:
		return chip8.DrwName, fmt.Sprintf("V%X, V%X, $%X", ins.X, ins.Y, ins.N)

	default:
		return formatMisc(ins)
	}
}

// formatMisc formats the timer, key, index and register block loads of the
// F family and all unknown instruction words.
func formatMisc(ins opcode.Instruction) (string, string) {
	x := ins.X

	switch ins.Kind {
	case opcode.LoadDelay:
		return chip8.LdName, fmt.Sprintf("V%X, DT", x)
	case opcode.WaitKey:
		return chip8.LdName, fmt.Sprintf("V%X, K", x)
	case opcode.SetDelay:
		return chip8.LdName, fmt.Sprintf("DT, V%X", x)
	case opcode.SetSound:
		return chip8.LdName, fmt.Sprintf("ST, V%X", x)
	case opcode.AddIndex:
		return chip8.AddName, fmt.Sprintf("I, V%X", x)
	case opcode.FontAddress:
		return chip8.LdName, fmt.Sprintf("F, V%X", x)
	case opcode.StoreBCD:
		return chip8.LdName, fmt.Sprintf("B, V%X", x)
	case opcode.StoreRegisters:
		return chip8.LdName, fmt.Sprintf("[I], V%X", x)
	case opcode.LoadRegisters:
		return chip8.LdName, fmt.Sprintf("V%X, [I]", x)

	default:
		return Unknown, fmt.Sprintf("$%04X (selector $%X)", ins.Word, ins.Selector())
	}
}

// Unknown is the mnemonic of instruction words without semantics.
const Unknown = "unknown"

func address(ins opcode.Instruction) string {
	return fmt.Sprintf("$%03X", ins.NNN)
}

func registerX(ins opcode.Instruction) string {
	return fmt.Sprintf("V%X", ins.X)
}

func registerByte(ins opcode.Instruction) string {
	return fmt.Sprintf("V%X, $%02X", ins.X, ins.NN)
}

func registerPair(ins opcode.Instruction) string {
	return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)
}
