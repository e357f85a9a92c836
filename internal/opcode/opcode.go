// Package opcode decodes CHIP-8 instruction words.
// The same decode table drives both execution and disassembly.
package opcode

// Size is the size of a CHIP-8 instruction in bytes.
const Size = 2

// Instruction is a decoded 16-bit instruction word.
type Instruction struct {
	Word uint16
	Kind Kind

	X   uint8  // bits 8-11, register index
	Y   uint8  // bits 4-7, register index
	N   uint8  // bits 0-3
	NN  uint8  // bits 0-7
	NNN uint16 // bits 0-11, address
}

// Decode decodes an instruction word. Every word decodes, words without
// execution semantics have the Unknown kind.
func Decode(word uint16) Instruction {
	return Instruction{
		Word: word,
		Kind: lookup(word),
		X:    uint8(word>>8) & 0x0F,
		Y:    uint8(word>>4) & 0x0F,
		N:    uint8(word) & 0x0F,
		NN:   uint8(word),
		NNN:  word & 0x0FFF,
	}
}

// Family returns the top nibble of the instruction word.
func (i Instruction) Family() uint8 {
	return uint8(i.Word >> 12)
}

// Selector returns the secondary discriminant that selects the operation
// inside an overloaded family.
func (i Instruction) Selector() uint16 {
	switch i.Family() {
	case 0x0:
		return i.NNN
	case 0x5, 0x8, 0x9:
		return uint16(i.N)
	case 0xE, 0xF:
		return uint16(i.NN)
	default:
		return 0
	}
}

// IsSkip returns whether the instruction conditionally skips the next one.
func (i Instruction) IsSkip() bool {
	switch i.Kind {
	case SkipEqualImm, SkipNotEqualImm, SkipEqualReg, SkipNotEqualReg,
		SkipKeyPressed, SkipKeyNotPressed:
		return true
	default:
		return false
	}
}

// IsJump returns whether the instruction unconditionally transfers control.
func (i Instruction) IsJump() bool {
	return i.Kind == Jump || i.Kind == JumpOffset
}
