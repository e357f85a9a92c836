package opcode

import "github.com/retroenv/retrogolib/arch/cpu/chip8"

// entry matches an instruction word when word&Info.Mask == Info.Value.
type entry struct {
	Info chip8.OpcodeInfo
	Kind Kind
}

// table contains the instruction entries indexed by the top nibble of the word.
// The first matching entry of a family wins.
var table = [16][]entry{
	0x0: {
		{Info: chip8.Opcode00E0, Kind: ClearScreen},
		{Info: chip8.Opcode00EE, Kind: Return},
	},
	0x1: {{Info: chip8.Opcode1000, Kind: Jump}},
	0x2: {{Info: chip8.Opcode2000, Kind: Call}},
	0x3: {{Info: chip8.Opcode3000, Kind: SkipEqualImm}},
	0x4: {{Info: chip8.Opcode4000, Kind: SkipNotEqualImm}},
	0x5: {{Info: chip8.Opcode5000, Kind: SkipEqualReg}},
	0x6: {{Info: chip8.Opcode6000, Kind: LoadImm}},
	0x7: {{Info: chip8.Opcode7000, Kind: AddImm}},
	0x8: {
		{Info: chip8.Opcode8000, Kind: Move},
		{Info: chip8.Opcode8001, Kind: Or},
		{Info: chip8.Opcode8002, Kind: And},
		{Info: chip8.Opcode8003, Kind: Xor},
		{Info: chip8.Opcode8004, Kind: AddReg},
		{Info: chip8.Opcode8005, Kind: Sub},
		{Info: chip8.Opcode8006, Kind: ShiftRight},
		{Info: chip8.Opcode8007, Kind: SubNeg},
		{Info: chip8.Opcode800E, Kind: ShiftLeft},
	},
	0x9: {{Info: chip8.Opcode9000, Kind: SkipNotEqualReg}},
	0xA: {{Info: chip8.OpcodeA000, Kind: LoadIndex}},
	0xB: {{Info: chip8.OpcodeB000, Kind: JumpOffset}},
	0xC: {{Info: chip8.OpcodeC000, Kind: Random}},
	0xD: {{Info: chip8.OpcodeD000, Kind: Draw}},
	0xE: {
		{Info: chip8.OpcodeE09E, Kind: SkipKeyPressed},
		{Info: chip8.OpcodeE0A1, Kind: SkipKeyNotPressed},
	},
	0xF: {
		{Info: chip8.OpcodeF007, Kind: LoadDelay},
		{Info: chip8.OpcodeF00A, Kind: WaitKey},
		{Info: chip8.OpcodeF015, Kind: SetDelay},
		{Info: chip8.OpcodeF018, Kind: SetSound},
		{Info: chip8.OpcodeF01E, Kind: AddIndex},
		{Info: chip8.OpcodeF029, Kind: FontAddress},
		{Info: chip8.OpcodeF033, Kind: StoreBCD},
		{Info: chip8.OpcodeF055, Kind: StoreRegisters},
		{Info: chip8.OpcodeF065, Kind: LoadRegisters},
	},
}

func lookup(word uint16) Kind {
	for _, e := range table[word>>12] {
		if word&e.Info.Mask == e.Info.Value {
			return e.Kind
		}
	}
	return Unknown
}
