package opcode

// Kind identifies the operation of a decoded instruction.
type Kind uint8

// Instruction kinds, in opcode order.
const (
	Unknown           Kind = iota
	ClearScreen            // 00E0
	Return                 // 00EE
	Jump                   // 1NNN
	Call                   // 2NNN
	SkipEqualImm           // 3XNN
	SkipNotEqualImm        // 4XNN
	SkipEqualReg           // 5XY0
	LoadImm                // 6XNN
	AddImm                 // 7XNN
	Move                   // 8XY0
	Or                     // 8XY1
	And                    // 8XY2
	Xor                    // 8XY3
	AddReg                 // 8XY4
	Sub                    // 8XY5
	ShiftRight             // 8XY6
	SubNeg                 // 8XY7
	ShiftLeft              // 8XYE
	SkipNotEqualReg        // 9XY0
	LoadIndex              // ANNN
	JumpOffset             // BNNN
	Random                 // CXNN
	Draw                   // DXYN
	SkipKeyPressed         // EX9E
	SkipKeyNotPressed      // EXA1
	LoadDelay              // FX07
	WaitKey                // FX0A
	SetDelay               // FX15
	SetSound               // FX18
	AddIndex               // FX1E
	FontAddress            // FX29
	StoreBCD               // FX33
	StoreRegisters         // FX55
	LoadRegisters          // FX65

	kindCount
)

// Count is the number of known instruction kinds, Unknown excluded.
const Count = int(kindCount) - 1

var kindNames = [kindCount]string{
	Unknown:           "unknown",
	ClearScreen:       "clear screen",
	Return:            "return",
	Jump:              "jump",
	Call:              "call",
	SkipEqualImm:      "skip if equal immediate",
	SkipNotEqualImm:   "skip if not equal immediate",
	SkipEqualReg:      "skip if equal register",
	LoadImm:           "load immediate",
	AddImm:            "add immediate",
	Move:              "move",
	Or:                "or",
	And:               "and",
	Xor:               "xor",
	AddReg:            "add register",
	Sub:               "subtract",
	ShiftRight:        "shift right",
	SubNeg:            "subtract negated",
	ShiftLeft:         "shift left",
	SkipNotEqualReg:   "skip if not equal register",
	LoadIndex:         "load index",
	JumpOffset:        "jump with offset",
	Random:            "random",
	Draw:              "draw sprite",
	SkipKeyPressed:    "skip if key pressed",
	SkipKeyNotPressed: "skip if key not pressed",
	LoadDelay:         "load delay timer",
	WaitKey:           "wait for key",
	SetDelay:          "set delay timer",
	SetSound:          "set sound timer",
	AddIndex:          "add to index",
	FontAddress:       "font address",
	StoreBCD:          "store bcd",
	StoreRegisters:    "store registers",
	LoadRegisters:     "load registers",
}

func (k Kind) String() string {
	if k >= kindCount {
		return kindNames[Unknown]
	}
	return kindNames[k]
}
