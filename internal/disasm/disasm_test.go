package disasm

import (
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/opcode"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestInstruction(t *testing.T) {
	tests := []struct {
		word     uint16
		expected string
	}{
		{0x00E0, "cls"},
		{0x00EE, "ret"},
		{0x1234, "jp $234"},
		{0xB300, "jp V0, $300"},
		{0x2300, "call $300"},
		{0x3A1F, "se VA, $1F"},
		{0x4A1F, "sne VA, $1F"},
		{0x5AB0, "se VA, VB"},
		{0x9AB0, "sne VA, VB"},
		{0xE39E, "skp V3"},
		{0xE3A1, "sknp V3"},
		{0x650F, "ld V5, $0F"},
		{0x7501, "add V5, $01"},
		{0xC5FF, "rnd V5, $FF"},
		{0x8120, "ld V1, V2"},
		{0x8121, "or V1, V2"},
		{0x8122, "and V1, V2"},
		{0x8123, "xor V1, V2"},
		{0x8124, "add V1, V2"},
		{0x8125, "sub V1, V2"},
		{0x8127, "subn V1, V2"},
		{0x8126, "shr V1"},
		{0x812E, "shl V1"},
		{0xA2F0, "ld I, $2F0"},
		{0xD125, "drw V1, V2, $5"},
		{0xF707, "ld V7, DT"},
		{0xF70A, "ld V7, K"},
		{0xF715, "ld DT, V7"},
		{0xF718, "ld ST, V7"},
		{0xF71E, "add I, V7"},
		{0xF729, "ld F, V7"},
		{0xF733, "ld B, V7"},
		{0xF755, "ld [I], V7"},
		{0xF765, "ld V7, [I]"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Instruction(opcode.Decode(tt.word)))
		})
	}
}

func TestInstructionUnknown(t *testing.T) {
	tests := []struct {
		word     uint16
		expected string
	}{
		{0x0123, "unknown $0123 (selector $123)"},
		{0x5121, "unknown $5121 (selector $1)"},
		{0x812F, "unknown $812F (selector $F)"},
		{0x9128, "unknown $9128 (selector $8)"},
		{0xE1FF, "unknown $E1FF (selector $FF)"},
		{0xF100, "unknown $F100 (selector $0)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Instruction(opcode.Decode(tt.word)))
	}
}

func TestAt(t *testing.T) {
	memory := make([]byte, 0x1000)
	memory[0x200] = 0x12
	memory[0x201] = 0x34
	memory[0xFFE] = 0x00
	memory[0xFFF] = 0xE0

	assert.Equal(t, "jp $234", At(memory, 0x200))
	assert.Equal(t, "cls", At(memory, 0xFFE))
	assert.Equal(t, OutOfBounds, At(memory, 0xFFF))
	assert.Equal(t, OutOfBounds, At(memory, 0x1000))
	assert.Equal(t, OutOfBounds, At(memory, 0xFFFF))
}

// TestDecoderParity verifies that every instruction word is rendered as unknown
// exactly when the decoder has no semantics for it.
func TestDecoderParity(t *testing.T) {
	for w := 0; w <= 0xFFFF; w++ {
		ins := opcode.Decode(uint16(w))
		text := Instruction(ins)

		isUnknown := strings.HasPrefix(text, Unknown+" ")
		if isUnknown != (ins.Kind == opcode.Unknown) {
			t.Fatalf("word $%04X: kind %s rendered as %q", w, ins.Kind, text)
		}
	}
}

func TestInstructionLibraryNames(t *testing.T) {
	for _, opcodes := range chip8.Opcodes {
		for _, op := range opcodes {
			text := Instruction(opcode.Decode(op.Info.Value))
			name, _, _ := strings.Cut(text, " ")
			assert.Equal(t, op.Instruction.Name, name, "opcode $%04X", op.Info.Value)
		}
	}
}
