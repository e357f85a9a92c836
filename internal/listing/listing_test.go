package listing

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/retrogolib/assert"
)

func TestWrite(t *testing.T) {
	image := []byte{
		0x00, 0xE0, // $200 cls
		0x22, 0x08, // $202 call $208
		0xA2, 0x0C, // $204 ld I, $20C
		0x12, 0x04, // $206 jp $204
		0x00, 0xEE, // $208 ret
		0x51, 0x21, // $20A unknown
		0xF0, 0x90, // $20C sprite data
		0x00, 0x00, // trailing zero bytes
	}

	var buf bytes.Buffer
	opts := Options{}
	assert.NoError(t, New(&buf, opts).Write("test.ch8", image))

	expected := []string{
		"; Source: test.ch8",
		".org $200",
		"Start:",
		"    cls",
		"    call $208",
		"loc_204:",
		"    ld I, $20C",
		"    jp $204",
		"sub_208:",
		"    ret",
		"    .byte $51, $21",
		"data_20C:",
	}
	output := buf.String()
	for _, s := range expected {
		assert.Contains(t, output, s)
	}
	assert.True(t, strings.Contains(output, "program listing"))
	assert.False(t, strings.Contains(output, ".byte $00, $00"))
}

func TestWriteComments(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, New(&buf, NewOptions()).Write("", []byte{0x60, 0x0F}))

	output := buf.String()
	assert.Contains(t, output, "ld V0, $0F")
	assert.Contains(t, output, "; $200 60 0F")
	assert.False(t, strings.Contains(output, "Source:"))
}

func TestWriteZeroBytes(t *testing.T) {
	image := []byte{0x00, 0xE0, 0x00, 0x00, 0x00}

	var buf bytes.Buffer
	assert.NoError(t, New(&buf, Options{}).Write("", image))
	assert.False(t, strings.Contains(buf.String(), ".byte"))

	buf.Reset()
	assert.NoError(t, New(&buf, Options{ZeroBytes: true}).Write("", image))
	assert.Contains(t, buf.String(), ".byte $00, $00")
	assert.Contains(t, buf.String(), ".byte $00\n")
}

func TestWriteOversized(t *testing.T) {
	var buf bytes.Buffer
	err := New(&buf, Options{}).Write("", make([]byte, machine.MaxImageSize+1))
	assert.Error(t, err)
}

func TestLabel(t *testing.T) {
	w := New(&bytes.Buffer{}, Options{})
	w.collectTargets(w.parse([]byte{0x22, 0x04, 0x12, 0x06}))

	assert.Equal(t, "Start", w.Label(0x200))
	assert.Equal(t, "sub_204", w.Label(0x204))
	assert.Equal(t, "loc_206", w.Label(0x206))
	assert.Equal(t, "", w.Label(0x202))
}

func TestWriteBlockSeparator(t *testing.T) {
	var buf bytes.Buffer
	image := []byte{
		0x12, 0x02, // $200 jp $202
		0x3A, 0x12, // $202 se VA, $12
		0x12, 0x00, // $204 jp $200
		0x00, 0xE0, // $206 cls
	}
	assert.NoError(t, New(&buf, Options{}).Write("", image))

	output := buf.String()
	assert.Contains(t, output, "    jp $202\n\nloc_202:\n")
	assert.Contains(t, output, "    jp $200\n    cls\n")
}
