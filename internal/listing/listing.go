// Package listing writes the disassembly of a complete CHIP-8 program image
// as an assembly source listing.
package listing

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/opcode"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/set"
)

// Options controls the listing output.
type Options struct {
	HexComments    bool // output the instruction bytes as hex values in comments
	OffsetComments bool // output the instruction addresses in comments
	ZeroBytes      bool // output the trailing zero bytes of the image
}

// NewOptions returns the default listing options.
func NewOptions() Options {
	return Options{
		HexComments:    true,
		OffsetComments: true,
	}
}

// line is a single instruction or data word of the image.
type line struct {
	address uint16
	data    []byte
	code    string
	ins     opcode.Instruction
}

// Writer writes program listings.
type Writer struct {
	mainWriter io.Writer
	options    Options

	calls    set.Set[uint16]
	jumps    set.Set[uint16]
	dataRefs set.Set[uint16]
}

// New returns a new listing writer.
func New(mainWriter io.Writer, options Options) *Writer {
	return &Writer{
		mainWriter: mainWriter,
		options:    options,
	}
}

// Write writes the listing of the program image.
func (w *Writer) Write(source string, image []byte) error {
	if len(image) > machine.MaxImageSize {
		return fmt.Errorf("%w: %d bytes", machine.ErrImageTooLarge, len(image))
	}

	lines := w.parse(image)
	w.collectTargets(lines)

	if err := w.writeHeader(source); err != nil {
		return err
	}

	endIndex := w.endIndex(lines)
	afterSkip := false
	for _, l := range lines[:endIndex] {
		if err := w.writeLabel(l.address); err != nil {
			return fmt.Errorf("writing label: %w", err)
		}
		if err := w.writeLine(l); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}

		// separate blocks that end in an unconditional jump or return
		if l.code != "" && !afterSkip && (l.ins.IsJump() || l.ins.Kind == opcode.Return) {
			if _, err := fmt.Fprintln(w.mainWriter); err != nil {
				return fmt.Errorf("writing block separator: %w", err)
			}
		}
		afterSkip = l.code != "" && l.ins.IsSkip()
	}
	return nil
}

// parse splits the image into instruction words. Words without instruction
// semantics and a trailing odd byte are kept as data.
func (w *Writer) parse(image []byte) []line {
	lines := make([]line, 0, len(image)/opcode.Size+1)

	for offset := 0; offset < len(image); offset += opcode.Size {
		address := uint16(machine.ProgramStart + offset)
		if offset+1 >= len(image) {
			lines = append(lines, line{address: address, data: image[offset:]})
			break
		}

		data := image[offset : offset+opcode.Size]
		ins := opcode.Decode(uint16(data[0])<<8 | uint16(data[1]))
		l := line{address: address, data: data, ins: ins}
		if ins.Kind != opcode.Unknown {
			l.code = disasm.Instruction(ins)
		}
		lines = append(lines, l)
	}
	return lines
}

// collectTargets collects the addresses that are referenced by calls, jumps
// and index loads to label them in the output.
func (w *Writer) collectTargets(lines []line) {
	w.calls = set.New[uint16]()
	w.jumps = set.New[uint16]()
	w.dataRefs = set.New[uint16]()

	for _, l := range lines {
		if l.code == "" {
			continue
		}

		switch l.ins.Kind {
		case opcode.Call:
			w.calls.Add(l.ins.NNN)
		case opcode.Jump:
			w.jumps.Add(l.ins.NNN)
		case opcode.LoadIndex:
			w.dataRefs.Add(l.ins.NNN)
		}
	}
}

func (w *Writer) writeHeader(source string) error {
	if _, err := fmt.Fprintf(w.mainWriter, "; %s program listing\n", strings.ToUpper(string(arch.CHIP8System))); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if source != "" {
		if _, err := fmt.Fprintf(w.mainWriter, "; Source: %s\n", source); err != nil {
			return fmt.Errorf("writing source comment: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w.mainWriter, ".org $%03X\n\n", machine.ProgramStart); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}
	return nil
}

// Label returns the label of an address, or an empty string if the address
// is not referenced.
func (w *Writer) Label(address uint16) string {
	switch {
	case address == machine.ProgramStart:
		return "Start"
	case w.calls.Contains(address):
		return fmt.Sprintf("sub_%03X", address)
	case w.jumps.Contains(address):
		return fmt.Sprintf("loc_%03X", address)
	case w.dataRefs.Contains(address):
		return fmt.Sprintf("data_%03X", address)
	default:
		return ""
	}
}

func (w *Writer) writeLabel(address uint16) error {
	label := w.Label(address)
	if label == "" {
		return nil
	}
	if _, err := fmt.Fprintf(w.mainWriter, "%s:\n", label); err != nil {
		return fmt.Errorf("writing label %s: %w", label, err)
	}
	return nil
}

// writeLine writes either code or data for a line.
func (w *Writer) writeLine(l line) error {
	text := "    " + l.code
	if l.code == "" {
		var buf strings.Builder
		buf.WriteString(fmt.Sprintf("    .byte $%02X", l.data[0]))
		for _, b := range l.data[1:] {
			buf.WriteString(fmt.Sprintf(", $%02X", b))
		}
		text = buf.String()
	}

	comment := w.comment(l)
	if comment == "" {
		if _, err := fmt.Fprintf(w.mainWriter, "%s\n", text); err != nil {
			return fmt.Errorf("writing code: %w", err)
		}
		return nil
	}

	if _, err := fmt.Fprintf(w.mainWriter, "%-32s ; %s\n", text, comment); err != nil {
		return fmt.Errorf("writing code with comment: %w", err)
	}
	return nil
}

func (w *Writer) comment(l line) string {
	var parts []string
	if w.options.OffsetComments {
		parts = append(parts, fmt.Sprintf("$%03X", l.address))
	}
	if w.options.HexComments {
		hex := make([]string, len(l.data))
		for i, b := range l.data {
			hex[i] = fmt.Sprintf("%02X", b)
		}
		parts = append(parts, strings.Join(hex, " "))
	}
	return strings.Join(parts, " ")
}

// endIndex returns the index after the last line that contains non zero
// bytes or a label.
func (w *Writer) endIndex(lines []line) int {
	if w.options.ZeroBytes {
		return len(lines)
	}

	for i := len(lines) - 1; i >= 0; i-- {
		for _, b := range lines[i].data {
			if b != 0 {
				return i + 1
			}
		}
		if w.Label(lines[i].address) != "" {
			return i + 1
		}
	}
	return 0
}
