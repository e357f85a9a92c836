// Package machine implements the CHIP-8 virtual machine: its state, the
// execution of all instructions, the cycle driver and the timers.
//
// A Machine is not safe for concurrent use. The host owns it and calls Step,
// StepN and Tick from a single goroutine at the rates it chooses.
package machine

import (
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 memory layout and machine dimensions.
const (
	MemorySize   = 4096
	ProgramStart = 0x200
	// MaxImageSize is the largest program image that fits above ProgramStart.
	MaxImageSize = MemorySize - ProgramStart

	DisplayWidth  = 64
	DisplayHeight = 32
	DisplaySize   = DisplayWidth * DisplayHeight

	RegisterCount = 16
	StackDepth    = 16
	KeyCount      = 16

	addressMask = MemorySize - 1
)

// Quirks selects compatibility behavior that differs between interpreters.
type Quirks struct {
	// LogicResetsVF resets VF to 0 after OR, AND and XOR.
	LogicResetsVF bool
	// ShiftUsesVY shifts VY into VX instead of shifting VX in place.
	ShiftUsesVY bool
	// LoadStoreIncrementsI leaves I pointing past the last register
	// transferred by FX55 and FX65.
	LoadStoreIncrementsI bool
	// KeyWaitOnRelease makes FX0A complete when the latched key is released
	// instead of when it is pressed.
	KeyWaitOnRelease bool
}

// Config contains the machine configuration.
type Config struct {
	Quirks Quirks
	// Seed seeds the random number generator, 0 selects a random seed.
	Seed uint64
}

// DefaultConfig returns the default machine configuration.
func DefaultConfig() Config {
	return Config{
		Quirks: Quirks{
			LogicResetsVF:        true,
			LoadStoreIncrementsI: true,
		},
	}
}

// Machine is a CHIP-8 virtual machine.
type Machine struct {
	logger *log.Logger
	quirks Quirks
	rng    *rand.Rand

	memory  [MemorySize]byte
	display [DisplaySize]bool
	redraw  bool

	v  [RegisterCount]byte
	i  uint16
	pc uint16

	stack [StackDepth]uint16
	sp    uint8

	delayTimer byte
	soundTimer byte

	keys       [KeyCount]bool
	waitingKey int // key latched by FX0A while waiting for its release, -1 if none

	running bool
	halted  bool
	fault   error
	cycles  uint64

	source string
	image  []byte
	loaded bool
}

// New returns a new machine in its initialized state.
func New(logger *log.Logger, cfg Config) *Machine {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	m := &Machine{
		logger: logger,
		quirks: cfg.Quirks,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
	m.initialize()
	return m
}

// initialize sets all state to the power on values and loads the font.
func (m *Machine) initialize() {
	m.memory = [MemorySize]byte{}
	copy(m.memory[FontAddress:], font[:])
	m.display = [DisplaySize]bool{}
	m.redraw = false

	m.v = [RegisterCount]byte{}
	m.i = 0
	m.pc = ProgramStart

	m.stack = [StackDepth]uint16{}
	m.sp = 0

	m.delayTimer = 0
	m.soundTimer = 0

	m.keys = [KeyCount]bool{}
	m.waitingKey = -1

	m.running = false
	m.halted = false
	m.fault = nil
	m.cycles = 0
}

// Reset returns the machine to its initialized state. The last loaded image
// is kept so that it can be reloaded using Reload.
func (m *Machine) Reset() {
	m.initialize()
	m.logger.Debug("Machine reset", log.String("source", m.source))
}

// Load copies a program image into memory at ProgramStart. An image that
// does not fit leaves the machine unmodified.
func (m *Machine) Load(source string, image []byte) error {
	if len(image) > MaxImageSize {
		return fmt.Errorf("%w: %d bytes, at most %d bytes fit", ErrImageTooLarge, len(image), MaxImageSize)
	}

	copy(m.memory[ProgramStart:], image)
	m.source = source
	m.image = append(m.image[:0], image...)
	m.loaded = true

	m.logger.Debug("Program image loaded",
		log.String("source", source),
		log.Int("size", len(image)))
	return nil
}

// Reload resets the machine and loads the last loaded image again.
func (m *Machine) Reload() error {
	if !m.loaded {
		return ErrNoImage
	}

	m.Reset()
	copy(m.memory[ProgramStart:], m.image)
	return nil
}

// Source returns the name of the last loaded image.
func (m *Machine) Source() string {
	return m.source
}

// Quirks returns the compatibility behavior of the machine.
func (m *Machine) Quirks() Quirks {
	return m.quirks
}
