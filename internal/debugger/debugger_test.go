package debugger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// loop counts V0 up forever.
var loop = []byte{
	0x60, 0x01, // $200 ld V0, $01
	0x70, 0x01, // $202 add V0, $01
	0x12, 0x02, // $204 jp $202
}

func newTestDebugger(t *testing.T, image []byte) (*Debugger, *machine.Machine) {
	t.Helper()
	logger := log.NewTestLogger(t)
	m := machine.New(logger, machine.DefaultConfig())
	assert.NoError(t, m.Load("test", image))
	return New(logger, m), m
}

func TestBreakpoints(t *testing.T) {
	d, _ := newTestDebugger(t, loop)

	d.AddBreakpoint(0x204)
	d.AddBreakpoint(0x200)
	d.AddBreakpoint(0x204)

	bps := d.Breakpoints()
	assert.Equal(t, 2, len(bps))
	assert.Equal(t, uint16(0x200), bps[0])
	assert.Equal(t, uint16(0x204), bps[1])
	assert.True(t, d.IsBreakpoint(0x204))

	assert.True(t, d.RemoveBreakpoint(0x200))
	assert.False(t, d.RemoveBreakpoint(0x200))
	assert.False(t, d.IsBreakpoint(0x200))
	assert.True(t, d.IsBreakpoint(0x204))

	d.ClearBreakpoints()
	assert.Equal(t, 0, len(d.Breakpoints()))
	assert.False(t, d.IsBreakpoint(0x204))
}

func TestRun(t *testing.T) {
	t.Run("stops at breakpoint", func(t *testing.T) {
		d, m := newTestDebugger(t, loop)
		d.AddBreakpoint(0x204)

		result, err := d.Run(context.Background(), 100)
		assert.NoError(t, err)
		assert.Equal(t, StopBreakpoint, result.Reason)
		assert.Equal(t, 2, result.Executed)
		assert.Equal(t, uint16(0x204), result.PC)
		assert.Equal(t, byte(2), m.Register(0))

		// continue from the breakpoint
		result, err = d.Run(context.Background(), 100)
		assert.NoError(t, err)
		assert.Equal(t, StopBreakpoint, result.Reason)
		assert.Equal(t, 2, result.Executed)
		assert.Equal(t, byte(3), m.Register(0))
	})

	t.Run("stops at step limit", func(t *testing.T) {
		d, m := newTestDebugger(t, loop)

		result, err := d.Run(context.Background(), 5)
		assert.NoError(t, err)
		assert.Equal(t, StopCount, result.Reason)
		assert.Equal(t, 5, result.Executed)
		assert.Equal(t, uint64(5), m.Cycles())
	})

	t.Run("stops on fault", func(t *testing.T) {
		d, m := newTestDebugger(t, []byte{0x60, 0x01, 0xFF, 0xFF})

		result, err := d.Run(context.Background(), 100)
		assert.True(t, errors.Is(err, machine.ErrUnknownOpcode))
		assert.Equal(t, StopHalted, result.Reason)
		assert.Equal(t, 1, result.Executed)
		assert.True(t, m.Halted())

		result, err = d.Run(context.Background(), 100)
		assert.NoError(t, err)
		assert.Equal(t, StopHalted, result.Reason)
		assert.Equal(t, 0, result.Executed)
	})

	t.Run("stops on canceled context", func(t *testing.T) {
		d, m := newTestDebugger(t, loop)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := d.Run(ctx, 100)
		assert.NoError(t, err)
		assert.Equal(t, StopCanceled, result.Reason)
		assert.Equal(t, 0, result.Executed)
		assert.Equal(t, uint16(0x200), m.PC())
	})
}

func TestStopReasonString(t *testing.T) {
	assert.Equal(t, "breakpoint", StopBreakpoint.String())
	assert.Equal(t, "step limit", StopCount.String())
	assert.Equal(t, "unknown", StopReason(42).String())
}

func TestSnapshot(t *testing.T) {
	image := []byte{
		0x22, 0x04, // $200 call $204
		0x00, 0x00,
		0xA1, 0x23, // $204 ld I, $123
	}
	d, _ := newTestDebugger(t, image)
	assert.NoError(t, d.Step())
	assert.NoError(t, d.Step())

	state := d.Snapshot()
	assert.Equal(t, uint16(0x206), state.PC)
	assert.Equal(t, uint16(0x123), state.Index)
	assert.Equal(t, 1, len(state.Stack))
	assert.Equal(t, uint16(0x202), state.Stack[0])
	assert.Equal(t, uint64(2), state.Cycles)
	assert.False(t, state.Halted)
	assert.Equal(t, "unknown $0000 (selector $0)", state.Next)
}

func TestWriteState(t *testing.T) {
	d, m := newTestDebugger(t, []byte{0x6A, 0x42, 0xFF, 0xFF})
	assert.NoError(t, d.Step())

	var buf bytes.Buffer
	assert.NoError(t, d.WriteState(&buf))
	assert.Contains(t, buf.String(), "PC=$202")
	assert.Contains(t, buf.String(), "VA=$42")
	assert.Contains(t, buf.String(), "next: unknown $FFFF")

	assert.Error(t, m.Step())
	buf.Reset()
	assert.NoError(t, d.WriteState(&buf))
	assert.Contains(t, buf.String(), "halted:")
}

func TestWriteMemory(t *testing.T) {
	d, _ := newTestDebugger(t, loop)

	var buf bytes.Buffer
	assert.NoError(t, d.WriteMemory(&buf, 0x200, 6))
	assert.Equal(t, "$200: 60 01 70 01 12 02\n", buf.String())

	buf.Reset()
	assert.NoError(t, d.WriteMemory(&buf, 0x000, 17))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, 2, len(lines))
	assert.True(t, strings.HasPrefix(lines[1], "$010: "))

	buf.Reset()
	assert.NoError(t, d.WriteMemory(&buf, 0xFFE, 10))
	assert.Equal(t, "$FFE: 00 00\n", buf.String())
}
