package config

import (
	"testing"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}

func TestMachineConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := MachineConfig(options.Program{})
		assert.Equal(t, machine.DefaultConfig(), cfg)
	})

	t.Run("all quirks toggled", func(t *testing.T) {
		opts := options.Program{
			Flags: options.Flags{Seed: 42},
			QuirkFlags: options.QuirkFlags{
				NoLogicReset:  true,
				ShiftVY:       true,
				NoIndexChange: true,
				KeyRelease:    true,
			},
		}

		cfg := MachineConfig(opts)
		assert.Equal(t, uint64(42), cfg.Seed)
		assert.False(t, cfg.Quirks.LogicResetsVF)
		assert.True(t, cfg.Quirks.ShiftUsesVY)
		assert.False(t, cfg.Quirks.LoadStoreIncrementsI)
		assert.True(t, cfg.Quirks.KeyWaitOnRelease)
	})
}

func TestRunnerConfig(t *testing.T) {
	cfg := RunnerConfig(options.Program{Flags: options.Flags{InstructionsPerTick: 15, Realtime: true}})
	assert.Equal(t, 15, cfg.InstructionsPerTick)
	assert.True(t, cfg.Realtime)
}

func TestListingOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    options.OutputFlags
		hex     bool
		offsets bool
		zero    bool
	}{
		{name: "default flags", hex: true, offsets: true},
		{name: "nohexcomments flag", opts: options.OutputFlags{NoHexComments: true}, offsets: true},
		{name: "nooffsets flag", opts: options.OutputFlags{NoOffsets: true}, hex: true},
		{name: "z flag", opts: options.OutputFlags{ZeroBytes: true}, hex: true, offsets: true, zero: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ListingOptions(options.Program{OutputFlags: tt.opts})
			assert.Equal(t, tt.hex, got.HexComments)
			assert.Equal(t, tt.offsets, got.OffsetComments)
			assert.Equal(t, tt.zero, got.ZeroBytes)
		})
	}
}
