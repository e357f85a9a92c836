package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestLoad(t *testing.T) {
	t.Run("load image file", func(t *testing.T) {
		tmpFile := createTempFile(t, []byte{0x12, 0x34, 0x56, 0x78})

		image, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.True(t, bytes.Equal([]byte{0x12, 0x34, 0x56, 0x78}, image))
	})

	t.Run("load maximum size", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, machine.MaxImageSize))

		image, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, machine.MaxImageSize, len(image))
	})

	t.Run("error on oversized file", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, machine.MaxImageSize+1))

		_, err := New().Load(tmpFile)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, machine.ErrImageTooLarge))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, err := New().Load("/nonexistent/file.ch8")
		assert.Error(t, err)
	})
}

func TestLoadFromReader(t *testing.T) {
	image, err := New().LoadFromReader(bytes.NewReader([]byte{0x00, 0xE0}))
	assert.NoError(t, err)
	assert.Equal(t, 2, len(image))

	_, err = New().LoadFromReader(bytes.NewReader(make([]byte, 2*machine.MaxImageSize)))
	assert.True(t, errors.Is(err, machine.ErrImageTooLarge))
}

func TestLoadInto(t *testing.T) {
	tmpFile := createTempFile(t, []byte{0x60, 0x2A})
	m := machine.New(log.NewTestLogger(t), machine.DefaultConfig())

	assert.NoError(t, New().LoadInto(m, tmpFile))
	assert.Equal(t, tmpFile, m.Source())
	assert.NoError(t, m.Step())
	assert.Equal(t, byte(0x2A), m.Register(0))
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
