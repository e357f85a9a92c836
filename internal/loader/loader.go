// Package loader handles program image file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/machine"
)

// Loader handles loading program images from disk.
type Loader struct{}

// New creates a new program image loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the program image file. Files that do not fit into the program
// area of the machine memory are refused instead of truncated.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	image, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return image, nil
}

// LoadFromReader reads a program image from the reader.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	// read one byte more than fits to detect oversized images without
	// reading an arbitrarily large input
	image, err := io.ReadAll(io.LimitReader(reader, machine.MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if len(image) > machine.MaxImageSize {
		return nil, fmt.Errorf("%w: more than %d bytes", machine.ErrImageTooLarge, machine.MaxImageSize)
	}
	return image, nil
}

// LoadInto reads the program image file and loads it into the machine.
func (l *Loader) LoadInto(m *machine.Machine, path string) error {
	image, err := l.Load(path)
	if err != nil {
		return err
	}
	if err := m.Load(path, image); err != nil {
		return fmt.Errorf("loading image into machine: %w", err)
	}
	return nil
}
