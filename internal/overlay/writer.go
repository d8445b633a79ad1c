package overlay

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// ImageWriter persists a rendered frame. The default writer encodes PNG to
// disk; tests substitute an in-memory implementation.
type ImageWriter interface {
	WriteImage(path string, img image.Image) error
}

// PNGWriter writes frames as PNG files, creating parent directories.
type PNGWriter struct{}

func (PNGWriter) WriteImage(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create overlay directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create overlay frame: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode overlay frame: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close overlay frame: %w", err)
	}
	return nil
}
