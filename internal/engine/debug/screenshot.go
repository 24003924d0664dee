// Package debug provides developer utilities for the map viewer.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Screenshots writes framebuffer captures as PNG files.
type Screenshots struct {
	dir    string
	prefix string
	now    func() time.Time
	seq    int
}

// NewScreenshots creates a writer that stores files as dir/prefix_<time>_<n>.png.
func NewScreenshots(dir, prefix string) *Screenshots {
	return &Screenshots{
		dir:    dir,
		prefix: prefix,
		now:    time.Now,
	}
}

// FlipRows converts bottom-up RGBA rows, as returned by glReadPixels, into
// a top-down image.
func FlipRows(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid capture size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// SavePixels flips and saves raw RGBA framebuffer data.
// It returns the path of the written file.
func (s *Screenshots) SavePixels(pixels []byte, width, height int) (string, error) {
	img, err := FlipRows(pixels, width, height)
	if err != nil {
		return "", err
	}
	return s.SaveImage(img)
}

// SaveImage encodes img as PNG under the output directory.
func (s *Screenshots) SaveImage(img image.Image) (string, error) {
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path := s.nextName()
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}

// nextName returns a fresh filename; the sequence number keeps two captures
// in the same second apart.
func (s *Screenshots) nextName() string {
	s.seq++
	name := fmt.Sprintf("%s_%s_%03d.png", s.prefix, s.now().Format("2006-01-02_15-04-05"), s.seq)
	if s.dir != "" {
		name = filepath.Join(s.dir, name)
	}
	return name
}
