// Package screenshot writes captured framebuffer pixels to PNG files.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

const timeLayout = "2006-01-02_15-04-05"

// Writer names and writes screenshot files under Dir.
type Writer struct {
	Dir    string
	Prefix string

	now func() time.Time
}

// New returns a writer that stores <prefix>_<timestamp>.png files in dir.
func New(dir, prefix string) *Writer {
	return &Writer{Dir: dir, Prefix: prefix, now: time.Now}
}

// Filename returns the path the next capture would be written to.
func (w *Writer) Filename() string {
	name := fmt.Sprintf("%s_%s.png", w.Prefix, w.now().Format(timeLayout))
	if w.Dir != "" {
		name = filepath.Join(w.Dir, name)
	}
	return name
}

// SaveBottomUp writes width*height RGBA pixels whose first row is the bottom
// of the image, as glReadPixels returns them. It returns the file path.
func (w *Writer) SaveBottomUp(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}
	return w.Save(img)
}

// Save writes img as PNG and returns the file path.
func (w *Writer) Save(img image.Image) (string, error) {
	if w.Dir != "" {
		if err := os.MkdirAll(w.Dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := w.Filename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}
