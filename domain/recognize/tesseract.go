//go:build !tesseract

package recognize

import (
	"errors"
	"image"
)

// Tesseract backend stub. Build with -tags tesseract (libtesseract required)
// for the real implementation.

// ErrTesseractUnavailable reports a binary built without the tesseract tag.
var ErrTesseractUnavailable = errors.New("tesseract backend not compiled in (build with -tags tesseract)")

// Tesseract is the alternate OCR backend.
type Tesseract struct{}

// NewTesseract fails in builds without the tesseract tag.
func NewTesseract() (*Tesseract, error) { return nil, ErrTesseractUnavailable }

// Recognize implements Recognizer.
func (t *Tesseract) Recognize(img image.Image) (string, float64, error) {
	return "", 0, ErrTesseractUnavailable
}

// Close releases nothing.
func (t *Tesseract) Close() error { return nil }
