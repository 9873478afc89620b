package capture

import (
	"errors"
	"image"
)

// ErrCaptureUnavailable reports that the requested rectangle cannot be
// captured right now (window occluded, minimized, or off-screen). Retrying
// is the caller's policy, never this package's.
var ErrCaptureUnavailable = errors.New("capture unavailable")

// Source captures a still image of a screen rectangle. It has no knowledge
// of what the pixels mean and performs no retries.
type Source interface {
	Capture(rect image.Rectangle) (*image.RGBA, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(rect image.Rectangle) (*image.RGBA, error)

// Capture implements Source.
func (f SourceFunc) Capture(rect image.Rectangle) (*image.RGBA, error) { return f(rect) }
