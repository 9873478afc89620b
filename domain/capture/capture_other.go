//go:build !windows

package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// ScreenshotSource implements Source on the portable screenshot library
// (X11 on Linux, CoreGraphics on macOS).
type ScreenshotSource struct{}

// NewSource returns the platform capture source.
func NewSource() Source { return ScreenshotSource{} }

// Capture grabs rect in screen coordinates.
func (ScreenshotSource) Capture(rect image.Rectangle) (*image.RGBA, error) {
	if rect.Empty() {
		return nil, fmt.Errorf("%w: empty rect", ErrCaptureUnavailable)
	}
	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)
	}
	return img, nil
}
