package window

import (
	"errors"
	"fmt"
)

// Geometry is the client rectangle of the target window in screen
// coordinates, together with its classified aspect ratio.
type Geometry struct {
	Left   int
	Top    int
	Width  int
	Height int
	Aspect AspectClass
}

// AspectClass enumerates the window shapes the layout tables cover.
type AspectClass int

const (
	AspectUnknown AspectClass = iota
	Aspect16x9
	Aspect8x5
	Aspect4x3
	Aspect43x18
	Aspect7x3
)

func (a AspectClass) String() string {
	switch a {
	case Aspect16x9:
		return "16:9"
	case Aspect8x5:
		return "8:5"
	case Aspect4x3:
		return "4:3"
	case Aspect43x18:
		return "43:18"
	case Aspect7x3:
		return "7:3"
	default:
		return "unknown"
	}
}

// ErrWindowNotFound is returned when no window matches the requested title.
var ErrWindowNotFound = errors.New("window not found")

// Locator finds the target window and reports its client geometry.
// Platform adapters implement this; the scanner core only sees the interface.
type Locator interface {
	// Locate finds a visible window whose title contains the given string,
	// brings it to the foreground where the platform allows, and returns
	// its client-area geometry.
	Locate(title string) (Geometry, error)
}

// ClassifyAspect maps exact width:height ratios onto a supported class.
// Ratios outside the table return AspectUnknown.
func ClassifyAspect(width, height int) AspectClass {
	switch {
	case height*43 == width*18:
		return Aspect43x18
	case height*16 == width*9:
		return Aspect16x9
	case height*8 == width*5:
		return Aspect8x5
	case height*4 == width*3:
		return Aspect4x3
	case height*7 == width*3:
		return Aspect7x3
	default:
		return AspectUnknown
	}
}

// NewGeometry builds a Geometry from a raw rectangle, classifying its aspect.
func NewGeometry(left, top, width, height int) (Geometry, error) {
	if width <= 0 || height <= 0 {
		return Geometry{}, fmt.Errorf("invalid window rect %dx%d", width, height)
	}
	return Geometry{
		Left:   left,
		Top:    top,
		Width:  width,
		Height: height,
		Aspect: ClassifyAspect(width, height),
	}, nil
}
