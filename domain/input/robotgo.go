package input

import (
	"time"

	"github.com/go-vgo/robotgo"
)

// RobotgoDriver implements Driver on robotgo's synthetic input.
type RobotgoDriver struct {
	// ClickDelay separates the move from the click so the hover state
	// registers before the press lands.
	ClickDelay time.Duration
}

// NewDriver returns the default pointer driver.
func NewDriver() *RobotgoDriver {
	return &RobotgoDriver{ClickDelay: 20 * time.Millisecond}
}

// MoveAndClick moves the pointer to (x, y) and left-clicks.
func (d *RobotgoDriver) MoveAndClick(x, y int) {
	robotgo.Move(x, y)
	if d.ClickDelay > 0 {
		time.Sleep(d.ClickDelay)
	}
	robotgo.Click("left")
}

// Scroll scrolls the wheel down by ticks (negative scrolls up).
func (d *RobotgoDriver) Scroll(ticks int) {
	robotgo.Scroll(0, -ticks)
}
