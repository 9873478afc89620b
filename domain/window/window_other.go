//go:build !windows

package window

import (
	"github.com/go-vgo/robotgo"
)

// RobotgoLocator implements Locator via robotgo's process/window queries.
type RobotgoLocator struct{}

// NewLocator returns the platform window locator.
func NewLocator() Locator { return RobotgoLocator{} }

// Locate finds the first process whose name matches title, activates it,
// and returns its window bounds.
func (RobotgoLocator) Locate(title string) (Geometry, error) {
	pids, err := robotgo.FindIds(title)
	if err != nil {
		return Geometry{}, err
	}
	if len(pids) == 0 {
		return Geometry{}, ErrWindowNotFound
	}

	pid := pids[0]
	if err := robotgo.ActivePid(pid); err != nil {
		return Geometry{}, err
	}
	x, y, w, h := robotgo.GetBounds(pid)
	return NewGeometry(x, y, w, h)
}
