package input

import "sync/atomic"

// Driver issues synthetic pointer events. Calls are fire-and-forget: no
// Driver method waits for the UI to react. Settle timing is the scan
// controller's concern.
type Driver interface {
	// MoveAndClick moves the pointer to the screen point and left-clicks.
	MoveAndClick(x, y int)
	// Scroll scrolls the wheel down by the given number of ticks
	// (negative scrolls up).
	Scroll(ticks int)
}

// Canceller is the single cross-goroutine signal in the scanner: listeners
// (hotkey poller, signal handler) set it, the controller polls it between
// whole-item steps. It is never blocked on.
type Canceller struct {
	flag atomic.Bool
}

// Cancel requests a graceful stop.
func (c *Canceller) Cancel() { c.flag.Store(true) }

// Cancelled reports whether a stop has been requested.
func (c *Canceller) Cancelled() bool { return c.flag.Load() }
