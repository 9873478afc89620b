//go:build !windows

package input

// WatchCancelKey is a no-op off Windows; cancellation arrives through the
// interrupt signal handler wired in main.
func WatchCancelKey(key string, c *Canceller) {}
