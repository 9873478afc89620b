//go:build windows

package window

import (
	"strings"
	"syscall"
	"time"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Win32 window locator. Enumerates top-level visible windows, matches the
// title substring, restores and foregrounds the match, then reads the client
// rectangle in screen coordinates.

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows         = user32.NewProc("EnumWindows")
	procGetWindowTextW      = user32.NewProc("GetWindowTextW")
	procIsWindowVisible     = user32.NewProc("IsWindowVisible")
	procGetClientRect       = user32.NewProc("GetClientRect")
	procClientToScreen      = user32.NewProc("ClientToScreen")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
	procShowWindow          = user32.NewProc("ShowWindow")
	procSetProcessDPIAware  = user32.NewProc("SetProcessDPIAware")
)

const swRestore = 9

type win32Rect struct {
	Left, Top, Right, Bottom int32
}

type win32Point struct {
	X, Y int32
}

// Win32Locator implements Locator on the Win32 API.
type Win32Locator struct{}

// NewLocator returns the platform window locator.
func NewLocator() Locator { return Win32Locator{} }

// Locate finds a visible window whose title contains title, restores and
// foregrounds it, and returns its client-area geometry.
func (Win32Locator) Locate(title string) (Geometry, error) {
	// Without DPI awareness GetClientRect reports virtualized coordinates
	// and every layout offset is wrong on scaled displays.
	_, _, _ = procSetProcessDPIAware.Call()

	var match uintptr
	cb := syscall.NewCallback(func(hwnd uintptr, lparam uintptr) uintptr {
		vis, _, _ := procIsWindowVisible.Call(hwnd)
		if vis == 0 {
			return 1 // continue
		}
		const maxChars = 256
		buf := make([]uint16, maxChars)
		r, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
		if r == 0 {
			return 1
		}
		var end int
		for i, v := range buf {
			if v == 0 {
				end = i
				break
			}
		}
		if end == 0 {
			end = int(r)
		}
		got := strings.TrimSpace(string(utf16.Decode(buf[:end])))
		if got != "" && strings.Contains(got, title) {
			match = hwnd
			return 0 // stop enumeration
		}
		return 1
	})
	_, _, _ = procEnumWindows.Call(cb, 0)
	if match == 0 {
		return Geometry{}, ErrWindowNotFound
	}

	_, _, _ = procShowWindow.Call(match, swRestore)
	_, _, _ = procSetForegroundWindow.Call(match)
	// The window needs a moment to restore before its rect is trustworthy.
	time.Sleep(500 * time.Millisecond)

	var rect win32Rect
	if r, _, _ := procGetClientRect.Call(match, uintptr(unsafe.Pointer(&rect))); r == 0 {
		return Geometry{}, ErrWindowNotFound
	}
	origin := win32Point{}
	_, _, _ = procClientToScreen.Call(match, uintptr(unsafe.Pointer(&origin)))

	return NewGeometry(
		int(origin.X),
		int(origin.Y),
		int(rect.Right-rect.Left),
		int(rect.Bottom-rect.Top),
	)
}
