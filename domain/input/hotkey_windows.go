//go:build windows

package input

import (
	"strings"
	"time"

	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")
)

// ParseVK converts a key token (e.g. "F11", "Q") into a Windows virtual-key
// code. Recognizes F1..F12 and single letters A..Z. Unknown tokens return
// VK_F11.
func ParseVK(key string) byte {
	k := strings.ToUpper(strings.TrimSpace(key))
	if len(k) == 2 && k[0] == 'F' {
		n := int(k[1] - '0')
		if n >= 1 && n <= 9 {
			return byte(0x70 + (n - 1)) // VK_F1=0x70
		}
	}
	switch k {
	case "F10":
		return 0x79
	case "F11":
		return 0x7A
	case "F12":
		return 0x7B
	}
	if len(k) == 1 && k[0] >= 'A' && k[0] <= 'Z' {
		return k[0] // 'A'..'Z' match VK codes
	}
	return 0x7A
}

// WatchCancelKey polls the hotkey and trips the canceller on first press.
// The goroutine exits once cancellation fires.
func WatchCancelKey(key string, c *Canceller) {
	vk := ParseVK(key)
	go func() {
		for !c.Cancelled() {
			state, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
			if state&0x8000 != 0 {
				c.Cancel()
				return
			}
			time.Sleep(50 * time.Millisecond)
		}
	}()
}
