//go:build windows

package win32

import (
	"fmt"
	"path/filepath"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procEnumWindows              = user32.NewProc("EnumWindows")
	procEnumChildWindows         = user32.NewProc("EnumChildWindows")
	procGetClassNameW            = user32.NewProc("GetClassNameW")
	procGetParent                = user32.NewProc("GetParent")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowRect            = user32.NewProc("GetWindowRect")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procIsWindowEnabled          = user32.NewProc("IsWindowEnabled")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procPostMessageW             = user32.NewProc("PostMessageW")
	procSendMessageTimeoutW      = user32.NewProc("SendMessageTimeoutW")
)

const (
	wmSetText       = 0x000C
	wmGetText       = 0x000D
	wmGetTextLength = 0x000E
	bmClick         = 0x00F5

	smtoAbortIfHung = 0x0002

	// messageTimeoutMs bounds every cross-process SendMessage so a hung
	// dialog cannot block the filler forever.
	messageTimeoutMs = 500

	maxClassName = 256
)

type rect struct {
	Left, Top, Right, Bottom int32
}

// EnumWindows and EnumChildWindows report handles through a callback. Go
// limits the number of callbacks a process may create, so one callback is
// created up front and results are collected under enumMu.
var (
	enumMu       sync.Mutex
	enumHandles  []uintptr
	enumCallback = windows.NewCallback(func(hwnd uintptr, _ uintptr) uintptr {
		enumHandles = append(enumHandles, hwnd)
		return 1
	})
)

// topLevelWindows returns all top-level window handles in Z order.
func topLevelWindows() ([]uintptr, error) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumHandles = nil
	r, _, err := procEnumWindows.Call(enumCallback, 0)
	if r == 0 {
		return nil, fmt.Errorf("EnumWindows failed: %w", err)
	}
	out := enumHandles
	enumHandles = nil
	return out, nil
}

// descendantWindows returns every descendant of parent, depth-first.
func descendantWindows(parent uintptr) []uintptr {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumHandles = nil
	// The return value of EnumChildWindows is not used.
	_, _, _ = procEnumChildWindows.Call(parent, enumCallback, 0)
	out := enumHandles
	enumHandles = nil
	return out
}

func className(hwnd uintptr) string {
	buf := make([]uint16, maxClassName)
	n, _, _ := procGetClassNameW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

// windowText reads a window's text with WM_GETTEXT. Unlike GetWindowText this
// also returns the contents of edit controls owned by other processes.
func windowText(hwnd uintptr) string {
	var length uintptr
	r, _, _ := procSendMessageTimeoutW.Call(hwnd, wmGetTextLength, 0, 0,
		smtoAbortIfHung, messageTimeoutMs, uintptr(unsafe.Pointer(&length)))
	if r == 0 || length == 0 {
		return ""
	}
	buf := make([]uint16, length+1)
	var copied uintptr
	r, _, _ = procSendMessageTimeoutW.Call(hwnd, wmGetText, uintptr(len(buf)), uintptr(unsafe.Pointer(&buf[0])),
		smtoAbortIfHung, messageTimeoutMs, uintptr(unsafe.Pointer(&copied)))
	if r == 0 {
		return ""
	}
	return windows.UTF16ToString(buf)
}

// setWindowText replaces a control's text with WM_SETTEXT.
func setWindowText(hwnd uintptr, text string) error {
	p, err := windows.UTF16PtrFromString(text)
	if err != nil {
		return fmt.Errorf("invalid text: %w", err)
	}
	var result uintptr
	r, _, callErr := procSendMessageTimeoutW.Call(hwnd, wmSetText, 0, uintptr(unsafe.Pointer(p)),
		smtoAbortIfHung, messageTimeoutMs, uintptr(unsafe.Pointer(&result)))
	if r == 0 {
		return fmt.Errorf("WM_SETTEXT timed out or failed: %w", callErr)
	}
	if result == 0 {
		return fmt.Errorf("WM_SETTEXT rejected by control")
	}
	return nil
}

// clickButton posts BM_CLICK so the caller is not blocked while the dialog
// processes the click and closes.
func clickButton(hwnd uintptr) error {
	r, _, err := procPostMessageW.Call(hwnd, bmClick, 0, 0)
	if r == 0 {
		return fmt.Errorf("PostMessage(BM_CLICK) failed: %w", err)
	}
	return nil
}

func windowBounds(hwnd uintptr) [4]int {
	var rc rect
	r, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&rc)))
	if r == 0 {
		return [4]int{}
	}
	return [4]int{int(rc.Left), int(rc.Top), int(rc.Right - rc.Left), int(rc.Bottom - rc.Top)}
}

func windowPID(hwnd uintptr) int {
	var pid uint32
	_, _, _ = procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	return int(pid)
}

func parentOf(hwnd uintptr) uintptr {
	r, _, _ := procGetParent.Call(hwnd)
	return r
}

func foregroundWindow() uintptr {
	r, _, _ := procGetForegroundWindow.Call()
	return r
}

func isVisible(hwnd uintptr) bool {
	r, _, _ := procIsWindowVisible.Call(hwnd)
	return r != 0
}

func isEnabled(hwnd uintptr) bool {
	r, _, _ := procIsWindowEnabled.Call(hwnd)
	return r != 0
}

// processName returns the executable base name for pid, or "" when the
// process cannot be queried.
func processName(pid int) string {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(h)

	buf := make([]uint16, windows.MAX_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return ""
	}
	return filepath.Base(windows.UTF16ToString(buf[:size]))
}
