// Package win32 provides Windows platform support using the user32 window and
// control APIs. Controls in other processes are read and driven with window
// messages (WM_GETTEXT, WM_SETTEXT, BM_CLICK), which the system marshals across
// process boundaries.
package win32
