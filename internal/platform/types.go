package platform

import "strings"

// ListOptions controls top-level window listing.
type ListOptions struct {
	Title string // Filter by window title substring (case-insensitive)
	PID   int    // Filter by PID (0 = unset)
	App   string // Filter by app (executable) name
}

// Matches reports whether a window with the given title, PID and app name
// passes the filters.
func (o ListOptions) Matches(title string, pid int, app string) bool {
	if o.PID != 0 && pid != o.PID {
		return false
	}
	if o.App != "" && !strings.EqualFold(app, o.App) {
		return false
	}
	if o.Title != "" && !strings.Contains(strings.ToLower(title), strings.ToLower(o.Title)) {
		return false
	}
	return true
}

// ReadOptions controls which window's controls to read.
type ReadOptions struct {
	Window   string  // Window title substring
	WindowID int     // System window ID (0 = unset)
	Handle   uintptr // Native window handle (0 = unset); wins over Window/WindowID
	Depth    int     // Max traversal depth (0 = unlimited)
}

// SetValueOptions identifies a control and the text to place in it.
type SetValueOptions struct {
	Handle uintptr // Native handle of the control, from a prior read
	ID     int     // Element ID, used in error messages
	Value  string
}

// ActionOptions identifies a control and the action to perform on it.
type ActionOptions struct {
	Handle uintptr // Native handle of the control, from a prior read
	ID     int     // Element ID, used in error messages
	Action string  // Action to perform: "press"
}
