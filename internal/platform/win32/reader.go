//go:build windows

package win32

import (
	"fmt"

	"github.com/mj1618/webimage/internal/model"
	"github.com/mj1618/webimage/internal/platform"
)

// Win32Reader implements the platform.Reader interface for Windows.
type Win32Reader struct{}

// NewReader creates a new Windows reader.
func NewReader() *Win32Reader {
	return &Win32Reader{}
}

// ListWindows returns visible top-level windows filtered per ListOptions.
func (r *Win32Reader) ListWindows(opts platform.ListOptions) ([]model.Window, error) {
	handles, err := topLevelWindows()
	if err != nil {
		return nil, err
	}
	front := foregroundWindow()

	windows := []model.Window{}
	for _, hwnd := range handles {
		if !isVisible(hwnd) {
			continue
		}
		title := windowText(hwnd)
		pid := windowPID(hwnd)
		app := processName(pid)
		if !opts.Matches(title, pid, app) {
			continue
		}
		windows = append(windows, model.Window{
			App:     app,
			PID:     pid,
			Title:   title,
			Class:   className(hwnd),
			ID:      int(hwnd),
			Bounds:  windowBounds(hwnd),
			Focused: hwnd == front,
			Handle:  hwnd,
		})
	}
	return windows, nil
}

// ReadElements returns the control tree of one window. The window itself is
// the single root element; IDs are assigned in enumeration order.
func (r *Win32Reader) ReadElements(opts platform.ReadOptions) ([]model.Element, error) {
	root, err := r.resolveWindow(opts)
	if err != nil {
		return nil, err
	}

	nextID := 1
	newElement := func(hwnd uintptr) *model.Element {
		class := className(hwnd)
		el := &model.Element{
			ID:     nextID,
			Role:   model.MapRole(class),
			Class:  class,
			Bounds: windowBounds(hwnd),
			Handle: hwnd,
		}
		nextID++
		text := windowText(hwnd)
		if el.Role == "input" || el.Role == "combo" {
			el.Value = text
		} else {
			el.Title = text
		}
		if !isEnabled(hwnd) {
			disabled := false
			el.Enabled = &disabled
		}
		return el
	}

	rootEl := newElement(root)
	rootEl.Role = "window"

	// EnumChildWindows reports descendants depth-first, so attaching each
	// handle to its parent preserves document order.
	type node struct {
		el       *model.Element
		children []uintptr
		depth    int
	}
	nodes := map[uintptr]*node{root: {el: rootEl}}
	for _, hwnd := range descendantWindows(root) {
		parent, ok := nodes[parentOf(hwnd)]
		if !ok {
			continue
		}
		depth := parent.depth + 1
		if opts.Depth > 0 && depth > opts.Depth {
			continue
		}
		nodes[hwnd] = &node{el: newElement(hwnd), depth: depth}
		parent.children = append(parent.children, hwnd)
	}

	var build func(hwnd uintptr) model.Element
	build = func(hwnd uintptr) model.Element {
		n := nodes[hwnd]
		el := *n.el
		for _, c := range n.children {
			el.Children = append(el.Children, build(c))
		}
		return el
	}
	return []model.Element{build(root)}, nil
}

// resolveWindow finds the target window handle for a read.
func (r *Win32Reader) resolveWindow(opts platform.ReadOptions) (uintptr, error) {
	if opts.Handle != 0 {
		return opts.Handle, nil
	}
	if opts.WindowID != 0 {
		return uintptr(opts.WindowID), nil
	}
	if opts.Window == "" {
		return 0, fmt.Errorf("no target specified: use --title or --window-id")
	}
	windows, err := r.ListWindows(platform.ListOptions{Title: opts.Window})
	if err != nil {
		return 0, err
	}
	if len(windows) == 0 {
		return 0, fmt.Errorf("no window found with title containing %q", opts.Window)
	}
	return windows[0].Handle, nil
}
