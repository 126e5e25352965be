package platform

import "github.com/mj1618/webimage/internal/model"

// Reader reads top-level windows and their control trees from the OS.
type Reader interface {
	// ListWindows returns all top-level windows, optionally filtered.
	ListWindows(opts ListOptions) ([]model.Window, error)

	// ReadElements returns the control tree of the specified window.
	ReadElements(opts ReadOptions) ([]model.Element, error)
}

// ValueSetter sets the text of a native control directly, without
// simulating keystrokes.
type ValueSetter interface {
	SetValue(opts SetValueOptions) error
}

// ActionPerformer performs actions (e.g. press) directly on native controls.
type ActionPerformer interface {
	PerformAction(opts ActionOptions) error
}
