package browser

import (
	"errors"
	"fmt"
)

var (
	// ErrNotExist is matched by every ExistenceError.
	ErrNotExist = errors.New("element does not exist")
	// ErrUnsupportedCommand is returned by Invoke when the document rejects the command.
	ErrUnsupportedCommand = errors.New("document command not supported")
	// ErrHeadless is returned by Invoke(SaveAs) on a tab with no window to
	// host the native dialog.
	ErrHeadless = errors.New("save dialog needs a visible browser window")
)

// ExistenceError reports that a handle no longer refers to a live element.
type ExistenceError struct {
	Selector string
	Err      error
}

func (e *ExistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("element %q does not exist: %v", e.Selector, e.Err)
	}
	return fmt.Sprintf("element %q does not exist", e.Selector)
}

func (e *ExistenceError) Is(target error) bool { return target == ErrNotExist }

func (e *ExistenceError) Unwrap() error { return e.Err }

// PropertyError reports a failed native property get or set.
type PropertyError struct {
	Op   string // "get" or "set"
	Name string
	Err  error
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("failed to %s property %s: %v", e.Op, e.Name, e.Err)
}

func (e *PropertyError) Unwrap() error { return e.Err }

// NavigationError reports that the browser could not change location.
type NavigationError struct {
	Op  string // "goto" or "back"
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("navigation %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("navigation %s %s failed: %v", e.Op, e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }
