package dialog

import (
	"fmt"

	"github.com/mj1618/webimage/internal/poll"
)

// ErrTimeout matches every wait that ran out of time, in either process.
var ErrTimeout = poll.ErrTimeout

// Stage names the step of the dialog automation that failed.
type Stage string

const (
	StageLaunch   Stage = "launch"   // the filler could not be started
	StageAttach   Stage = "attach"   // the dialog window never appeared
	StageControls Stage = "controls" // the text field or button was missing or rejected input
	StageExit     Stage = "exit"     // the filler hung or exited without confirming
)

// AutomationError reports a dialog automation failure.
type AutomationError struct {
	Stage  Stage
	Err    error
	Stderr string // Filler stderr, when the failure came from the filler process
}

func (e *AutomationError) Error() string {
	msg := fmt.Sprintf("dialog automation failed at %s: %v", e.Stage, e.Err)
	if e.Stderr != "" {
		msg += " (stderr: " + e.Stderr + ")"
	}
	return msg
}

func (e *AutomationError) Unwrap() error { return e.Err }
