//go:build windows

package win32

import (
	"fmt"

	"github.com/mj1618/webimage/internal/platform"
)

// Win32ActionPerformer implements the platform.ActionPerformer interface for Windows.
type Win32ActionPerformer struct{}

// NewActionPerformer creates a new Windows action performer.
func NewActionPerformer() *Win32ActionPerformer {
	return &Win32ActionPerformer{}
}

func (p *Win32ActionPerformer) PerformAction(opts platform.ActionOptions) error {
	if opts.Handle == 0 {
		return fmt.Errorf("element %d has no native handle", opts.ID)
	}
	switch opts.Action {
	case "press":
		if err := clickButton(opts.Handle); err != nil {
			return fmt.Errorf("failed to press element %d: %w", opts.ID, err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported action %q (supported: press)", opts.Action)
	}
}
