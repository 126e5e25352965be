package dialog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mj1618/webimage/internal/model"
	"github.com/mj1618/webimage/internal/platform"
	"github.com/mj1618/webimage/internal/poll"
	"go.uber.org/zap"
)

// Fill attaches to the dialog named by req, types the path into its text field
// and presses its confirm button, reporting progress on out. It runs inside
// the filler process.
func Fill(ctx context.Context, p *platform.Provider, req Request, out io.Writer, logger *zap.Logger) error {
	if err := req.Validate(); err != nil {
		return &AutomationError{Stage: StageLaunch, Err: err}
	}
	opts := poll.Options{Interval: req.PollInterval, MaxInterval: req.MaxPollInterval, Timeout: req.AttachTimeout}

	win, err := findWindow(ctx, p.Reader, req.Title, opts)
	if err != nil {
		return &AutomationError{Stage: StageAttach, Err: fmt.Errorf("window %q did not appear: %w", req.Title, err)}
	}
	logger.Debug("Attached to dialog.", zap.String("window", win.Title), zap.Int("id", win.ID))
	if err := writeAttached(out, win.Title); err != nil {
		return &AutomationError{Stage: StageAttach, Err: fmt.Errorf("failed to report attach: %w", err)}
	}

	// The window can appear before its controls are created.
	var field, button *model.Element
	err = poll.Until(ctx, opts, func(ctx context.Context) (bool, error) {
		elements, err := p.Reader.ReadElements(platform.ReadOptions{Handle: win.Handle, WindowID: win.ID})
		if err != nil {
			return false, err
		}
		field = model.FindByClass(elements, req.ControlClass, req.ControlIndex)
		button = model.FindByTitle(elements, "btn", req.ButtonLabel)
		switch {
		case field == nil:
			return false, fmt.Errorf("no %s control at index %d", req.ControlClass, req.ControlIndex)
		case button == nil:
			return false, fmt.Errorf("no button labelled %q", req.ButtonLabel)
		}
		return true, nil
	})
	if err != nil {
		return &AutomationError{Stage: StageControls, Err: err}
	}

	if err := p.ValueSetter.SetValue(platform.SetValueOptions{Handle: field.Handle, ID: field.ID, Value: req.Path}); err != nil {
		return &AutomationError{Stage: StageControls, Err: fmt.Errorf("failed to set path: %w", err)}
	}
	if err := p.ActionPerformer.PerformAction(platform.ActionOptions{Handle: button.Handle, ID: button.ID, Action: "press"}); err != nil {
		return &AutomationError{Stage: StageControls, Err: fmt.Errorf("failed to press %q: %w", req.ButtonLabel, err)}
	}
	logger.Debug("Confirmed dialog.", zap.String("path", req.Path))

	if err := writeDone(out); err != nil {
		return &AutomationError{Stage: StageExit, Err: fmt.Errorf("failed to report completion: %w", err)}
	}
	return nil
}

// findWindow polls until a window whose title contains title exists. An exact
// title match wins over a substring match.
func findWindow(ctx context.Context, r platform.Reader, title string, opts poll.Options) (model.Window, error) {
	var win model.Window
	err := poll.Until(ctx, opts, func(ctx context.Context) (bool, error) {
		windows, err := r.ListWindows(platform.ListOptions{Title: title})
		if err != nil {
			return false, err
		}
		if len(windows) == 0 {
			return false, nil
		}
		win = windows[0]
		for _, w := range windows {
			if strings.EqualFold(w.Title, title) {
				win = w
				break
			}
		}
		return true, nil
	})
	return win, err
}
