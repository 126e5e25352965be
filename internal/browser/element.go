package browser

import (
	"context"
	"fmt"
)

// Evaluator runs a page script with arguments and decodes its reply.
type Evaluator interface {
	Eval(ctx context.Context, script string, args ...any) (ScriptResult, error)
}

// ScriptElement returns a handle that re-resolves selector through the page
// scripts on every call, so it stays live exactly as long as the selector
// matches.
func ScriptElement(ev Evaluator, selector string) ElementHandle {
	return &scriptElement{ev: ev, selector: selector}
}

type scriptElement struct {
	ev       Evaluator
	selector string
}

func (e *scriptElement) AssertExists(ctx context.Context) error {
	res, err := e.ev.Eval(ctx, ExistsScript, e.selector)
	if err != nil {
		return &ExistenceError{Selector: e.selector, Err: err}
	}
	if !res.Exists {
		return &ExistenceError{Selector: e.selector}
	}
	return nil
}

func (e *scriptElement) Property(ctx context.Context, name string) (any, error) {
	res, err := e.ev.Eval(ctx, GetPropertyScript, e.selector, name)
	if err != nil {
		return nil, &PropertyError{Op: "get", Name: name, Err: err}
	}
	if !res.Exists {
		return nil, &ExistenceError{Selector: e.selector}
	}
	return res.Value, nil
}

func (e *scriptElement) SetProperty(ctx context.Context, name string, value any) error {
	res, err := e.ev.Eval(ctx, SetPropertyScript, e.selector, name, value)
	if err != nil {
		return &PropertyError{Op: "set", Name: name, Err: err}
	}
	if !res.Exists {
		return &ExistenceError{Selector: e.selector}
	}
	return nil
}

// InvokeCommand runs document.execCommand through ev.
func InvokeCommand(ctx context.Context, ev Evaluator, command string) error {
	res, err := ev.Eval(ctx, InvokeScript, command)
	if err != nil {
		return fmt.Errorf("failed to invoke %s: %w", command, err)
	}
	if !res.OK {
		return fmt.Errorf("%w: %s", ErrUnsupportedCommand, command)
	}
	return nil
}

// PressSave opens a Chromium save dialog with press, which sends the save
// shortcut. Chromium rejects execCommand("SaveAs"), and a headless tab has no
// window for the dialog.
func PressSave(ctx context.Context, headless bool, press func(context.Context) error) error {
	if headless {
		return fmt.Errorf("%w: %s: %w", ErrUnsupportedCommand, SaveAs, ErrHeadless)
	}
	if err := press(ctx); err != nil {
		return fmt.Errorf("failed to press the save shortcut: %w", err)
	}
	return nil
}
