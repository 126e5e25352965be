package browser

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeEvaluator struct {
	reply   string
	err     error
	scripts []string
	args    [][]any
}

func (f *fakeEvaluator) Eval(_ context.Context, script string, args ...any) (ScriptResult, error) {
	f.scripts = append(f.scripts, script)
	f.args = append(f.args, args)
	if f.err != nil {
		return ScriptResult{}, f.err
	}
	return DecodeResult(f.reply)
}

func TestScriptElementProperty(t *testing.T) {
	ev := &fakeEvaluator{reply: `{"exists":true,"value":"http://example.com/pic.gif"}`}
	h := ScriptElement(ev, "#logo")

	src, err := String(context.Background(), h, "src")
	if err != nil {
		t.Fatal(err)
	}
	if src != "http://example.com/pic.gif" {
		t.Errorf("src = %q", src)
	}
	if ev.scripts[0] != GetPropertyScript {
		t.Error("expected the property script")
	}
	if ev.args[0][0] != "#logo" || ev.args[0][1] != "src" {
		t.Errorf("unexpected args %v", ev.args[0])
	}
}

func TestScriptElementMissing(t *testing.T) {
	ev := &fakeEvaluator{reply: `{"exists":false}`}
	h := ScriptElement(ev, "#logo")
	ctx := context.Background()

	if err := h.AssertExists(ctx); !errors.Is(err, ErrNotExist) {
		t.Errorf("AssertExists: expected ErrNotExist, got %v", err)
	}
	if _, err := h.Property(ctx, "src"); !errors.Is(err, ErrNotExist) {
		t.Errorf("Property: expected ErrNotExist, got %v", err)
	}
	if err := h.SetProperty(ctx, "border", 1); !errors.Is(err, ErrNotExist) {
		t.Errorf("SetProperty: expected ErrNotExist, got %v", err)
	}
}

func TestScriptElementSetFailure(t *testing.T) {
	cause := errors.New("target closed")
	h := ScriptElement(&fakeEvaluator{err: cause}, "#logo")

	err := h.SetProperty(context.Background(), "border", 1)
	var pe *PropertyError
	if !errors.As(err, &pe) || pe.Op != "set" {
		t.Fatalf("expected set PropertyError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("cause should be reachable")
	}
}

func TestInvokeCommand(t *testing.T) {
	ctx := context.Background()
	if err := InvokeCommand(ctx, &fakeEvaluator{reply: `{"ok":true}`}, "SaveAs"); err != nil {
		t.Fatal(err)
	}
	err := InvokeCommand(ctx, &fakeEvaluator{reply: `{"ok":false}`}, "SaveAs")
	if !errors.Is(err, ErrUnsupportedCommand) {
		t.Errorf("expected ErrUnsupportedCommand, got %v", err)
	}
}

func TestPressSave(t *testing.T) {
	ctx := context.Background()

	pressed := 0
	press := func(context.Context) error {
		pressed++
		return nil
	}
	if err := PressSave(ctx, false, press); err != nil {
		t.Fatal(err)
	}
	if pressed != 1 {
		t.Errorf("expected the shortcut to be pressed once, got %d", pressed)
	}

	err := PressSave(ctx, true, press)
	if !errors.Is(err, ErrHeadless) || !errors.Is(err, ErrUnsupportedCommand) {
		t.Errorf("expected a headless rejection, got %v", err)
	}
	if pressed != 1 {
		t.Error("a headless tab must not receive the shortcut")
	}

	err = PressSave(ctx, false, func(context.Context) error { return errors.New("target closed") })
	if err == nil || !strings.Contains(err.Error(), "save shortcut") {
		t.Errorf("expected a press failure, got %v", err)
	}
}
