package dialog

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func TestHandshakeLines(t *testing.T) {
	var buf bytes.Buffer
	if err := writeAttached(&buf, "Save Picture"); err != nil {
		t.Fatal(err)
	}
	if err := writeDone(&buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "attached Save Picture\ndone\n" {
		t.Errorf("handshake = %q", got)
	}
}

func TestParseLine(t *testing.T) {
	ev, ok := parseLine("attached Save Picture\r")
	if !ok || ev.kind != lineAttached || ev.title != "Save Picture" {
		t.Errorf("attached: %+v %v", ev, ok)
	}
	if _, ok := parseLine("some debug chatter"); ok {
		t.Error("unknown lines should be ignored")
	}
	if ev, ok := parseLine("done"); !ok || ev.kind != lineDone {
		t.Errorf("done: %+v %v", ev, ok)
	}
}

func TestWriteFailureRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		stage     Stage
		isTimeout bool
	}{
		{
			name:      "attach timeout",
			err:       &AutomationError{Stage: StageAttach, Err: fmt.Errorf("window did not appear: %w", ErrTimeout)},
			stage:     StageAttach,
			isTimeout: true,
		},
		{
			name:  "missing control",
			err:   &AutomationError{Stage: StageControls, Err: errors.New("no Edit control at index 0")},
			stage: StageControls,
		},
		{
			name:  "plain error",
			err:   errors.New("multi\nline"),
			stage: StageControls,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteFailure(&buf, tt.err); err != nil {
				t.Fatal(err)
			}
			line := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
			if bytes.ContainsRune(line, '\n') {
				t.Fatalf("failure spans lines: %q", buf.String())
			}
			ev, ok := parseLine(string(line))
			if !ok || ev.failure == nil {
				t.Fatalf("failure line not parsed: %q", line)
			}
			if ev.failure.Stage != tt.stage {
				t.Errorf("stage = %s, want %s", ev.failure.Stage, tt.stage)
			}
			if got := errors.Is(ev.failure, ErrTimeout); got != tt.isTimeout {
				t.Errorf("errors.Is(ErrTimeout) = %v, want %v", got, tt.isTimeout)
			}
		})
	}
}
