package dialog

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Handshake lines the filler writes to stdout, one per line:
//
//	attached <window title>
//	done
//	failed <stage> <message>
//	timeout <stage> <message>
const (
	lineAttached = "attached"
	lineDone     = "done"
	lineFailed   = "failed"
	lineTimeout  = "timeout"
)

func writeAttached(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w, "%s %s\n", lineAttached, oneLine(title))
	return err
}

func writeDone(w io.Writer) error {
	_, err := fmt.Fprintln(w, lineDone)
	return err
}

// WriteFailure reports err to the parent process. Errors other than an
// AutomationError are reported as a controls failure.
func WriteFailure(w io.Writer, err error) error {
	stage := StageControls
	var ae *AutomationError
	if errors.As(err, &ae) {
		stage = ae.Stage
		err = ae.Err
	}
	kind := lineFailed
	if errors.Is(err, ErrTimeout) {
		kind = lineTimeout
	}
	_, werr := fmt.Fprintf(w, "%s %s %s\n", kind, stage, oneLine(err.Error()))
	return werr
}

// event is one parsed handshake line.
type event struct {
	kind    string
	title   string
	failure *AutomationError
}

func parseLine(line string) (event, bool) {
	word, rest, _ := strings.Cut(strings.TrimRight(line, "\r"), " ")
	switch word {
	case lineAttached:
		return event{kind: lineAttached, title: rest}, true
	case lineDone:
		return event{kind: lineDone}, true
	case lineFailed, lineTimeout:
		stage, msg, _ := strings.Cut(rest, " ")
		err := &remoteError{msg: msg, timeout: word == lineTimeout}
		return event{kind: word, failure: &AutomationError{Stage: Stage(stage), Err: err}}, true
	}
	return event{}, false
}

// remoteError carries a failure message reported by the filler.
type remoteError struct {
	msg     string
	timeout bool
}

func (e *remoteError) Error() string { return e.msg }

func (e *remoteError) Is(target error) bool { return e.timeout && target == ErrTimeout }

func oneLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
