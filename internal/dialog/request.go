// Package dialog drives the native "Save Picture" dialog from a second
// process. The parent builds a Request and starts the filler with Launcher;
// the filler (the hidden fill-dialog command) calls Fill.
package dialog

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mj1618/webimage/internal/config"
	"github.com/spf13/pflag"
)

// Values that must match the OS dialog exactly.
const (
	DefaultTitle        = "Save Picture"
	DefaultControlClass = "Edit"
	DefaultControlIndex = 0
	DefaultButtonLabel  = "&Save"
)

// Request describes one dialog fill. It is built fresh for every save.
type Request struct {
	Path            string        // Destination, already in native form
	Title           string        // Window title substring to attach to
	ControlClass    string        // Class of the text field
	ControlIndex    int           // Zero-based index among fields of ControlClass
	ButtonLabel     string        // Exact button label, mnemonic included
	AttachTimeout   time.Duration // How long to wait for the window and its controls
	PollInterval    time.Duration
	MaxPollInterval time.Duration
}

// NewRequest returns a request with the default dialog layout and timings.
func NewRequest(path, goos string) Request {
	return FromConfig(config.NewDefaultConfig().Dialog, path, goos)
}

// FromConfig returns a request for path using the configured dialog layout.
func FromConfig(cfg config.DialogConfig, path, goos string) Request {
	return Request{
		Path:            NativePath(path, goos),
		Title:           cfg.Title,
		ControlClass:    cfg.ControlClass,
		ControlIndex:    cfg.ControlIndex,
		ButtonLabel:     cfg.ButtonLabel,
		AttachTimeout:   cfg.AttachTimeout,
		PollInterval:    cfg.PollInterval,
		MaxPollInterval: cfg.MaxPollInterval,
	}
}

// NativePath applies the separator the target OS's dialog expects.
func NativePath(path, goos string) string {
	if goos == "windows" {
		return strings.ReplaceAll(path, "/", `\`)
	}
	return path
}

// Validate reports values that cannot be passed to or used by the filler.
func (r Request) Validate() error {
	var errs []error
	for _, f := range []struct{ name, value string }{
		{"path", r.Path},
		{"title", r.Title},
		{"class", r.ControlClass},
		{"button", r.ButtonLabel},
	} {
		switch {
		case f.value == "":
			errs = append(errs, fmt.Errorf("%s is required", f.name))
		case strings.ContainsRune(f.value, 0):
			errs = append(errs, fmt.Errorf("%s must not contain NUL", f.name))
		}
	}
	if r.ControlIndex < 0 {
		errs = append(errs, errors.New("index must not be negative"))
	}
	if r.AttachTimeout <= 0 {
		errs = append(errs, errors.New("attach timeout must be positive"))
	}
	return errors.Join(errs...)
}

// Args encodes the request as an argument vector. Every value travels inside
// a single --flag=value element, so no character in it is interpreted.
func (r Request) Args() []string {
	return []string{
		"--title=" + r.Title,
		"--class=" + r.ControlClass,
		fmt.Sprintf("--index=%d", r.ControlIndex),
		"--button=" + r.ButtonLabel,
		"--path=" + r.Path,
		"--attach-timeout=" + r.AttachTimeout.String(),
		"--poll-interval=" + r.PollInterval.String(),
		"--max-poll-interval=" + r.MaxPollInterval.String(),
	}
}

// ParseArgs decodes an argument vector produced by Args.
func ParseArgs(args []string) (Request, error) {
	var r Request
	fs := pflag.NewFlagSet("fill-dialog", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&r.Title, "title", DefaultTitle, "window title to attach to")
	fs.StringVar(&r.ControlClass, "class", DefaultControlClass, "class of the text field")
	fs.IntVar(&r.ControlIndex, "index", DefaultControlIndex, "index of the text field")
	fs.StringVar(&r.ButtonLabel, "button", DefaultButtonLabel, "label of the confirm button")
	fs.StringVar(&r.Path, "path", "", "destination path")
	fs.DurationVar(&r.AttachTimeout, "attach-timeout", 10*time.Second, "how long to wait for the dialog")
	fs.DurationVar(&r.PollInterval, "poll-interval", 100*time.Millisecond, "initial poll interval")
	fs.DurationVar(&r.MaxPollInterval, "max-poll-interval", time.Second, "poll backoff ceiling")

	if err := fs.Parse(args); err != nil {
		return Request{}, fmt.Errorf("failed to parse filler arguments: %w", err)
	}
	if fs.NArg() > 0 {
		return Request{}, fmt.Errorf("unexpected filler arguments: %q", fs.Args())
	}
	if err := r.Validate(); err != nil {
		return Request{}, err
	}
	return r, nil
}
