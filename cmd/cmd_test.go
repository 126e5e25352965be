package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/mj1618/webimage/internal/browser"
	"github.com/mj1618/webimage/internal/browser/browsertest"
	"github.com/mj1618/webimage/internal/config"
	"github.com/mj1618/webimage/internal/dialog"
	"github.com/mj1618/webimage/internal/image"
	"github.com/mj1618/webimage/internal/model"
	"github.com/mj1618/webimage/internal/output"
	"github.com/mj1618/webimage/internal/platform"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const (
	galleryURL = "http://example.com/gallery"
	picURL     = "http://example.com/images/pic.gif"
)

// resetFlags returns every flag of c and its subcommands to its default, since
// cobra keeps parsed values between Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfgFile = ""
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		output.Stdout = os.Stdout
		output.OutputFormat = output.FormatYAML
		output.PrettyOutput = false
		appConfig = nil
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

// stubPage installs a gallery page as the browser every command opens.
func stubPage(t *testing.T) (*browsertest.Page, *browsertest.Element) {
	t.Helper()
	page := browsertest.NewPage(galleryURL)
	el := page.AddElement("#pic", map[string]any{
		"src":             picURL,
		"alt":             "A picture",
		"fileCreatedDate": "10/14/2026",
		"fileSize":        "2048",
		"width":           float64(640),
		"height":          float64(480),
		"id":              "pic",
		"type":            "",
	})
	prev := openSessionFunc
	openSessionFunc = func(context.Context, config.BrowserConfig, *zap.Logger) (browser.Session, error) {
		return page, nil
	}
	t.Cleanup(func() { openSessionFunc = prev })
	return page, el
}

type stubLauncher struct {
	mu       sync.Mutex
	requests []dialog.Request
}

func (l *stubLauncher) Start(_ context.Context, req dialog.Request) (image.Filler, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requests = append(l.requests, req)
	return stubFiller{}, nil
}

type stubFiller struct{}

func (stubFiller) WaitReady(context.Context) error { return nil }
func (stubFiller) Wait(context.Context) error      { return nil }
func (stubFiller) Stop()                           {}

func stubFillerLauncher(t *testing.T) *stubLauncher {
	t.Helper()
	l := &stubLauncher{}
	prev := imageLauncher
	imageLauncher = l
	t.Cleanup(func() { imageLauncher = prev })
	return l
}

// desktop stands in for the native provider with a Save Picture dialog open.
type desktop struct {
	mu      sync.Mutex
	values  []platform.SetValueOptions
	actions []platform.ActionOptions
}

func (d *desktop) ListWindows(opts platform.ListOptions) ([]model.Window, error) {
	var out []model.Window
	for _, w := range []model.Window{
		{App: "iexplore.exe", Title: "Gallery - Internet Explorer", ID: 7, Handle: 7},
		{App: "iexplore.exe", Title: "Save Picture", ID: 100, Handle: 100},
	} {
		if opts.Matches(w.Title, w.PID, w.App) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (d *desktop) ReadElements(platform.ReadOptions) ([]model.Element, error) {
	return []model.Element{{
		ID: 1, Role: "window", Class: "#32770", Title: "Save Picture", Handle: 100,
		Children: []model.Element{
			{ID: 2, Role: "input", Class: "Edit", Handle: 101},
			{ID: 3, Role: "input", Class: "Edit", Title: "Search", Handle: 102},
			{ID: 4, Role: "btn", Class: "Button", Title: "&Save", Handle: 103},
			{ID: 5, Role: "btn", Class: "Button", Title: "Cancel", Handle: 104},
		},
	}}, nil
}

func (d *desktop) SetValue(opts platform.SetValueOptions) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.values = append(d.values, opts)
	return nil
}

func (d *desktop) PerformAction(opts platform.ActionOptions) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.actions = append(d.actions, opts)
	return nil
}

func stubDesktop(t *testing.T) *desktop {
	t.Helper()
	d := &desktop{}
	prev := newProviderFunc
	newProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{Reader: d, ValueSetter: d, ActionPerformer: d}, nil
	}
	t.Cleanup(func() { newProviderFunc = prev })
	return d
}
