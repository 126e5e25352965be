// Package cdp implements the browser contracts on chromedp.
package cdp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/mj1618/webimage/internal/browser"
	"github.com/mj1618/webimage/internal/config"
	"go.uber.org/zap"
)

const defaultNavigationTimeout = 30 * time.Second

var errNoHistory = errors.New("no previous history entry")

// Virtual key code of S on Windows.
const vkS = 0x53

// Session owns one chromedp tab.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	navTimeout  time.Duration
	headless    bool
	logger      *zap.Logger
}

// Open attaches to cfg.DebuggerURL, or launches a browser when it is empty.
func Open(ctx context.Context, cfg config.BrowserConfig, logger *zap.Logger) (*Session, error) {
	logger = logger.Named("cdp")

	var allocCtx context.Context
	var allocCancel context.CancelFunc
	if cfg.DebuggerURL != "" {
		logger.Debug("Connecting to remote browser.", zap.String("url", cfg.DebuggerURL))
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(ctx, cfg.DebuggerURL)
	} else {
		opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Flag("headless", cfg.Headless))
		if cfg.ExecPath != "" {
			opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
		}
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctx, opts...)
	}

	tabCtx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(logger.Sugar().Debugf))
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser tab: %w", err)
	}

	navTimeout := cfg.NavigationTimeout
	if navTimeout <= 0 {
		navTimeout = defaultNavigationTimeout
	}
	return &Session{
		ctx:         tabCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
		navTimeout:  navTimeout,
		headless:    cfg.Headless,
		logger:      logger,
	}, nil
}

// run executes actions on the tab, bounded by the caller's context.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	var runCtx context.Context
	var cancel context.CancelFunc
	if deadline, ok := ctx.Deadline(); ok {
		runCtx, cancel = context.WithDeadline(s.ctx, deadline)
	} else {
		runCtx, cancel = context.WithCancel(s.ctx)
	}
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

// Eval runs a page script in the tab.
func (s *Session) Eval(ctx context.Context, script string, args ...any) (browser.ScriptResult, error) {
	expr, err := browser.Call(script, args...)
	if err != nil {
		return browser.ScriptResult{}, err
	}
	var raw string
	if err := s.run(ctx, chromedp.Evaluate(expr, &raw)); err != nil {
		return browser.ScriptResult{}, err
	}
	return browser.DecodeResult(raw)
}

func (s *Session) navigate(ctx context.Context, op, url string, action chromedp.Action) error {
	navCtx, cancel := context.WithTimeout(ctx, s.navTimeout)
	defer cancel()

	if err := s.run(navCtx, action); err != nil {
		if errors.Is(navCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("navigation timed out after %s: %w", s.navTimeout, err)
		}
		return &browser.NavigationError{Op: op, URL: url, Err: err}
	}
	return nil
}

func (s *Session) Goto(ctx context.Context, url string) error {
	s.logger.Debug("Navigating.", zap.String("url", url))
	return s.navigate(ctx, "goto", url, chromedp.Navigate(url))
}

// Back steps to the previous history entry and waits for its document to
// load the way chromedp.Navigate does.
func (s *Session) Back(ctx context.Context) error {
	s.logger.Debug("Navigating back.")
	var cur int64
	var entries []*page.NavigationEntry
	if err := s.run(ctx, chromedp.NavigationEntries(&cur, &entries)); err != nil {
		return &browser.NavigationError{Op: "back", Err: fmt.Errorf("failed to read navigation history: %w", err)}
	}
	if cur <= 0 || int(cur) >= len(entries) {
		return &browser.NavigationError{Op: "back", Err: errNoHistory}
	}
	prev := entries[cur-1]
	return s.navigate(ctx, "back", prev.URL, chromedp.NavigateToHistoryEntry(prev.ID))
}

func (s *Session) Location(ctx context.Context) (string, error) {
	var url string
	if err := s.run(ctx, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("failed to read location: %w", err)
	}
	return url, nil
}

func (s *Session) Invoke(ctx context.Context, command string) error {
	if command == browser.SaveAs {
		return browser.PressSave(ctx, s.headless, func(ctx context.Context) error {
			return s.run(ctx, saveShortcut()...)
		})
	}
	return browser.InvokeCommand(ctx, s, command)
}

// saveShortcut presses and releases Ctrl+S.
func saveShortcut() []chromedp.Action {
	key := func(typ input.KeyType) *input.DispatchKeyEventParams {
		return input.DispatchKeyEvent(typ).
			WithModifiers(input.ModifierCtrl).
			WithKey("s").
			WithCode("KeyS").
			WithWindowsVirtualKeyCode(vkS).
			WithNativeVirtualKeyCode(vkS)
	}
	return []chromedp.Action{key(input.KeyRawDown), key(input.KeyUp)}
}

// SaveDialogTitle names the dialog Ctrl+S opens.
func (s *Session) SaveDialogTitle() string {
	return browser.ChromiumSaveDialogTitle
}

// Element returns a handle for the first element matching a CSS selector.
func (s *Session) Element(selector string) browser.ElementHandle {
	return browser.ScriptElement(s, selector)
}

// Close closes the tab, and the browser when it was launched by Open.
func (s *Session) Close() error {
	s.cancel()
	s.allocCancel()
	return nil
}

var (
	_ browser.Session      = (*Session)(nil)
	_ browser.DialogTitler = (*Session)(nil)
)
