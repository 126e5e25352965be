// Package rodb implements the browser contracts on go-rod.
package rodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/mj1618/webimage/internal/browser"
	"github.com/mj1618/webimage/internal/config"
	"go.uber.org/zap"
)

const defaultNavigationTimeout = 30 * time.Second

// Session owns one rod page.
type Session struct {
	browser    *rod.Browser
	page       *rod.Page
	lnch       *launcher.Launcher
	navTimeout time.Duration
	headless   bool
	logger     *zap.Logger
}

// Open connects to cfg.DebuggerURL, or launches a local browser when it is empty.
func Open(ctx context.Context, cfg config.BrowserConfig, logger *zap.Logger) (*Session, error) {
	logger = logger.Named("rod")
	s := &Session{navTimeout: cfg.NavigationTimeout, headless: cfg.Headless, logger: logger}
	if s.navTimeout <= 0 {
		s.navTimeout = defaultNavigationTimeout
	}

	var wsURL string
	if cfg.DebuggerURL != "" {
		u, err := launcher.ResolveURL(cfg.DebuggerURL)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve debugger url %s: %w", cfg.DebuggerURL, err)
		}
		wsURL = u
		logger.Debug("Connecting to remote browser.", zap.String("url", wsURL))
	} else {
		l := launcher.New().Context(ctx).Headless(cfg.Headless)
		if cfg.ExecPath != "" {
			l = l.Bin(cfg.ExecPath)
		}
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("failed to launch browser: %w", err)
		}
		wsURL = u
		s.lnch = l
		logger.Debug("Launched local browser.", zap.String("url", wsURL))
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		s.kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	s.browser = b

	page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	s.page = page
	return s, nil
}

// Eval runs a page script in the tab.
func (s *Session) Eval(ctx context.Context, script string, args ...any) (browser.ScriptResult, error) {
	res, err := s.page.Context(ctx).Eval(script, args...)
	if err != nil {
		return browser.ScriptResult{}, err
	}
	return browser.DecodeResult(res.Value.Str())
}

func (s *Session) navigate(ctx context.Context, op, url string, nav func(*rod.Page) error) error {
	navCtx, cancel := context.WithTimeout(ctx, s.navTimeout)
	defer cancel()

	page := s.page.Context(navCtx)
	err := nav(page)
	if err == nil {
		err = page.WaitLoad()
	}
	if err != nil {
		if errors.Is(navCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("navigation timed out after %s: %w", s.navTimeout, err)
		}
		return &browser.NavigationError{Op: op, URL: url, Err: err}
	}
	return nil
}

func (s *Session) Goto(ctx context.Context, url string) error {
	s.logger.Debug("Navigating.", zap.String("url", url))
	return s.navigate(ctx, "goto", url, func(p *rod.Page) error { return p.Navigate(url) })
}

func (s *Session) Back(ctx context.Context) error {
	s.logger.Debug("Navigating back.")
	return s.navigate(ctx, "back", "", func(p *rod.Page) error { return p.NavigateBack() })
}

func (s *Session) Location(ctx context.Context) (string, error) {
	info, err := s.page.Context(ctx).Info()
	if err != nil {
		return "", fmt.Errorf("failed to read location: %w", err)
	}
	return info.URL, nil
}

func (s *Session) Invoke(ctx context.Context, command string) error {
	if command == browser.SaveAs {
		// The page keyboard is bound to the page's own context.
		return browser.PressSave(ctx, s.headless, func(context.Context) error {
			return s.page.KeyActions().Press(input.ControlLeft).Type(input.KeyS).Do()
		})
	}
	return browser.InvokeCommand(ctx, s, command)
}

// SaveDialogTitle names the dialog Ctrl+S opens.
func (s *Session) SaveDialogTitle() string {
	return browser.ChromiumSaveDialogTitle
}

// Element returns a handle for the first element matching a CSS selector.
func (s *Session) Element(selector string) browser.ElementHandle {
	return browser.ScriptElement(s, selector)
}

// Close closes the page and the browser connection, killing the browser when
// Open launched it.
func (s *Session) Close() error {
	var errs []error
	if s.page != nil {
		errs = append(errs, s.page.Close())
	}
	if s.browser != nil {
		errs = append(errs, s.browser.Close())
	}
	s.kill()
	return errors.Join(errs...)
}

func (s *Session) kill() {
	if s.lnch != nil {
		s.lnch.Kill()
		s.lnch = nil
	}
}

var (
	_ browser.Session      = (*Session)(nil)
	_ browser.DialogTitler = (*Session)(nil)
)
