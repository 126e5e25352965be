// Package image models one image element in a live browser page.
package image

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/mj1618/webimage/internal/browser"
	"github.com/mj1618/webimage/internal/config"
	"github.com/mj1618/webimage/internal/dialog"
	"github.com/mj1618/webimage/internal/model"
	"go.uber.org/zap"
)

const defaultNavigationTimeout = 30 * time.Second

// labelWidth is the column the values of String start at.
const labelWidth = 14

// Options configures an Image. Zero values select defaults.
type Options struct {
	Launcher          Launcher
	Dialog            config.DialogConfig
	NavigationTimeout time.Duration
	GOOS              string
	Logger            *zap.Logger
}

// Image wraps an element handle. Every property read re-checks that the
// element still exists; nothing is cached.
type Image struct {
	handle     browser.ElementHandle
	browser    browser.Browser
	launcher   Launcher
	dialog     config.DialogConfig
	navTimeout time.Duration
	goos       string
	logger     *zap.Logger

	border     any
	remembered bool
}

// New returns an Image for the element h in the tab b.
func New(b browser.Browser, h browser.ElementHandle, opts Options) *Image {
	img := &Image{
		handle:     h,
		browser:    b,
		launcher:   opts.Launcher,
		dialog:     opts.Dialog,
		navTimeout: opts.NavigationTimeout,
		goos:       opts.GOOS,
		logger:     opts.Logger,
	}
	if img.logger == nil {
		img.logger = zap.NewNop()
	}
	img.logger = img.logger.Named("image")
	if img.dialog.Title == "" {
		img.dialog = config.NewDefaultConfig().Dialog
	}
	if img.navTimeout <= 0 {
		img.navTimeout = defaultNavigationTimeout
	}
	if img.goos == "" {
		img.goos = runtime.GOOS
	}
	if img.launcher == nil {
		img.launcher = FromDialogLauncher(&dialog.Launcher{CompletionTimeout: img.dialog.CompletionTimeout, Logger: img.logger})
	}
	return img
}

func (img *Image) stringProperty(ctx context.Context, name string) (string, error) {
	if err := img.handle.AssertExists(ctx); err != nil {
		return "", err
	}
	return browser.String(ctx, img.handle, name)
}

func (img *Image) intProperty(ctx context.Context, name string) (int, error) {
	if err := img.handle.AssertExists(ctx); err != nil {
		return 0, err
	}
	return browser.Int(ctx, img.handle, name)
}

// Src returns the image's source URL.
func (img *Image) Src(ctx context.Context) (string, error) { return img.stringProperty(ctx, "src") }

// Alt returns the image's alternate text.
func (img *Image) Alt(ctx context.Context) (string, error) { return img.stringProperty(ctx, "alt") }

// FileCreatedDate returns the date the browser reports for the image file,
// or "" when it does not have the bytes.
func (img *Image) FileCreatedDate(ctx context.Context) (string, error) {
	return img.stringProperty(ctx, "fileCreatedDate")
}

// FileSize returns the image's size in bytes, or -1 when unknown.
func (img *Image) FileSize(ctx context.Context) (int, error) { return img.intProperty(ctx, "fileSize") }

// Width returns the rendered width in pixels.
func (img *Image) Width(ctx context.Context) (int, error) { return img.intProperty(ctx, "width") }

// Height returns the rendered height in pixels.
func (img *Image) Height(ctx context.Context) (int, error) { return img.intProperty(ctx, "height") }

// Properties reads a fresh snapshot of the image's properties.
func (img *Image) Properties(ctx context.Context) (model.ImageProperties, error) {
	var p model.ImageProperties
	var err error
	if p.Src, err = img.Src(ctx); err != nil {
		return p, err
	}
	if p.FileCreatedDate, err = img.FileCreatedDate(ctx); err != nil {
		return p, err
	}
	if p.FileSize, err = img.FileSize(ctx); err != nil {
		return p, err
	}
	if p.Width, err = img.Width(ctx); err != nil {
		return p, err
	}
	if p.Height, err = img.Height(ctx); err != nil {
		return p, err
	}
	if p.Alt, err = img.Alt(ctx); err != nil {
		return p, err
	}
	return p, nil
}

// String renders the element's identity and image properties as labelled
// lines, one per property.
func (img *Image) String(ctx context.Context) (string, error) {
	if err := img.handle.AssertExists(ctx); err != nil {
		return "", err
	}
	var lines []string
	add := func(label, value string) {
		lines = append(lines, fmt.Sprintf("%-*s%s", labelWidth, label+":", value))
	}
	for _, name := range []string{"type", "id", "name"} {
		v, err := browser.String(ctx, img.handle, name)
		if err != nil {
			return "", err
		}
		add(name, v)
	}

	p, err := img.Properties(ctx)
	if err != nil {
		return "", err
	}
	add("src", p.Src)
	add("file date", p.FileCreatedDate)
	add("file size", fmt.Sprint(p.FileSize))
	add("width", fmt.Sprint(p.Width))
	add("height", fmt.Sprint(p.Height))
	add("alt", p.Alt)
	return strings.Join(lines, "\n"), nil
}
