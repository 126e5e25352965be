package cmd

import (
	"context"
	"fmt"

	"github.com/mj1618/webimage/internal/browser"
	"github.com/mj1618/webimage/internal/browser/cdp"
	"github.com/mj1618/webimage/internal/browser/rodb"
	"github.com/mj1618/webimage/internal/config"
	"github.com/mj1618/webimage/internal/image"
	"github.com/mj1618/webimage/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// openSessionFunc opens the browser session commands drive. Tests replace it.
var openSessionFunc = openSession

// imageLauncher overrides the dialog filler launcher; nil spawns this binary.
var imageLauncher image.Launcher

func openSession(ctx context.Context, cfg config.BrowserConfig, logger *zap.Logger) (browser.Session, error) {
	switch cfg.Driver {
	case config.DriverRod:
		s, err := rodb.Open(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverChromedp, "":
		s, err := cdp.Open(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unsupported browser driver: %s (use %s or %s)", cfg.Driver, config.DriverChromedp, config.DriverRod)
}

// addImageFlags registers the flags that locate an image.
func addImageFlags(cmd *cobra.Command) {
	cmd.Flags().String("selector", "", "CSS selector of the image element (required)")
	cmd.Flags().String("url", "", "Load this page before locating the image")
}

// withImage opens a session, optionally loads --url, and calls fn with the
// image at --selector. The session is closed afterwards.
func withImage(cmd *cobra.Command, fn func(ctx context.Context, img *image.Image, selector string) error) error {
	selector, err := requireFlag(cmd, "selector")
	if err != nil {
		return err
	}
	url, _ := cmd.Flags().GetString("url")

	cfg := currentConfig()
	logger := observability.GetLogger()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sess, err := openSessionFunc(ctx, cfg.Browser, logger)
	if err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			logger.Warn("Failed to close browser.", zap.Error(cerr))
		}
	}()

	if url != "" {
		if err := sess.Goto(ctx, url); err != nil {
			return err
		}
	}

	img := image.New(sess, sess.Element(selector), image.Options{
		Launcher:          imageLauncher,
		Dialog:            cfg.Dialog,
		NavigationTimeout: cfg.Browser.NavigationTimeout,
		Logger:            logger,
	})
	return fn(ctx, img, selector)
}
