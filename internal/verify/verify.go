// Package verify checks that a saved image landed on disk and decodes.
package verify

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"time"

	// Decoders for the formats browsers save.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/mj1618/webimage/internal/poll"
)

// Result describes a saved image file.
type Result struct {
	Path   string `json:"path"   yaml:"path"`
	Format string `json:"format" yaml:"format"`
	Width  int    `json:"width"  yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	Size   int64  `json:"size"   yaml:"size"`
}

// Options configures File.
type Options struct {
	Timeout  time.Duration // How long to wait for the file to appear
	Interval time.Duration
}

// File waits for path to exist with a non-zero size, then decodes its header.
// The browser writes the file after the dialog closes, so it may lag Save.
func File(ctx context.Context, path string, opts Options) (Result, error) {
	var info os.FileInfo
	err := poll.Until(ctx, poll.Options{Interval: opts.Interval, MaxInterval: time.Second, Timeout: opts.Timeout}, func(context.Context) (bool, error) {
		fi, err := os.Stat(path)
		if err != nil {
			return false, err
		}
		if fi.Size() == 0 {
			return false, errors.New("file is empty")
		}
		info = fi
		return true, nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("saved file %s did not appear: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Result{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return Result{Path: path, Format: format, Width: cfg.Width, Height: cfg.Height, Size: info.Size()}, nil
}
