package image

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/go-homedir"
	"github.com/mj1618/webimage/internal/browser"
	"github.com/mj1618/webimage/internal/config"
	"github.com/mj1618/webimage/internal/dialog"
	"go.uber.org/zap"
)

// ErrDestinationExists is returned by Save when the destination is taken and
// overwriting was not requested. The native dialog would otherwise stop on an
// overwrite prompt the filler does not answer.
var ErrDestinationExists = errors.New("destination already exists")

// Phase names the step of a save that failed.
type Phase string

const (
	PhaseNavigate Phase = "navigate" // reading the source or loading it
	PhaseTrigger  Phase = "trigger"  // invoking SaveAs
	PhaseFill     Phase = "fill"     // the dialog filler
	PhaseRestore  Phase = "restore"  // returning to the prior location
)

// SaveError is the single error a failed save returns. When the restore also
// fails, Err is the earlier cause and RestoreErr holds the restore failure;
// both match errors.Is and errors.As.
type SaveError struct {
	Phase      Phase
	Err        error
	RestoreErr error
}

func (e *SaveError) Error() string {
	msg := fmt.Sprintf("save failed at %s: %v", e.Phase, e.Err)
	if e.RestoreErr != nil {
		msg += fmt.Sprintf("; restore also failed: %v", e.RestoreErr)
	}
	return msg
}

func (e *SaveError) Unwrap() []error {
	errs := []error{e.Err}
	if e.RestoreErr != nil {
		errs = append(errs, e.RestoreErr)
	}
	return errs
}

// SaveOptions controls Save.
type SaveOptions struct {
	// Overwrite replaces an existing destination file. The original is moved
	// aside while the dialog runs and put back if the save fails.
	Overwrite bool
}

// Save writes the image to path by loading its source directly, opening the
// browser's Save As dialog and having a filler process type path into it.
// The browser is returned to the location it had before the call on every
// exit path, including a failed navigation and caller cancellation.
func (img *Image) Save(ctx context.Context, path string, opts SaveOptions) error {
	_, err := img.SaveFile(ctx, path, opts)
	return err
}

// SaveFile is Save, also returning the absolute destination the dialog was
// given.
func (img *Image) SaveFile(ctx context.Context, path string, opts SaveOptions) (dest string, err error) {
	session := uuid.NewString()
	logger := img.logger.With(zap.String("session", session))

	dest, exists, err := img.destination(path, opts.Overwrite)
	if err != nil {
		return "", err
	}

	prior, err := img.browser.Location(ctx)
	if err != nil {
		return dest, &SaveError{Phase: PhaseNavigate, Err: fmt.Errorf("failed to read current location: %w", err)}
	}
	defer func() {
		err = withRestore(err, img.restore(ctx, prior, logger))
	}()

	src, err := img.Src(ctx)
	if err != nil {
		return dest, &SaveError{Phase: PhaseNavigate, Err: err}
	}
	logger.Info("Saving image.", zap.String("src", src), zap.String("path", dest), zap.String("from", prior))

	if err := img.browser.Goto(ctx, src); err != nil {
		return dest, &SaveError{Phase: PhaseNavigate, Err: err}
	}

	if exists {
		backup, mvErr := moveAside(dest, session)
		if mvErr != nil {
			return dest, &SaveError{Phase: PhaseFill, Err: mvErr}
		}
		logger.Debug("Moved existing file aside.", zap.String("backup", backup))
		defer func() {
			err = settleBackup(err, dest, backup, logger)
		}()
	}

	req := dialog.FromConfig(img.dialogConfig(), dest, img.goos)
	filler, err := img.launcher.Start(ctx, req)
	if err != nil {
		return dest, &SaveError{Phase: PhaseFill, Err: err}
	}
	logger.Debug("Dialog filler started.", zap.String("native_path", req.Path), zap.String("title", req.Title))

	// SaveAs may block until the dialog closes, so the filler is already
	// waiting for the window.
	if err := img.browser.Invoke(ctx, browser.SaveAs); err != nil {
		filler.Stop()
		return dest, &SaveError{Phase: PhaseTrigger, Err: err}
	}
	if err := filler.WaitReady(ctx); err != nil {
		filler.Stop()
		return dest, &SaveError{Phase: PhaseFill, Err: err}
	}
	if err := filler.Wait(ctx); err != nil {
		return dest, &SaveError{Phase: PhaseFill, Err: err}
	}
	logger.Info("Image saved.", zap.String("path", dest))
	return dest, nil
}

// dialogConfig returns the dialog layout to fill. A browser that names its
// own save dialog replaces the default title; a configured title is kept.
func (img *Image) dialogConfig() config.DialogConfig {
	cfg := img.dialog
	if t, ok := img.browser.(browser.DialogTitler); ok && cfg.Title == dialog.DefaultTitle {
		cfg.Title = t.SaveDialogTitle()
	}
	return cfg
}

// destination resolves path to the absolute file the dialog should write and
// reports whether it already exists.
func (img *Image) destination(path string, overwrite bool) (string, bool, error) {
	if path == "" {
		return "", false, errors.New("destination path is required")
	}
	dest, err := homedir.Expand(path)
	if err != nil {
		return "", false, fmt.Errorf("failed to expand %s: %w", path, err)
	}
	// The dialog resolves relative names against its own folder.
	if !(img.goos == "windows" && isWindowsAbs(dest)) {
		if dest, err = filepath.Abs(dest); err != nil {
			return "", false, fmt.Errorf("failed to resolve %s: %w", path, err)
		}
	}
	if _, err := os.Stat(dest); err == nil {
		if !overwrite {
			return "", false, fmt.Errorf("%w: %s", ErrDestinationExists, dest)
		}
		return dest, true, nil
	}
	return dest, false, nil
}

// isWindowsAbs reports whether p has a drive letter and root, or is a UNC path.
func isWindowsAbs(p string) bool {
	if strings.HasPrefix(p, `\\`) || strings.HasPrefix(p, "//") {
		return true
	}
	if len(p) < 3 || p[1] != ':' || (p[2] != '\\' && p[2] != '/') {
		return false
	}
	c := p[0] | 0x20
	return c >= 'a' && c <= 'z'
}

// moveAside renames an existing destination to a hidden sibling so the dialog
// meets no overwrite prompt.
func moveAside(dest, session string) (string, error) {
	backup := filepath.Join(filepath.Dir(dest), "."+filepath.Base(dest)+"."+session[:8]+".bak")
	if err := os.Rename(dest, backup); err != nil {
		return "", fmt.Errorf("failed to move existing %s aside: %w", dest, err)
	}
	return backup, nil
}

// settleBackup drops the moved-aside original once the dialog has written the
// new file, and puts it back otherwise. It runs before the browser restore.
func settleBackup(err error, dest, backup string, logger *zap.Logger) error {
	if err == nil {
		if rmErr := os.Remove(backup); rmErr != nil {
			logger.Warn("Failed to remove previous file.", zap.String("backup", backup), zap.Error(rmErr))
		}
		return err
	}
	if mvErr := os.Rename(backup, dest); mvErr != nil {
		logger.Error("Failed to put the original file back.", zap.String("backup", backup), zap.Error(mvErr))
		return fmt.Errorf("%w; original left at %s: %v", err, backup, mvErr)
	}
	logger.Debug("Put the original file back.", zap.String("path", dest))
	return err
}

// restore returns the browser to prior: Back when the location changed, then
// a direct Goto if Back did not land there. It runs even when ctx is done.
func (img *Image) restore(ctx context.Context, prior string, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*img.navTimeout)
	defer cancel()

	cur, err := img.browser.Location(ctx)
	if err == nil && cur == prior {
		return nil
	}

	// An unknown location could mean Back overshoots; go straight to prior.
	if err == nil {
		if backErr := img.browser.Back(ctx); backErr != nil {
			logger.Warn("Back failed during restore.", zap.Error(backErr))
		} else if cur, err = img.browser.Location(ctx); err == nil && cur == prior {
			logger.Debug("Restored prior location.", zap.String("location", prior))
			return nil
		}
	}

	logger.Debug("Navigating directly to prior location.", zap.String("location", prior), zap.String("current", cur))
	if err := img.browser.Goto(ctx, prior); err != nil {
		return fmt.Errorf("failed to restore %s: %w", prior, err)
	}
	return nil
}

// withRestore attaches a restore failure to the save's result. Every error
// returned after the restore is armed is a *SaveError.
func withRestore(err, restoreErr error) error {
	if restoreErr == nil {
		return err
	}
	var se *SaveError
	if errors.As(err, &se) {
		se.RestoreErr = restoreErr
		return se
	}
	return &SaveError{Phase: PhaseRestore, Err: restoreErr}
}
