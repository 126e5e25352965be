package image

import (
	"context"

	"github.com/mj1618/webimage/internal/dialog"
)

// Launcher starts a dialog filler.
type Launcher interface {
	Start(ctx context.Context, req dialog.Request) (Filler, error)
}

// Filler is a running dialog filler.
type Filler interface {
	WaitReady(ctx context.Context) error
	Wait(ctx context.Context) error
	Stop()
}

// FromDialogLauncher adapts a process launcher.
func FromDialogLauncher(l *dialog.Launcher) Launcher {
	return processLauncher{l: l}
}

type processLauncher struct {
	l *dialog.Launcher
}

func (p processLauncher) Start(ctx context.Context, req dialog.Request) (Filler, error) {
	proc, err := p.l.Start(ctx, req)
	if err != nil {
		return nil, err
	}
	return proc, nil
}
