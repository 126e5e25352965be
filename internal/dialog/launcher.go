package dialog

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultCompletionTimeout bounds Process.Wait when the launcher sets none.
	DefaultCompletionTimeout = 30 * time.Second

	// attachGrace lets the filler report its own attach timeout before the
	// parent gives up on it.
	attachGrace = 2 * time.Second
)

// Launcher starts filler processes.
type Launcher struct {
	// Executable defaults to the running binary.
	Executable string
	// BaseArgs precede the request arguments; defaults to ["fill-dialog"].
	BaseArgs []string
	// Env is appended to the parent's environment.
	Env               []string
	CompletionTimeout time.Duration
	Logger            *zap.Logger
}

// Start spawns a filler for req. The filler polls for the dialog on its own,
// so it may be started before the dialog is opened. Cancelling ctx kills it.
func (l *Launcher) Start(ctx context.Context, req Request) (*Process, error) {
	if err := req.Validate(); err != nil {
		return nil, &AutomationError{Stage: StageLaunch, Err: fmt.Errorf("invalid request: %w", err)}
	}

	exe := l.Executable
	if exe == "" {
		self, err := os.Executable()
		if err != nil {
			return nil, &AutomationError{Stage: StageLaunch, Err: fmt.Errorf("failed to locate executable: %w", err)}
		}
		exe = self
	}
	base := l.BaseArgs
	if base == nil {
		base = []string{"fill-dialog"}
	}
	args := append(append([]string{}, base...), req.Args()...)

	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("dialog")

	completion := l.CompletionTimeout
	if completion <= 0 {
		completion = DefaultCompletionTimeout
	}

	procCtx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(procCtx, exe, args...)
	cmd.Env = append(os.Environ(), l.Env...)
	cmd.WaitDelay = time.Second
	p := &Process{
		cmd:               cmd,
		cancel:            cancel,
		title:             req.Title,
		attachTimeout:     req.AttachTimeout + attachGrace,
		completionTimeout: completion,
		ready:             make(chan struct{}),
		done:              make(chan struct{}),
		logger:            logger,
	}
	cmd.Stderr = &p.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, &AutomationError{Stage: StageLaunch, Err: err}
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, &AutomationError{Stage: StageLaunch, Err: fmt.Errorf("failed to start %s: %w", exe, err)}
	}
	logger.Debug("Started dialog filler.", zap.Int("pid", cmd.Process.Pid), zap.String("title", req.Title))

	go p.supervise(stdout)
	return p, nil
}

// Process supervises one running filler.
type Process struct {
	cmd               *exec.Cmd
	cancel            context.CancelFunc
	title             string
	attachTimeout     time.Duration
	completionTimeout time.Duration
	logger            *zap.Logger
	stderr            syncBuffer

	readyOnce sync.Once
	ready     chan struct{}
	done      chan struct{}

	// Written by supervise before done is closed.
	attachedTitle string
	completed     bool
	failure       *AutomationError
	waitErr       error
}

// supervise reads the handshake until the filler closes stdout, then reaps it.
func (p *Process) supervise(stdout io.Reader) {
	defer close(p.done)
	defer p.cancel()

	sc := bufio.NewScanner(stdout)
	for sc.Scan() {
		ev, ok := parseLine(sc.Text())
		if !ok {
			continue
		}
		switch ev.kind {
		case lineAttached:
			p.readyOnce.Do(func() {
				p.attachedTitle = ev.title
				close(p.ready)
			})
			p.logger.Debug("Filler attached to dialog.", zap.String("window", ev.title))
		case lineDone:
			p.completed = true
		default:
			if p.failure == nil {
				p.failure = ev.failure
			}
		}
	}
	p.waitErr = p.cmd.Wait()
}

// AttachedTitle is the title of the window the filler attached to, or empty
// until it attaches.
func (p *Process) AttachedTitle() string {
	select {
	case <-p.ready:
		return p.attachedTitle
	default:
		return ""
	}
}

// WaitReady blocks until the filler attaches to the dialog. It fails if the
// filler exits first or the attach timeout elapses.
func (p *Process) WaitReady(ctx context.Context) error {
	timer := time.NewTimer(p.attachTimeout)
	defer timer.Stop()

	select {
	case <-p.ready:
		return nil
	case <-p.done:
		select {
		case <-p.ready:
			return nil
		default:
		}
		return p.exitError(StageAttach)
	case <-timer.C:
		return &AutomationError{
			Stage:  StageAttach,
			Err:    fmt.Errorf("%w waiting for window %q after %s", ErrTimeout, p.title, p.attachTimeout),
			Stderr: p.stderr.String(),
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wait blocks until the filler exits and reports whether it confirmed the
// dialog. A filler still running after the completion timeout is killed.
func (p *Process) Wait(ctx context.Context) error {
	timer := time.NewTimer(p.completionTimeout)
	defer timer.Stop()

	select {
	case <-p.done:
	case <-timer.C:
		p.Stop()
		return &AutomationError{
			Stage:  StageExit,
			Err:    fmt.Errorf("%w: filler did not finish within %s", ErrTimeout, p.completionTimeout),
			Stderr: p.stderr.String(),
		}
	case <-ctx.Done():
		p.Stop()
		return ctx.Err()
	}

	if p.failure != nil || p.waitErr != nil || !p.completed {
		if err := ctx.Err(); err != nil {
			// The filler was killed because the caller gave up.
			return err
		}
		return p.exitError(StageExit)
	}
	return nil
}

// Stop kills the filler and waits for it to be reaped. It is safe to call
// more than once.
func (p *Process) Stop() {
	p.cancel()
	<-p.done
}

// exitError describes why an exited filler did not succeed. Only valid after
// done is closed.
func (p *Process) exitError(fallback Stage) error {
	stderr := strings.TrimSpace(p.stderr.String())
	if p.failure != nil {
		return &AutomationError{Stage: p.failure.Stage, Err: p.failure.Err, Stderr: stderr}
	}
	err := p.waitErr
	if err == nil {
		err = errors.New("filler exited without confirming the dialog")
	} else {
		err = fmt.Errorf("filler exited: %w", err)
	}
	return &AutomationError{Stage: fallback, Err: err, Stderr: stderr}
}

// syncBuffer is a bytes.Buffer safe for the concurrent writes exec makes
// while the parent reads it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
