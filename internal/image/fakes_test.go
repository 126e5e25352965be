package image

import (
	"context"
	"os"
	"sync"

	"github.com/mj1618/webimage/internal/browser/browsertest"
	"github.com/mj1618/webimage/internal/dialog"
)

const (
	galleryURL = "http://example.com/gallery"
	picURL     = "http://example.com/images/pic.gif"
)

// events records the order of browser and filler calls.
type events struct {
	mu  sync.Mutex
	log []string
}

func (e *events) add(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log = append(e.log, s)
}

func (e *events) list() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.log...)
}

type fakeLauncher struct {
	ev       *events
	startErr error
	readyErr error
	waitErr  error
	// writes, when set, is what a successful fill leaves at the request path.
	writes   []byte
	requests []dialog.Request
	fillers  []*fakeFiller
}

func (l *fakeLauncher) Start(_ context.Context, req dialog.Request) (Filler, error) {
	l.ev.add("start")
	l.requests = append(l.requests, req)
	if l.startErr != nil {
		return nil, l.startErr
	}
	f := &fakeFiller{ev: l.ev, readyErr: l.readyErr, waitErr: l.waitErr, path: req.Path, writes: l.writes}
	l.fillers = append(l.fillers, f)
	return f, nil
}

type fakeFiller struct {
	ev       *events
	readyErr error
	waitErr  error
	path     string
	writes   []byte
	stopped  bool
}

func (f *fakeFiller) WaitReady(context.Context) error {
	f.ev.add("ready")
	return f.readyErr
}

func (f *fakeFiller) Wait(context.Context) error {
	f.ev.add("wait")
	if f.waitErr != nil {
		return f.waitErr
	}
	if f.writes != nil {
		return os.WriteFile(f.path, f.writes, 0o600)
	}
	return nil
}

func (f *fakeFiller) Stop() {
	f.ev.add("stop")
	f.stopped = true
}

// fixture is a gallery page holding one loaded image.
type fixture struct {
	page     *browsertest.Page
	el       *browsertest.Element
	launcher *fakeLauncher
	ev       *events
	img      *Image
}

func newFixture() *fixture {
	ev := &events{}
	page := browsertest.NewPage(galleryURL)
	el := page.AddElement("#pic", map[string]any{
		"src":             picURL,
		"alt":             "A picture",
		"fileCreatedDate": "10/14/2026",
		"fileSize":        "2048",
		"width":           float64(640),
		"height":          float64(480),
		"border":          "2",
		"id":              "pic",
	})
	page.OnInvoke = func(cmd string) error {
		ev.add("invoke " + cmd)
		return nil
	}
	l := &fakeLauncher{ev: ev}
	return &fixture{
		page:     page,
		el:       el,
		launcher: l,
		ev:       ev,
		img:      New(page, page.Element("#pic"), Options{Launcher: l, GOOS: "windows"}),
	}
}

func (f *fixture) location() string {
	loc, _ := f.page.Location(context.Background())
	return loc
}
