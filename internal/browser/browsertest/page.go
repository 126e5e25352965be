// Package browsertest provides an in-memory browser.Session for tests.
package browsertest

import (
	"context"
	"errors"
	"sync"

	"github.com/mj1618/webimage/internal/browser"
)

// Page is a fake tab with a navigation history and a set of elements keyed by
// selector. Its exported fields may be changed between calls.
type Page struct {
	mu      sync.Mutex
	history []string

	Elements map[string]*Element

	// GotoErr fails Goto for the given URL. When CommitFailedGoto is set the
	// failed URL still becomes the current location, like a browser error page.
	GotoErr          map[string]error
	CommitFailedGoto bool
	BackErr          error
	InvokeErr        error
	// OnInvoke runs after a successful Invoke.
	OnInvoke func(command string) error

	Gotos    []string
	Backs    int
	Commands []string
	Closed   bool
}

// Element is a fake element. A nil Element or one with Detached set fails
// AssertExists.
type Element struct {
	Props    map[string]any
	GetErr   map[string]error
	SetErr   map[string]error
	Detached bool
	Sets     []SetCall
}

// SetCall records one SetProperty.
type SetCall struct {
	Name  string
	Value any
}

// NewPage returns a page whose current location is start.
func NewPage(start string) *Page {
	return &Page{history: []string{start}, Elements: map[string]*Element{}}
}

// AddElement registers an element with the given properties.
func (p *Page) AddElement(selector string, props map[string]any) *Element {
	p.mu.Lock()
	defer p.mu.Unlock()
	el := &Element{Props: props, GetErr: map[string]error{}, SetErr: map[string]error{}}
	if el.Props == nil {
		el.Props = map[string]any{}
	}
	p.Elements[selector] = el
	return el
}

func (p *Page) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return &browser.NavigationError{Op: "goto", URL: url, Err: err}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Gotos = append(p.Gotos, url)
	if err := p.GotoErr[url]; err != nil {
		if p.CommitFailedGoto {
			p.history = append(p.history, url)
		}
		return &browser.NavigationError{Op: "goto", URL: url, Err: err}
	}
	p.history = append(p.history, url)
	return nil
}

func (p *Page) Back(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return &browser.NavigationError{Op: "back", Err: err}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Backs++
	if p.BackErr != nil {
		return &browser.NavigationError{Op: "back", Err: p.BackErr}
	}
	if len(p.history) < 2 {
		return &browser.NavigationError{Op: "back", Err: errors.New("no history entry")}
	}
	p.history = p.history[:len(p.history)-1]
	return nil
}

func (p *Page) Location(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.history[len(p.history)-1], nil
}

func (p *Page) Invoke(ctx context.Context, command string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	p.Commands = append(p.Commands, command)
	err := p.InvokeErr
	hook := p.OnInvoke
	p.mu.Unlock()
	if err != nil {
		return err
	}
	if hook != nil {
		return hook(command)
	}
	return nil
}

// Element returns a handle that resolves selector on every call.
func (p *Page) Element(selector string) browser.ElementHandle {
	return &handle{page: p, selector: selector}
}

func (p *Page) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Closed = true
	return nil
}

type handle struct {
	page     *Page
	selector string
}

func (h *handle) lookup() (*Element, error) {
	el := h.page.Elements[h.selector]
	if el == nil || el.Detached {
		return nil, &browser.ExistenceError{Selector: h.selector}
	}
	return el, nil
}

func (h *handle) AssertExists(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.page.mu.Lock()
	defer h.page.mu.Unlock()
	_, err := h.lookup()
	return err
}

func (h *handle) Property(ctx context.Context, name string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h.page.mu.Lock()
	defer h.page.mu.Unlock()
	el, err := h.lookup()
	if err != nil {
		return nil, err
	}
	if err := el.GetErr[name]; err != nil {
		return nil, &browser.PropertyError{Op: "get", Name: name, Err: err}
	}
	return el.Props[name], nil
}

func (h *handle) SetProperty(ctx context.Context, name string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.page.mu.Lock()
	defer h.page.mu.Unlock()
	el, err := h.lookup()
	if err != nil {
		return err
	}
	el.Sets = append(el.Sets, SetCall{Name: name, Value: value})
	if err := el.SetErr[name]; err != nil {
		return &browser.PropertyError{Op: "set", Name: name, Err: err}
	}
	if value == nil {
		delete(el.Props, name)
	} else {
		el.Props[name] = value
	}
	return nil
}

var _ browser.Session = (*Page)(nil)
