package image

import (
	"context"
	"fmt"
)

// Mode selects what Highlight does.
type Mode int

const (
	Set Mode = iota
	Clear
)

func (m Mode) String() string {
	switch m {
	case Set:
		return "set"
	case Clear:
		return "clear"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// ParseMode parses "set" or "clear".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "set":
		return Set, nil
	case "clear":
		return Clear, nil
	}
	return 0, fmt.Errorf("unknown highlight mode %q (want set or clear)", s)
}

const (
	borderProperty = "border"
	emphasisBorder = 1
)

// Attempt is the outcome of a best-effort highlight change. A failed attempt
// is for logging; it never leaves the highlight state inconsistent.
type Attempt struct {
	Mode Mode  `json:"mode"`
	OK   bool  `json:"ok"`
	Err  error `json:"-"`
}

// Highlight draws (Set) or removes (Clear) a border around the image.
//
// Set remembers the current border and writes 1; if either step fails nothing
// is remembered. Clear writes back whatever was remembered, absent included,
// and forgets it whether or not the write succeeds. A second Set before Clear
// replaces the remembered border with the emphasis border, so Clear then
// restores 1 rather than the original.
func (img *Image) Highlight(ctx context.Context, mode Mode) (a Attempt) {
	a.Mode = mode
	defer func() {
		if r := recover(); r != nil {
			img.forgetBorder()
			a.OK = false
			a.Err = fmt.Errorf("highlight %s panicked: %v", mode, r)
		}
	}()

	switch mode {
	case Set:
		prior, err := img.handle.Property(ctx, borderProperty)
		if err == nil {
			err = img.handle.SetProperty(ctx, borderProperty, emphasisBorder)
		}
		if err != nil {
			img.forgetBorder()
			a.Err = err
			return a
		}
		img.border, img.remembered = prior, true
	case Clear:
		prior := img.border
		img.forgetBorder()
		if err := img.handle.SetProperty(ctx, borderProperty, prior); err != nil {
			a.Err = err
			return a
		}
	default:
		a.Err = fmt.Errorf("unknown highlight mode %d", int(mode))
		return a
	}
	a.OK = true
	return a
}

// RememberedBorder returns the border saved by the last successful Set.
func (img *Image) RememberedBorder() (any, bool) {
	return img.border, img.remembered
}

func (img *Image) forgetBorder() {
	img.border, img.remembered = nil, false
}
