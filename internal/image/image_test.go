package image

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mj1618/webimage/internal/browser"
	"github.com/mj1618/webimage/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperties(t *testing.T) {
	f := newFixture()
	got, err := f.img.Properties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.ImageProperties{
		Src:             picURL,
		FileCreatedDate: "10/14/2026",
		FileSize:        2048,
		Width:           640,
		Height:          480,
		Alt:             "A picture",
	}, got)
}

func TestPropertiesAreNotCached(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	w, err := f.img.Width(ctx)
	require.NoError(t, err)
	assert.Equal(t, 640, w)

	f.el.Props["width"] = "800"
	w, err = f.img.Width(ctx)
	require.NoError(t, err)
	assert.Equal(t, 800, w)
}

func TestAccessorsRequireLiveElement(t *testing.T) {
	f := newFixture()
	f.el.Detached = true
	ctx := context.Background()

	accessors := map[string]func() error{
		"Src":             func() error { _, err := f.img.Src(ctx); return err },
		"Alt":             func() error { _, err := f.img.Alt(ctx); return err },
		"FileCreatedDate": func() error { _, err := f.img.FileCreatedDate(ctx); return err },
		"FileSize":        func() error { _, err := f.img.FileSize(ctx); return err },
		"Width":           func() error { _, err := f.img.Width(ctx); return err },
		"Height":          func() error { _, err := f.img.Height(ctx); return err },
		"Loaded":          func() error { _, err := f.img.Loaded(ctx); return err },
		"String":          func() error { _, err := f.img.String(ctx); return err },
	}
	for name, call := range accessors {
		t.Run(name, func(t *testing.T) {
			err := call()
			var ee *browser.ExistenceError
			require.ErrorAs(t, err, &ee)
			assert.Equal(t, "#pic", ee.Selector)
		})
	}
}

func TestPropertyErrorPropagates(t *testing.T) {
	f := newFixture()
	cause := errors.New("member not found")
	f.el.GetErr["fileSize"] = cause

	_, err := f.img.FileSize(context.Background())
	var pe *browser.PropertyError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "fileSize", pe.Name)
	assert.ErrorIs(t, err, cause)
}

func TestString(t *testing.T) {
	f := newFixture()
	got, err := f.img.String(context.Background())
	require.NoError(t, err)

	want := strings.Join([]string{
		"type:         ",
		"id:           pic",
		"name:         ",
		"src:          " + picURL,
		"file date:    10/14/2026",
		"file size:    2048",
		"width:        640",
		"height:       480",
		"alt:          A picture",
	}, "\n")
	assert.Equal(t, want, got)
}
