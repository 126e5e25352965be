package browsertest

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/mj1618/webimage/internal/browser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// EnvBrowserTests enables tests that drive a real browser.
const EnvBrowserTests = "WEBIMAGE_BROWSER_TESTS"

// RequireBrowser skips the test unless real-browser tests are enabled.
func RequireBrowser(t *testing.T) {
	t.Helper()
	if testing.Short() || os.Getenv(EnvBrowserTests) == "" {
		t.Skipf("set %s=1 to run tests against a real browser", EnvBrowserTests)
	}
}

const galleryHTML = `<!DOCTYPE html>
<html><body>
<img id="logo" src="/logo.png" alt="Logo" border="2">
<img id="broken" src="/missing.png" alt="Broken">
</body></html>`

// NewGalleryServer serves a page with one loadable 4x3 PNG (#logo) and one
// image whose source 404s (#broken).
func NewGalleryServer(t *testing.T) *httptest.Server {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	require.NoError(t, png.Encode(&buf, img))

	mux := http.NewServeMux()
	mux.HandleFunc("/gallery", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(galleryHTML))
	})
	mux.HandleFunc("/logo.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// RunConformance checks a real, headless Session against the gallery page.
func RunConformance(t *testing.T, s browser.Session, srv *httptest.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	gallery := srv.URL + "/gallery"
	require.NoError(t, s.Goto(ctx, gallery))

	loc, err := s.Location(ctx)
	require.NoError(t, err)
	assert.Equal(t, gallery, loc)

	t.Run("properties", func(t *testing.T) {
		logo := s.Element("#logo")
		require.NoError(t, logo.AssertExists(ctx))

		src, err := browser.String(ctx, logo, "src")
		require.NoError(t, err)
		assert.Equal(t, srv.URL+"/logo.png", src)

		width, err := browser.Int(ctx, logo, "width")
		require.NoError(t, err)
		assert.Equal(t, 4, width)

		size, err := browser.Int(ctx, logo, "fileSize")
		require.NoError(t, err)
		assert.NotEqual(t, -1, size)

		date, err := browser.String(ctx, logo, "fileCreatedDate")
		require.NoError(t, err)
		assert.NotEmpty(t, date)
	})

	t.Run("broken image reports sentinels", func(t *testing.T) {
		broken := s.Element("#broken")
		size, err := browser.Int(ctx, broken, "fileSize")
		require.NoError(t, err)
		assert.Equal(t, -1, size)

		date, err := browser.String(ctx, broken, "fileCreatedDate")
		require.NoError(t, err)
		assert.Empty(t, date)
	})

	t.Run("set property", func(t *testing.T) {
		logo := s.Element("#logo")
		require.NoError(t, logo.SetProperty(ctx, "border", 1))
		border, err := browser.String(ctx, logo, "border")
		require.NoError(t, err)
		assert.Equal(t, "1", border)

		require.NoError(t, logo.SetProperty(ctx, "border", nil))
		border, err = browser.String(ctx, logo, "border")
		require.NoError(t, err)
		assert.Empty(t, border)
	})

	t.Run("missing element", func(t *testing.T) {
		err := s.Element("#nope").AssertExists(ctx)
		assert.True(t, errors.Is(err, browser.ErrNotExist), "got %v", err)
	})

	t.Run("navigation round trip", func(t *testing.T) {
		require.NoError(t, s.Goto(ctx, srv.URL+"/logo.png"))
		require.NoError(t, s.Back(ctx))
		// The image document has no #logo, so this fails if Back returned
		// before the gallery committed.
		require.NoError(t, s.Element("#logo").AssertExists(ctx))
		loc, err := s.Location(ctx)
		require.NoError(t, err)
		assert.Equal(t, gallery, loc)
	})

	t.Run("save as on a headless tab", func(t *testing.T) {
		err := s.Invoke(ctx, browser.SaveAs)
		assert.ErrorIs(t, err, browser.ErrHeadless)
		assert.ErrorIs(t, err, browser.ErrUnsupportedCommand)

		titler, ok := s.(browser.DialogTitler)
		require.True(t, ok, "session should name its save dialog")
		assert.Equal(t, browser.ChromiumSaveDialogTitle, titler.SaveDialogTitle())
	})

	t.Run("unsupported command", func(t *testing.T) {
		err := s.Invoke(ctx, "NoSuchCommand")
		assert.ErrorIs(t, err, browser.ErrUnsupportedCommand)
	})
}
