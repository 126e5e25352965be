package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mj1618/webimage/internal/dialog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestInspectCommand(t *testing.T) {
	stubPage(t)

	out, err := execute(t, "inspect", "--selector", "#pic", "--format", "json")
	require.NoError(t, err)

	var got struct {
		Selector string `json:"selector"`
		Loaded   bool   `json:"loaded"`
		Properties struct {
			Src      string `json:"src"`
			FileSize int    `json:"file_size"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	assert.Equal(t, "#pic", got.Selector)
	assert.True(t, got.Loaded)
	assert.Equal(t, picURL, got.Properties.Src)
	assert.Equal(t, 2048, got.Properties.FileSize)
}

func TestInspectCommand_Text(t *testing.T) {
	stubPage(t)

	out, err := execute(t, "inspect", "--selector", "#pic", "--text")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "id:           pic", lines[1])
	assert.True(t, strings.HasPrefix(lines[3], "src:"), lines[3])
}

func TestInspectCommand_Missing(t *testing.T) {
	stubPage(t)
	_, err := execute(t, "inspect", "--selector", "#nope")
	assert.Error(t, err)
}

func TestCommands_RequireSelector(t *testing.T) {
	stubPage(t)
	for _, name := range []string{"inspect", "loaded", "highlight"} {
		_, err := execute(t, name)
		assert.ErrorContains(t, err, "--selector is required", name)
	}
}

func TestInspectCommand_LoadsURL(t *testing.T) {
	page, _ := stubPage(t)
	_, err := execute(t, "loaded", "--selector", "#pic", "--url", galleryURL+"?page=2")
	require.NoError(t, err)
	assert.Equal(t, []string{galleryURL + "?page=2"}, page.Gotos)
	assert.True(t, page.Closed, "the session is closed after the command")
}

func TestLoadedCommand(t *testing.T) {
	_, el := stubPage(t)
	el.Props["fileCreatedDate"] = ""

	out, err := execute(t, "loaded", "--selector", "#pic")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, false, got["loaded"])
}

func TestHighlightCommand(t *testing.T) {
	_, el := stubPage(t)

	out, err := execute(t, "highlight", "--selector", "#pic", "--mode", "set")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: true")
	assert.Equal(t, 1, el.Props["border"])

	// A fresh session has nothing remembered, so clear removes the border.
	out, err = execute(t, "highlight", "--selector", "#pic", "--mode", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "mode: clear")
	_, present := el.Props["border"]
	assert.False(t, present)
}

func TestHighlightCommand_BadMode(t *testing.T) {
	stubPage(t)
	_, err := execute(t, "highlight", "--selector", "#pic", "--mode", "toggle")
	assert.Error(t, err)
}

func TestSaveCommand(t *testing.T) {
	page, _ := stubPage(t)
	l := stubFillerLauncher(t)
	dest := filepath.Join(t.TempDir(), "pic.gif")

	out, err := execute(t, "save", "--selector", "#pic", "--path", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "ok: true")

	require.Len(t, l.requests, 1)
	assert.Equal(t, dialog.DefaultTitle, l.requests[0].Title)
	assert.Equal(t, []string{picURL}, page.Gotos)
	assert.Equal(t, []string{"SaveAs"}, page.Commands)
	assert.Equal(t, 1, page.Backs)
}

func TestSaveCommand_Exists(t *testing.T) {
	stubPage(t)
	l := stubFillerLauncher(t)
	dest := filepath.Join(t.TempDir(), "pic.gif")
	require.NoError(t, os.WriteFile(dest, []byte("GIF89a"), 0o644))

	_, err := execute(t, "save", "--selector", "#pic", "--path", dest)
	assert.ErrorContains(t, err, "destination already exists")
	assert.Empty(t, l.requests)

	_, err = execute(t, "save", "--selector", "#pic", "--path", dest, "--overwrite")
	require.NoError(t, err)
	assert.Len(t, l.requests, 1)
}

func TestSaveCommand_RequiresPath(t *testing.T) {
	stubPage(t)
	_, err := execute(t, "save", "--selector", "#pic")
	assert.ErrorContains(t, err, "--path is required")
}
