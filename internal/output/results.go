package output

import (
	"github.com/mj1618/webimage/internal/model"
	"github.com/mj1618/webimage/internal/verify"
)

// InspectResult is the output of the `inspect` command.
type InspectResult struct {
	Selector   string                `yaml:"selector"   json:"selector"`
	Properties model.ImageProperties `yaml:"properties" json:"properties"`
	Loaded     bool                  `yaml:"loaded"     json:"loaded"`
	Text       string                `yaml:"text"       json:"text"`
}

// LoadedResult is the output of the `loaded` command.
type LoadedResult struct {
	Selector string `yaml:"selector" json:"selector"`
	Loaded   bool   `yaml:"loaded"   json:"loaded"`
}

// HighlightResult is the output of the `highlight` command. A failed attempt
// is reported, not raised.
type HighlightResult struct {
	Selector string `yaml:"selector"        json:"selector"`
	Mode     string `yaml:"mode"            json:"mode"`
	OK       bool   `yaml:"ok"              json:"ok"`
	Error    string `yaml:"error,omitempty" json:"error,omitempty"`
}

// SaveResult is the output of the `save` command.
type SaveResult struct {
	Selector string         `yaml:"selector"           json:"selector"`
	Path     string         `yaml:"path"               json:"path"`
	OK       bool           `yaml:"ok"                 json:"ok"`
	Verified *verify.Result `yaml:"verified,omitempty" json:"verified,omitempty"`
}

// WindowsResult is the output of the `list` command.
type WindowsResult struct {
	Windows []model.Window `yaml:"windows" json:"windows"`
}

// ControlsResult is the output of the `controls` command.
type ControlsResult struct {
	Window   string          `yaml:"window,omitempty" json:"window,omitempty"`
	TS       int64           `yaml:"ts"               json:"ts"`
	Count    int             `yaml:"count"            json:"count"`
	Elements []model.Element `yaml:"elements"         json:"elements"`
}
