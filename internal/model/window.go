package model

// Window represents a top-level native window.
type Window struct {
	App     string `json:"app,omitempty"     yaml:"app,omitempty"`
	PID     int    `json:"pid"               yaml:"pid"`
	Title   string `json:"title"             yaml:"title"`
	Class   string `json:"class,omitempty"   yaml:"class,omitempty"`
	ID      int    `json:"id"                yaml:"id"`
	Bounds  [4]int `json:"bounds"            yaml:"bounds,flow"`
	Focused bool   `json:"focused,omitempty" yaml:"focused,omitempty"`

	Handle uintptr `json:"-" yaml:"-"`
}
