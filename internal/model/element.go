package model

// Element represents a native control inside a top-level window.
type Element struct {
	ID       int       `json:"i"           yaml:"i"`           // Sequential integer ID
	Role     string    `json:"r"           yaml:"r"`           // Abbreviated role code
	Class    string    `json:"k,omitempty" yaml:"k,omitempty"` // Native window class, e.g. "Edit"
	Title    string    `json:"t,omitempty" yaml:"t,omitempty"` // Visible label / title
	Value    string    `json:"v,omitempty" yaml:"v,omitempty"` // Current value
	Bounds   [4]int    `json:"b"           yaml:"b,flow"`      // [x, y, width, height]
	Enabled  *bool     `json:"e,omitempty" yaml:"e,omitempty"` // nil or true = enabled (omit); false = disabled (include)
	Children []Element `json:"c,omitempty" yaml:"c,omitempty"` // Child elements

	// Handle is the native handle backing this element. It is only valid
	// for the process that read it and is never serialized.
	Handle uintptr `json:"-" yaml:"-"`
}
