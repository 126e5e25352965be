//go:build windows

package win32

import (
	"fmt"

	"github.com/mj1618/webimage/internal/platform"
)

// Win32ValueSetter implements the platform.ValueSetter interface for Windows.
type Win32ValueSetter struct{}

// NewValueSetter creates a new Windows value setter.
func NewValueSetter() *Win32ValueSetter {
	return &Win32ValueSetter{}
}

func (s *Win32ValueSetter) SetValue(opts platform.SetValueOptions) error {
	if opts.Handle == 0 {
		return fmt.Errorf("element %d has no native handle", opts.ID)
	}
	if err := setWindowText(opts.Handle, opts.Value); err != nil {
		return fmt.Errorf("failed to set value on element %d: %w", opts.ID, err)
	}
	return nil
}
