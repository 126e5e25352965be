//go:build windows

package win32

import "github.com/mj1618/webimage/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		if err := user32.Load(); err != nil {
			return nil, err
		}
		reader := NewReader()
		return &platform.Provider{
			Reader:          reader,
			ValueSetter:     NewValueSetter(),
			ActionPerformer: NewActionPerformer(),
		}, nil
	}
}
