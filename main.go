package main

import (
	"github.com/mj1618/webimage/cmd"

	// Registers the Win32 dialog automation backend on Windows.
	_ "github.com/mj1618/webimage/internal/platform/win32"
)

func main() {
	cmd.Execute()
}
