package cmd

import (
	"testing"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{"inspect", "loaded", "highlight", "save", "fill-dialog", "list", "controls", "serve"}
	commands := rootCmd.Commands()

	found := make(map[string]bool)
	for _, c := range commands {
		found[c.Name()] = true
	}

	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func TestFillDialogCommand_Hidden(t *testing.T) {
	if !fillDialogCmd.Hidden {
		t.Error("fill-dialog is an internal entry point and should be hidden")
	}
	if !fillDialogCmd.DisableFlagParsing {
		t.Error("fill-dialog arguments must reach dialog.ParseArgs unparsed")
	}
}

func TestImageCommands_Flags(t *testing.T) {
	tests := []struct {
		cmd      string
		name     string
		flagType string
	}{
		{"inspect", "selector", "string"},
		{"inspect", "url", "string"},
		{"inspect", "text", "bool"},
		{"loaded", "selector", "string"},
		{"highlight", "selector", "string"},
		{"highlight", "mode", "string"},
		{"save", "selector", "string"},
		{"save", "path", "string"},
		{"save", "overwrite", "bool"},
		{"save", "verify", "bool"},
		{"list", "title", "string"},
		{"list", "pid", "int"},
		{"controls", "title", "string"},
		{"controls", "window-id", "int"},
		{"serve", "transport", "string"},
		{"serve", "cache-ttl", "int"},
	}

	for _, tt := range tests {
		c, _, err := rootCmd.Find([]string{tt.cmd})
		if err != nil {
			t.Fatalf("command %q: %v", tt.cmd, err)
		}
		f := c.Flags().Lookup(tt.name)
		if f == nil {
			t.Errorf("%s: expected flag %q not found", tt.cmd, tt.name)
			continue
		}
		if f.Value.Type() != tt.flagType {
			t.Errorf("%s: flag %q: expected type %q, got %q", tt.cmd, tt.name, tt.flagType, f.Value.Type())
		}
	}
}

func TestRootCommand_BadFormat(t *testing.T) {
	stubPage(t)
	if _, err := execute(t, "loaded", "--selector", "#pic", "--format", "xml"); err == nil {
		t.Error("expected an error for an unsupported output format")
	}
}

func TestRootCommand_BadDriver(t *testing.T) {
	stubPage(t)
	if _, err := execute(t, "loaded", "--selector", "#pic", "--driver", "webdriver"); err == nil {
		t.Error("expected an error for an unsupported browser driver")
	}
}

func TestRootCommand_PersistentOverrides(t *testing.T) {
	if rootCmd.PersistentPreRunE == nil {
		t.Fatal("root command should load configuration before every subcommand")
	}
	stubPage(t)
	if _, err := execute(t, "loaded", "--selector", "#pic", "--driver", "rod", "--headless", "--log-level", "debug"); err != nil {
		t.Fatal(err)
	}
	cfg := currentConfig()
	if cfg.Browser.Driver != "rod" {
		t.Errorf("expected driver rod, got %q", cfg.Browser.Driver)
	}
	if !cfg.Browser.Headless {
		t.Error("expected --headless to reach the browser config")
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.Logger.Level)
	}
}
