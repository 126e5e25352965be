package model

import "testing"

func TestMapRole_KnownClasses(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Button", "btn"},
		{"Static", "txt"},
		{"Edit", "input"},
		{"ComboBox", "combo"},
		{"ComboBoxEx32", "combo"},
		{"SysListView32", "list"},
		{"SysTreeView32", "tree"},
		{"DirectUIHWND", "group"},
		{"ToolbarWindow32", "toolbar"},
		{"#32770", "window"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := MapRole(tt.input)
			if got != tt.want {
				t.Errorf("MapRole(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMapRole_CaseInsensitive(t *testing.T) {
	if got := MapRole("edit"); got != "input" {
		t.Errorf("MapRole(%q) = %q, want %q", "edit", got, "input")
	}
}

func TestMapRole_Unknown(t *testing.T) {
	if got := MapRole("SomeCustomClass"); got != "other" {
		t.Errorf("MapRole(unknown) = %q, want %q", got, "other")
	}
}

func TestExpandRoles(t *testing.T) {
	got := ExpandRoles([]string{"interactive", "btn", "txt"})
	want := []string{"btn", "input", "combo", "list", "txt"}
	if len(got) != len(want) {
		t.Fatalf("ExpandRoles = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ExpandRoles[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
