package model

import "strings"

// RoleMap maps Win32 window class names to compact role codes.
var RoleMap = map[string]string{
	"Button":          "btn",
	"Static":          "txt",
	"Edit":            "input",
	"RichEdit20W":     "input",
	"ComboBox":        "combo",
	"ComboBoxEx32":    "combo",
	"ListBox":         "list",
	"SysListView32":   "list",
	"SysTreeView32":   "tree",
	"DirectUIHWND":    "group",
	"ToolbarWindow32": "toolbar",
	"ScrollBar":       "scroll",
	"SysLink":         "lnk",
	"#32770":          "window",
}

// MetaRoles maps meta-role names to the concrete roles they expand to.
// For example, "interactive" matches roles that accept user input.
var MetaRoles = map[string][]string{
	"interactive": {"btn", "input", "combo", "list"},
}

// ExpandRoles expands any meta-roles in the given list to their concrete roles.
// Non-meta roles are passed through unchanged. Duplicates are removed.
func ExpandRoles(roles []string) []string {
	seen := make(map[string]bool, len(roles))
	var expanded []string
	for _, r := range roles {
		if concrete, ok := MetaRoles[r]; ok {
			for _, c := range concrete {
				if !seen[c] {
					seen[c] = true
					expanded = append(expanded, c)
				}
			}
		} else if !seen[r] {
			seen[r] = true
			expanded = append(expanded, r)
		}
	}
	return expanded
}

// MapRole converts a native window class to a compact code. Class names are
// compared case-insensitively because Win32 class registration is.
func MapRole(class string) string {
	if short, ok := RoleMap[class]; ok {
		return short
	}
	for k, short := range RoleMap {
		if strings.EqualFold(k, class) {
			return short
		}
	}
	return "other"
}
