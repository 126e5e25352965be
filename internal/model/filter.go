package model

import "strings"

// FindByClass returns the index-th element (zero-based, depth-first document
// order) whose native class equals class. Class comparison is case-insensitive.
// Returns nil if there are not enough matches.
func FindByClass(elements []Element, class string, index int) *Element {
	if index < 0 {
		return nil
	}
	seen := 0
	var found *Element
	walk(elements, func(el *Element) bool {
		if !strings.EqualFold(el.Class, class) {
			return true
		}
		if seen == index {
			found = el
			return false
		}
		seen++
		return true
	})
	return found
}

// FindByTitle returns the first element with the given role whose title equals
// title exactly. An empty role matches any role. Mnemonic ampersands are part
// of native button labels ("&Save"), so no normalisation is applied.
func FindByTitle(elements []Element, role, title string) *Element {
	var found *Element
	walk(elements, func(el *Element) bool {
		if (role == "" || el.Role == role) && el.Title == title {
			found = el
			return false
		}
		return true
	})
	return found
}

// FilterByText filters elements to only those whose title or value contains
// the given text (case-insensitive). Parent elements are kept when any
// descendant matches.
func FilterByText(elements []Element, text string) []Element {
	if text == "" {
		return elements
	}
	textLower := strings.ToLower(text)
	var result []Element
	for _, el := range elements {
		matched := textMatchesElement(el, textLower)
		childMatches := FilterByText(el.Children, text)

		if matched || len(childMatches) > 0 {
			filtered := el
			filtered.Children = childMatches
			result = append(result, filtered)
		}
	}
	return result
}

// FilterByRoles keeps elements whose role is one of roles, after meta-role
// expansion. Parent elements are kept when any descendant matches.
func FilterByRoles(elements []Element, roles []string) []Element {
	if len(roles) == 0 {
		return elements
	}
	want := make(map[string]bool)
	for _, r := range ExpandRoles(roles) {
		want[r] = true
	}
	return filterRoles(elements, want)
}

func filterRoles(elements []Element, want map[string]bool) []Element {
	var result []Element
	for _, el := range elements {
		childMatches := filterRoles(el.Children, want)
		if want[el.Role] || len(childMatches) > 0 {
			filtered := el
			filtered.Children = childMatches
			result = append(result, filtered)
		}
	}
	return result
}

// CountElements returns the number of elements in the tree.
func CountElements(elements []Element) int {
	n := 0
	walk(elements, func(*Element) bool {
		n++
		return true
	})
	return n
}

func textMatchesElement(el Element, textLower string) bool {
	return strings.Contains(strings.ToLower(el.Title), textLower) ||
		strings.Contains(strings.ToLower(el.Value), textLower)
}

// walk visits elements depth-first in document order until fn returns false.
func walk(elements []Element, fn func(*Element) bool) bool {
	for i := range elements {
		if !fn(&elements[i]) {
			return false
		}
		if !walk(elements[i].Children, fn) {
			return false
		}
	}
	return true
}
