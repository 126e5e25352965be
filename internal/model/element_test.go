package model

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestElement_JSONKeys(t *testing.T) {
	el := Element{
		ID:     1,
		Role:   "btn",
		Class:  "Button",
		Title:  "&Save",
		Bounds: [4]int{10, 20, 100, 30},
		Handle: 0xBEEF,
	}
	data, err := json.Marshal(el)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	// Must have compact keys
	for _, key := range []string{"i", "r", "k", "t", "b"} {
		if _, ok := m[key]; !ok {
			t.Errorf("expected key %q in JSON output", key)
		}
	}
	// Must NOT have verbose keys or the native handle
	for _, key := range []string{"id", "role", "class", "title", "bounds", "Handle"} {
		if _, ok := m[key]; ok {
			t.Errorf("unexpected key %q in JSON output", key)
		}
	}
}

func TestElement_OmitEmpty(t *testing.T) {
	el := Element{
		ID:     1,
		Role:   "btn",
		Bounds: [4]int{0, 0, 100, 30},
	}
	data, err := json.Marshal(el)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"k", "t", "v", "e", "c"} {
		if _, ok := m[key]; ok {
			t.Errorf("empty field %q should be omitted", key)
		}
	}
}

func TestElement_YAMLSkipsHandle(t *testing.T) {
	el := Element{ID: 3, Role: "input", Class: "Edit", Handle: 42}
	data, err := yaml.Marshal(el)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["handle"]; ok {
		t.Error("native handle must not be serialized")
	}
	if m["k"] != "Edit" {
		t.Errorf("expected class Edit under key k, got %v", m["k"])
	}
}
