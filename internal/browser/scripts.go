package browser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Page scripts shared by the backends. Each one is a function expression that
// returns a JSON string, decoded with DecodeResult.
//
// Engines without IE's fileSize and fileCreatedDate get them computed from the
// image's load state: an image that is not complete, or decoded to zero width,
// reports -1 and "".
const (
	ExistsScript = `(selector) => JSON.stringify({exists: document.querySelector(selector) !== null})`

	GetPropertyScript = `(selector, name) => {
	const el = document.querySelector(selector);
	if (el === null) return JSON.stringify({exists: false});
	let value;
	if (name in el) {
		value = el[name];
	} else if (name === "fileSize" || name === "fileCreatedDate") {
		const loaded = el.complete && el.naturalWidth > 0;
		const entry = loaded ? performance.getEntriesByName(el.currentSrc || el.src).pop() : undefined;
		if (name === "fileSize") {
			value = !loaded ? -1 : entry ? (entry.decodedBodySize || entry.encodedBodySize || 0) : 0;
		} else if (!loaded) {
			value = "";
		} else {
			const d = entry ? new Date(performance.timeOrigin + entry.responseEnd) : new Date();
			value = String(d.getMonth() + 1).padStart(2, "0") + "/" + String(d.getDate()).padStart(2, "0") + "/" + d.getFullYear();
		}
	} else {
		value = el.getAttribute(name);
	}
	if (value === undefined) value = null;
	else if (value !== null && typeof value === "object") value = String(value);
	return JSON.stringify({exists: true, value: value});
}`

	SetPropertyScript = `(selector, name, value) => {
	const el = document.querySelector(selector);
	if (el === null) return JSON.stringify({exists: false});
	if (value === null) el.removeAttribute(name);
	else el[name] = value;
	return JSON.stringify({exists: true});
}`

	InvokeScript = `(command) => JSON.stringify({ok: document.execCommand(command)})`
)

// ScriptResult is the decoded reply of a page script.
type ScriptResult struct {
	Exists bool `json:"exists"`
	Value  any  `json:"value"`
	OK     bool `json:"ok"`
}

// DecodeResult parses a script reply. Numbers decode as json.Number.
func DecodeResult(raw string) (ScriptResult, error) {
	var res ScriptResult
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&res); err != nil {
		return ScriptResult{}, fmt.Errorf("failed to decode script result %q: %w", raw, err)
	}
	return res, nil
}

// Call binds JSON-encoded arguments to a script, producing an expression that
// can be evaluated directly.
func Call(script string, args ...any) (string, error) {
	var b bytes.Buffer
	b.WriteString("(")
	b.WriteString(script)
	b.WriteString(")(")
	for i, arg := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		enc, err := json.Marshal(arg)
		if err != nil {
			return "", fmt.Errorf("failed to encode script argument %d: %w", i, err)
		}
		b.Write(enc)
	}
	b.WriteString(")")
	return b.String(), nil
}
