package browser

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestCallEncodesArguments(t *testing.T) {
	got, err := Call(SetPropertyScript, `img[alt="a \"b\""]`, "border", nil)
	if err != nil {
		t.Fatal(err)
	}
	want := "(" + SetPropertyScript + `)("img[alt=\"a \\\"b\\\"\"]", "border", null)`
	if got != want {
		t.Errorf("Call() =\n%s\nwant\n%s", got, want)
	}
}

func TestCallRejectsUnencodable(t *testing.T) {
	if _, err := Call(ExistsScript, make(chan int)); err == nil {
		t.Fatal("expected encode error")
	}
}

func TestDecodeResult(t *testing.T) {
	res, err := DecodeResult(`{"exists":true,"value":-1}`)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Exists {
		t.Error("expected exists")
	}
	if res.Value != json.Number("-1") {
		t.Errorf("value = %#v, want json.Number(-1)", res.Value)
	}

	if _, err := DecodeResult("undefined"); err == nil {
		t.Error("expected decode error")
	}
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("net::ERR_CONNECTION_REFUSED")
	nav := &NavigationError{Op: "goto", URL: "http://example.com/pic.gif", Err: cause}
	if !errors.Is(nav, cause) {
		t.Error("navigation error should unwrap to its cause")
	}
	if nav.Error() != "navigation goto http://example.com/pic.gif failed: net::ERR_CONNECTION_REFUSED" {
		t.Errorf("unexpected message: %s", nav.Error())
	}

	ex := &ExistenceError{Selector: "#logo"}
	if !errors.Is(ex, ErrNotExist) {
		t.Error("existence error should match ErrNotExist")
	}
	if ex.Error() != `element "#logo" does not exist` {
		t.Errorf("unexpected message: %s", ex.Error())
	}
}
