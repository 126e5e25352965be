package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// String reads a property and converts it to text. A nil value reads as "".
// The caller is expected to have checked liveness.
func String(ctx context.Context, h ElementHandle, name string) (string, error) {
	v, err := h.Property(ctx, name)
	if err != nil {
		return "", wrapGet(name, err)
	}
	return ToString(v), nil
}

// Int reads a property and converts it to an integer using the leading signed
// integer prefix of its text, so "-1" is -1, "12px" is 12 and "" is 0.
func Int(ctx context.Context, h ElementHandle, name string) (int, error) {
	v, err := h.Property(ctx, name)
	if err != nil {
		return 0, wrapGet(name, err)
	}
	n, err := ToInt(v)
	if err != nil {
		return 0, &PropertyError{Op: "get", Name: name, Err: err}
	}
	return n, nil
}

func wrapGet(name string, err error) error {
	var pe *PropertyError
	if errors.Is(err, ErrNotExist) || errors.As(err, &pe) {
		return err
	}
	return &PropertyError{Op: "get", Name: name, Err: err}
}

// ToString renders a raw property value as text.
func ToString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// ToInt converts a raw property value to an integer.
func ToInt(v any) (int, error) {
	switch v := v.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	}
	s := strings.TrimSpace(ToString(v))
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, nil
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from %q: %w", s, err)
	}
	return n, nil
}
