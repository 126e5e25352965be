package image

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLoaded(t *testing.T) {
	tests := []struct {
		date string
		size int
		want bool
	}{
		{"10/14/2026", 2048, true},
		{"10/14/2026", 0, true},
		{"x", -2, true},
		{"", 2048, false},
		{"10/14/2026", -1, false},
		{"", -1, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsLoaded(tt.date, tt.size), "IsLoaded(%q, %d)", tt.date, tt.size)
	}
}

func FuzzIsLoaded(f *testing.F) {
	f.Add("10/14/2026", 2048)
	f.Add("", -1)
	f.Fuzz(func(t *testing.T, date string, size int) {
		want := date != "" && size != -1
		if got := IsLoaded(date, size); got != want {
			t.Fatalf("IsLoaded(%q, %d) = %v", date, size, got)
		}
	})
}

func TestLoaded(t *testing.T) {
	tests := []struct {
		name  string
		props map[string]any
		want  bool
	}{
		{"loaded", map[string]any{"fileCreatedDate": "10/14/2026", "fileSize": "2048"}, true},
		{"no date", map[string]any{"fileCreatedDate": "", "fileSize": "2048"}, false},
		{"unknown size", map[string]any{"fileCreatedDate": "10/14/2026", "fileSize": "-1"}, false},
		{"neither", map[string]any{"fileSize": float64(-1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			delete(f.el.Props, "fileCreatedDate")
			for k, v := range tt.props {
				f.el.Props[k] = v
			}
			got, err := f.img.Loaded(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
