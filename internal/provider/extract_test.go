package provider_test

import (
	"testing"

	"github.com/atrbyg24/nba-dashboard/internal/provider"
)

func TestExtractValue(t *testing.T) {
	tests := []struct {
		name   string
		in     interface{}
		want   float64
		wantOK bool
	}{
		{"nil", nil, 0, false},
		{"float", 24.5, 24.5, true},
		{"int", 7, 7, true},
		{"int64", int64(9), 9, true},
		{"numeric string", "1402", 1402, true},
		{"thousands separator", "1,402", 1402, true},
		{"padded string", " 3.5 ", 3.5, true},
		{"empty string", "", 0, false},
		{"text", "TOT", 0, false},
		{"nested total", map[string]interface{}{"total": 12.0}, 12, true},
		{"nested without total", map[string]interface{}{"x": 1.0}, 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := provider.ExtractValue(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ExtractValue(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestExtractInt(t *testing.T) {
	if got, ok := provider.ExtractInt(72.0); !ok || got != 72 {
		t.Errorf("ExtractInt(72.0) = (%d, %v)", got, ok)
	}
	if _, ok := provider.ExtractInt(nil); ok {
		t.Error("ExtractInt(nil) ok = true")
	}
}

func TestExtractString(t *testing.T) {
	if got := provider.ExtractString(" LAL "); got != "LAL" {
		t.Errorf("ExtractString = %q", got)
	}
	if got := provider.ExtractString(12.0); got != "" {
		t.Errorf("ExtractString(non-string) = %q", got)
	}
}
