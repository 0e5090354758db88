package formatting_test

import (
	"testing"

	"github.com/JaimeStill/moodai/pkg/formatting"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"bare bytes", "1024", 1024, false},
		{"bytes unit", "512B", 512, false},
		{"kilobytes", "64KB", 64 * 1024, false},
		{"megabytes", "1MB", 1024 * 1024, false},
		{"lowercase unit", "2mb", 2 * 1024 * 1024, false},
		{"with space", "256 KB", 256 * 1024, false},
		{"surrounding whitespace", "  1MB  ", 1024 * 1024, false},
		{"zero", "0", 0, false},
		{"empty string", "", 0, true},
		{"unknown unit", "1XB", 0, true},
		{"no number", "MB", 0, true},
		{"negative", "-1MB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBytes(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name      string
		n         int64
		precision int
		want      string
	}{
		{"zero", 0, 2, "0 B"},
		{"bytes", 500, 0, "500 B"},
		{"chat body limit", 1024 * 1024, 0, "1 MB"},
		{"fractional", 1536 * 1024, 1, "1.5 MB"},
		{"negative precision clamped", 1024, -1, "1 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
				t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
			}
			parsed, err := formatting.ParseBytes(formatting.FormatBytes(tt.n, 0))
			if err != nil {
				t.Fatalf("formatted value does not parse: %v", err)
			}
			if tt.precision <= 0 && parsed != tt.n {
				t.Errorf("round trip: got %d, want %d", parsed, tt.n)
			}
		})
	}
}
