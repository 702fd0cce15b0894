package timeconv

import (
	"errors"
	"testing"
)

func TestNormalizeClock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
		err      error
	}{
		{"1430", "14:30", nil},
		{"930", "09:30", nil},
		{"9", "00:09", nil},
		{"14", "00:14", nil},
		{"9:30", "09:30", nil},
		{"23:59", "23:59", nil},
		{"", "", ErrClockEmpty},
		{"  ", "", ErrClockEmpty},
		{"abc", "", ErrClockNoDigits},
		{"12345", "", ErrClockTooLong},
		{"2430", "", ErrClockHour},
		{"1260", "", ErrClockMinute},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := NormalizeClock(tt.input)
			if !errors.Is(err, tt.err) {
				t.Fatalf("err = %v, want %v", err, tt.err)
			}
			if got != tt.expected {
				t.Errorf("NormalizeClock(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatHHMMToDisplay(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":      "",
		"9":     "00:09",
		"930":   "09:30",
		"1430":  "14:30",
		"14:30": "14:30",
		"14305": "1430",
	}
	for in, want := range tests {
		if got := FormatHHMMToDisplay(in); got != want {
			t.Errorf("FormatHHMMToDisplay(%q) = %q, want %q", in, got, want)
		}
	}

	if got := FormatDisplayToHHMM("09:30"); got != "0930" {
		t.Errorf("FormatDisplayToHHMM() = %q, want 0930", got)
	}
}
