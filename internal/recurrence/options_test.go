package recurrence

import (
	"testing"
)

func TestTimeOptions(t *testing.T) {
	t.Parallel()

	options := TimeOptions()
	if len(options) != 48 {
		t.Fatalf("expected 48 options, got %d", len(options))
	}

	tests := []struct {
		index int
		label string
		value string
	}{
		{0, "12 AM", "00:00"},
		{1, "12:30 AM", "00:30"},
		{18, "9 AM", "09:00"},
		{19, "9:30 AM", "09:30"},
		{24, "12 PM", "12:00"},
		{47, "11:30 PM", "23:30"},
	}
	for _, tt := range tests {
		if got := options[tt.index]; got.Label != tt.label || got.Value != tt.value {
			t.Errorf("options[%d] = %+v, want {%s %s}", tt.index, got, tt.label, tt.value)
		}
	}
}

func TestQuickOptions(t *testing.T) {
	t.Parallel()

	if len(QuickOptions) != 11 {
		t.Fatalf("expected 11 quick options, got %d", len(QuickOptions))
	}
	if QuickOptions[0].Value != "in 10 minutes" || QuickOptions[4].Value != "in 1 hour" {
		t.Errorf("unexpected relative presets: %+v", QuickOptions[:5])
	}
	last := QuickOptions[len(QuickOptions)-1]
	if last.Category != QuickTomorrow || last.Value != "at 6pm tomorrow" {
		t.Errorf("unexpected last preset: %+v", last)
	}
}

func TestIsWeekday(t *testing.T) {
	t.Parallel()

	if !IsWeekday("Sunday") {
		t.Error("Sunday should be a weekday option")
	}
	if IsWeekday("monday") || IsWeekday("月曜日") {
		t.Error("only English capitalised names are option values")
	}
}
