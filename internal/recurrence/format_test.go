package recurrence

import (
	"testing"
	"time"

	"github.com/staticWagomU/slack-remind-generator/internal/models"
)

func TestOrdinal(t *testing.T) {
	t.Parallel()

	tests := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 10: "10th",
		11: "11th", 12: "12th", 13: "13th", 21: "21st", 22: "22nd",
		23: "23rd", 30: "30th", 31: "31st", 111: "111th", 112: "112th",
	}
	for n, want := range tests {
		if got := Ordinal(n); got != want {
			t.Errorf("Ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestTo12Hour(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"00:00", "12am", true},
		{"00:30", "12:30am", true},
		{"09:00", "9am", true},
		{"09:05", "9:05am", true},
		{"12:00", "12pm", true},
		{"12:45", "12:45pm", true},
		{"14:30", "2:30pm", true},
		{"23:00", "11pm", true},
		{"", "", false},
		{"9am", "", false},
		{"25:00", "", false},
		{"10:75", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, ok := To12Hour(tt.input)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("To12Hour(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   models.RecurringConfig
		expected string
	}{
		{
			name:     "daily",
			config:   models.RecurringConfig{Frequency: models.FrequencyDaily, SelectedTime: "09:00"},
			expected: "at 9am every day",
		},
		{
			name:     "weekday",
			config:   models.RecurringConfig{Frequency: models.FrequencyWeekday, SelectedTime: "08:30"},
			expected: "at 8:30am every weekday",
		},
		{
			name:     "weekly keeps selection order",
			config:   models.RecurringConfig{Frequency: models.FrequencyWeekly, SelectedDays: []string{"Friday", "Monday"}, SelectedTime: "10:00"},
			expected: "at 10am every Friday and Monday",
		},
		{
			name:     "weekly every other",
			config:   models.RecurringConfig{Frequency: models.FrequencyWeekly, SelectedDays: []string{"Tuesday"}, SelectedTime: "15:00", IsEveryOther: true},
			expected: "at 3pm every other Tuesday",
		},
		{
			name:     "weekly without days",
			config:   models.RecurringConfig{Frequency: models.FrequencyWeekly, SelectedTime: "10:00"},
			expected: "",
		},
		{
			name:     "biweekly",
			config:   models.RecurringConfig{Frequency: models.FrequencyBiweekly, SelectedDays: []string{"Monday", "Thursday"}, SelectedTime: "13:15"},
			expected: "at 1:15pm every other Monday and Thursday",
		},
		{
			name:     "biweekly without days",
			config:   models.RecurringConfig{Frequency: models.FrequencyBiweekly, SelectedTime: "13:15"},
			expected: "",
		},
		{
			name:     "monthly on day",
			config:   models.RecurringConfig{Frequency: models.FrequencyMonthly, SelectedTime: "09:00", DayOfMonth: 22},
			expected: "at 9am on the 22nd of every month",
		},
		{
			name:     "monthly without day",
			config:   models.RecurringConfig{Frequency: models.FrequencyMonthly, SelectedTime: "00:00"},
			expected: "at 12am every month",
		},
		{
			name:     "unknown frequency",
			config:   models.RecurringConfig{Frequency: "yearly", SelectedTime: "09:00"},
			expected: "",
		},
		{
			name:     "bad time",
			config:   models.RecurringConfig{Frequency: models.FrequencyDaily, SelectedTime: "nine"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Format(tt.config); got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatCalendarSelection(t *testing.T) {
	t.Parallel()

	date := time.Date(2026, time.May, 29, 0, 0, 0, 0, time.UTC)
	if got := FormatCalendarSelection(date, "14:00"); got != "at 2pm on 5/29/2026" {
		t.Errorf("FormatCalendarSelection() = %q", got)
	}
	if got := FormatCalendarSelection(date, ""); got != "" {
		t.Errorf("expected empty result for missing time, got %q", got)
	}
}
