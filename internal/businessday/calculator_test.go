package businessday

import (
	"errors"
	"testing"
	"time"

	"github.com/staticWagomU/slack-remind-generator/internal/models"
)

func TestCalculator_LastBusinessDay(t *testing.T) {
	t.Parallel()

	may29 := func(date time.Time) bool {
		return date.Month() == time.May && date.Day() == 29
	}

	tests := []struct {
		name     string
		holidays HolidayChecker
		year     int
		month    int
		expected string
	}{
		{"month ending on sunday", DefaultCalendar(), 2026, 5, "2026-05-29"},
		{"month ending on weekday", DefaultCalendar(), 2026, 9, "2026-09-30"},
		{"month ending on sunday 2025", DefaultCalendar(), 2025, 11, "2025-11-28"},
		{"substitute holiday on last monday", DefaultCalendar(), 2029, 4, "2029-04-27"},
		{"year-end", DefaultCalendar(), 2040, 12, "2040-12-31"},
		{"holiday before weekend", HolidayCheckerFunc(may29), 2026, 5, "2026-05-28"},
		{"leap february", nil, 2028, 2, "2028-02-29"},
		{"non-leap february", nil, 2027, 2, "2027-02-26"},
		{"nil checker", nil, 2026, 12, "2026-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := NewCalculator(tt.holidays)
			got, err := c.LastBusinessDay(tt.year, tt.month, time.UTC)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Format("2006-01-02") != tt.expected {
				t.Errorf("LastBusinessDay() = %s, want %s", got.Format("2006-01-02"), tt.expected)
			}
		})
	}
}

func TestCalculator_LastBusinessDay_Errors(t *testing.T) {
	t.Parallel()

	always := HolidayCheckerFunc(func(time.Time) bool { return true })

	tests := []struct {
		name     string
		holidays HolidayChecker
		month    int
	}{
		{"all holidays", always, 5},
		{"month zero", nil, 0},
		{"month thirteen", nil, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewCalculator(tt.holidays).LastBusinessDay(2026, tt.month, time.UTC)
			if !errors.Is(err, models.ErrInvalidInput) {
				t.Errorf("expected INVALID_INPUT error, got %v", err)
			}
		})
	}
}

func TestCalculator_LastBusinessDay_UncoveredYear(t *testing.T) {
	t.Parallel()

	c := NewCalculator(DefaultCalendar())
	for _, year := range []int{MinYear - 1, MaxYear + 1} {
		if _, err := c.LastBusinessDay(year, 4, time.UTC); !errors.Is(err, models.ErrInvalidInput) {
			t.Errorf("LastBusinessDay(%d) error = %v, want INVALID_INPUT", year, err)
		}
	}
	if _, err := c.LastBusinessDay(MaxYear, 4, time.UTC); err != nil {
		t.Errorf("LastBusinessDay(%d) error = %v", MaxYear, err)
	}
}

func TestCalculator_IsBusinessDay(t *testing.T) {
	t.Parallel()

	c := NewCalculator(DefaultCalendar())
	tests := []struct {
		date     time.Time
		business bool
	}{
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), false},  // 元日
		{time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), true},   // Friday
		{time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC), false},  // Saturday
		{time.Date(2026, 9, 22, 0, 0, 0, 0, time.UTC), false}, // 国民の休日
		{time.Date(2026, 5, 6, 0, 0, 0, 0, time.UTC), false},  // 振替休日
		{time.Date(2029, 4, 30, 0, 0, 0, 0, time.UTC), false}, // 振替休日
		{time.Date(2029, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2037, 9, 22, 0, 0, 0, 0, time.UTC), false}, // 国民の休日
	}
	for _, tt := range tests {
		if got := c.IsBusinessDay(tt.date); got != tt.business {
			t.Errorf("IsBusinessDay(%s) = %v, want %v", tt.date.Format("2006-01-02"), got, tt.business)
		}
	}
}

func TestFormatJapaneseDate(t *testing.T) {
	t.Parallel()

	date := time.Date(2026, time.May, 29, 0, 0, 0, 0, time.UTC)
	if got := FormatJapaneseDate(date); got != "2026年5月29日(金)" {
		t.Errorf("FormatJapaneseDate() = %q", got)
	}
}

func TestYearAndMonthOptions(t *testing.T) {
	t.Parallel()

	years := YearOptions(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC))
	if len(years) != 3 || years[0].Value != 2026 || years[2].Label != "2028年" {
		t.Errorf("unexpected year options: %+v", years)
	}

	months := MonthOptions()
	if len(months) != 12 || months[0].Label != "1月" || months[11].Value != 12 {
		t.Errorf("unexpected month options: %+v", months)
	}
}
