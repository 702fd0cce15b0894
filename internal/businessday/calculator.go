// Package businessday finds the last business day of a month, skipping
// weekends and Japanese public holidays.
package businessday

import (
	"fmt"
	"time"

	"github.com/staticWagomU/slack-remind-generator/internal/models"
)

// Calculator computes business days against a holiday calendar.
type Calculator struct {
	Holidays HolidayChecker
}

// NewCalculator returns a calculator using holidays. A nil checker treats
// every weekday as a business day.
func NewCalculator(holidays HolidayChecker) *Calculator {
	return &Calculator{Holidays: holidays}
}

// IsBusinessDay reports whether date is neither a weekend nor a holiday
func (c *Calculator) IsBusinessDay(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	if c.Holidays != nil && c.Holidays.IsHoliday(date) {
		return false
	}
	return true
}

// DaysIn returns the number of days in month of year
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// LastBusinessDay returns the last business day of month (1-12) in year, at
// midnight in loc. It fails with INVALID_INPUT for an out-of-range month, a
// year the holiday calendar does not cover, or when no day of the month
// qualifies.
func (c *Calculator) LastBusinessDay(year, month int, loc *time.Location) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, models.NewAIError(models.CodeInvalidInput,
			fmt.Sprintf("month must be between 1 and 12, got %d", month))
	}
	if coverage, ok := c.Holidays.(YearCoverage); ok && !coverage.Covers(year) {
		return time.Time{}, models.NewAIError(models.CodeInvalidInput,
			fmt.Sprintf("holiday calendar does not cover %d", year))
	}
	if loc == nil {
		loc = time.Local
	}

	days := DaysIn(year, time.Month(month))
	date := time.Date(year, time.Month(month), days, 0, 0, 0, 0, loc)
	for i := 0; i < days; i++ {
		if c.IsBusinessDay(date) {
			return date, nil
		}
		date = date.AddDate(0, 0, -1)
	}

	return time.Time{}, models.NewAIError(models.CodeInvalidInput,
		fmt.Sprintf("no business day in %04d-%02d", year, month))
}

var japaneseWeekdays = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// FormatJapaneseDate renders date as "2026年5月29日(金)"
func FormatJapaneseDate(date time.Time) string {
	return fmt.Sprintf("%d年%d月%d日(%s)", date.Year(), int(date.Month()), date.Day(), japaneseWeekdays[date.Weekday()])
}

// Option is a numeric selectable value with a Japanese label
type Option struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// YearOptions returns now's year and the two following years
func YearOptions(now time.Time) []Option {
	options := make([]Option, 0, 3)
	for y := now.Year(); y <= now.Year()+2; y++ {
		options = append(options, Option{Label: fmt.Sprintf("%d年", y), Value: y})
	}
	return options
}

// MonthOptions returns 1月 through 12月
func MonthOptions() []Option {
	options := make([]Option, 0, 12)
	for m := 1; m <= 12; m++ {
		options = append(options, Option{Label: fmt.Sprintf("%d月", m), Value: m})
	}
	return options
}
