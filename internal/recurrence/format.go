// Package recurrence renders recurring and calendar schedules as Slack
// /remind time expressions.
package recurrence

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/staticWagomU/slack-remind-generator/internal/models"
)

// parseClock splits "HH:MM" into hour and minute
func parseClock(hhmm string) (int, int, bool) {
	h, m, found := strings.Cut(hhmm, ":")
	if !found {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// To12Hour renders "HH:MM" as Slack's 12-hour form: "9am", "9:30am", "12pm",
// "12:05am". ok is false when hhmm is not a valid clock time.
func To12Hour(hhmm string) (string, bool) {
	hour, minute, ok := parseClock(hhmm)
	if !ok {
		return "", false
	}

	suffix := "am"
	if hour >= 12 {
		suffix = "pm"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}

	if minute == 0 {
		return fmt.Sprintf("%d%s", display, suffix), true
	}
	return fmt.Sprintf("%d:%02d%s", display, minute, suffix), true
}

// Ordinal returns n with its English ordinal suffix (1st, 2nd, 11th, 21st).
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// Format renders cfg as a "when" expression. It returns "" when cfg cannot
// be expressed yet: unknown frequency, weekly without days, or a bad time.
func Format(cfg models.RecurringConfig) string {
	at, ok := To12Hour(cfg.SelectedTime)
	if !ok {
		return ""
	}

	days := strings.Join(cfg.SelectedDays, " and ")

	switch cfg.Frequency {
	case models.FrequencyDaily:
		return "at " + at + " every day"
	case models.FrequencyWeekday:
		return "at " + at + " every weekday"
	case models.FrequencyWeekly:
		if len(cfg.SelectedDays) == 0 {
			return ""
		}
		if cfg.IsEveryOther {
			return "at " + at + " every other " + days
		}
		return "at " + at + " every " + days
	case models.FrequencyBiweekly:
		if len(cfg.SelectedDays) == 0 {
			return ""
		}
		return "at " + at + " every other " + days
	case models.FrequencyMonthly:
		if cfg.DayOfMonth > 0 {
			return "at " + at + " on the " + Ordinal(cfg.DayOfMonth) + " of every month"
		}
		return "at " + at + " every month"
	default:
		return ""
	}
}

// FormatCalendarSelection renders a picked date and "HH:MM" time as
// "at 2pm on 5/29/2026". The date is read in its own location.
func FormatCalendarSelection(date time.Time, hhmm string) string {
	at, ok := To12Hour(hhmm)
	if !ok {
		return ""
	}
	return fmt.Sprintf("at %s on %d/%d/%d", at, int(date.Month()), date.Day(), date.Year())
}
