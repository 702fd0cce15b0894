package timeconv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Clock input errors. Messages are shown to the user as is.
var (
	ErrClockEmpty    = errors.New("時刻を入力してください")
	ErrClockNoDigits = errors.New("数値のみ入力してください")
	ErrClockTooLong  = errors.New("4桁で入力してください (例: 1430)")
	ErrClockHour     = errors.New("時間は00-23の範囲で入力してください")
	ErrClockMinute   = errors.New("分は00-59の範囲で入力してください")
)

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// padClock widens 1-4 digits to HHMM. ok is false for longer input.
func padClock(digits string) (string, bool) {
	switch len(digits) {
	case 1, 2:
		return strings.Repeat("0", 4-len(digits)) + digits, true
	case 3:
		return "0" + digits, true
	case 4:
		return digits, true
	default:
		return "", false
	}
}

// NormalizeClock turns loosely typed clock input ("930", "9:30", "14") into "HH:MM".
func NormalizeClock(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrClockEmpty
	}

	digits := digitsOnly(input)
	if digits == "" {
		return "", ErrClockNoDigits
	}

	padded, ok := padClock(digits)
	if !ok {
		return "", ErrClockTooLong
	}

	hours, _ := strconv.Atoi(padded[:2])
	minutes, _ := strconv.Atoi(padded[2:])
	if hours > 23 {
		return "", ErrClockHour
	}
	if minutes > 59 {
		return "", ErrClockMinute
	}

	return fmt.Sprintf("%02d:%02d", hours, minutes), nil
}

// FormatHHMMToDisplay inserts the colon into partially typed HHMM input.
// Input longer than four digits is truncated without a colon.
func FormatHHMMToDisplay(hhmm string) string {
	digits := digitsOnly(hhmm)
	if digits == "" {
		return ""
	}

	padded, ok := padClock(digits)
	if !ok {
		return digits[:4]
	}
	return padded[:2] + ":" + padded[2:]
}

// FormatDisplayToHHMM strips colons
func FormatDisplayToHHMM(display string) string {
	return strings.ReplaceAll(display, ":", "")
}
