// Package timeconv converts Japanese time phrases into Slack /remind time
// expressions using an ordered rule table.
package timeconv

import (
	"strings"
	"time"

	"github.com/staticWagomU/slack-remind-generator/internal/models"
)

// Warning messages returned by Validate
const (
	WarningEmpty    = "時刻を入力してください"
	WarningPastTime = "指定した時刻が過去の場合、Slackは翌日として解釈します"
)

// Converter applies a rule table to free text
type Converter struct {
	rules []Rule
	now   func() time.Time
}

// New returns a converter over the default rule table
func New() *Converter {
	return &Converter{rules: Rules, now: time.Now}
}

// NewWithClock returns a converter whose year-less dates resolve against now()
func NewWithClock(now func() time.Time) *Converter {
	return &Converter{rules: Rules, now: now}
}

var defaultConverter = New()

// Convert converts input with the default converter
func Convert(input string) models.TimeInput {
	return defaultConverter.Convert(input)
}

// CombineDateTime combines a time and a date phrase with the default converter
func CombineDateTime(timeInput, dateInput string) string {
	return defaultConverter.CombineDateTime(timeInput, dateInput)
}

// Convert returns the first matching rule's expression for input. Empty input
// yields an empty natural value and unmatched input is passed through trimmed.
func (c *Converter) Convert(input string) models.TimeInput {
	normalized := strings.TrimSpace(input)
	if normalized == "" {
		return models.TimeInput{Type: models.CategoryNatural, Value: "", OriginalInput: input}
	}

	for _, rule := range c.rules {
		m := rule.Pattern.FindStringSubmatch(normalized)
		if m == nil {
			continue
		}
		return models.TimeInput{
			Type:          rule.Category,
			Value:         rule.Convert(m, c.now()),
			OriginalInput: input,
		}
	}

	return models.TimeInput{Type: models.CategoryNatural, Value: normalized, OriginalInput: input}
}

// CombineDateTime returns "<time> <date>" when both phrases convert to a
// value. Otherwise timeInput is returned as given.
func (c *Converter) CombineDateTime(timeInput, dateInput string) string {
	if dateInput == "" {
		return timeInput
	}

	date := c.Convert(dateInput)
	tm := c.Convert(timeInput)
	if date.Value != "" && tm.Value != "" {
		return tm.Value + " " + date.Value
	}
	return timeInput
}

// Validate reports whether in can be used as a "when" and any warnings to show
func Validate(in models.TimeInput) (bool, []string) {
	if in.Value == "" {
		return false, []string{WarningEmpty}
	}

	warnings := []string{}
	if in.Type == models.CategoryAbsolute && strings.Contains(in.Value, "at") {
		warnings = append(warnings, WarningPastTime)
	}
	return true, warnings
}
