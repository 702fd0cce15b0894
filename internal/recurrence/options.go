package recurrence

import (
	"fmt"

	"github.com/staticWagomU/slack-remind-generator/internal/models"
)

// Option is a labelled choice offered by the form
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// QuickOption is a preset "when" value
type QuickOption struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Value    string `json:"value"`
}

// Quick option groups
const (
	QuickRelative = string(models.CategoryRelative)
	QuickTomorrow = "tomorrow"
)

// QuickOptions lists the presets offered by quick-select mode
var QuickOptions = []QuickOption{
	{Category: QuickRelative, Label: "10分後", Value: "in 10 minutes"},
	{Category: QuickRelative, Label: "15分後", Value: "in 15 minutes"},
	{Category: QuickRelative, Label: "30分後", Value: "in 30 minutes"},
	{Category: QuickRelative, Label: "45分後", Value: "in 45 minutes"},
	{Category: QuickRelative, Label: "1時間後", Value: "in 1 hour"},
	{Category: QuickRelative, Label: "2時間後", Value: "in 2 hours"},
	{Category: QuickRelative, Label: "3時間後", Value: "in 3 hours"},
	{Category: QuickRelative, Label: "6時間後", Value: "in 6 hours"},
	{Category: QuickTomorrow, Label: "明日の朝9時", Value: "at 9am tomorrow"},
	{Category: QuickTomorrow, Label: "明日の昼12時", Value: "at 12pm tomorrow"},
	{Category: QuickTomorrow, Label: "明日の夕方6時", Value: "at 6pm tomorrow"},
}

// WeekdayOptions lists the selectable days, Monday first
var WeekdayOptions = []Option{
	{Value: "Monday", Label: "月曜日"},
	{Value: "Tuesday", Label: "火曜日"},
	{Value: "Wednesday", Label: "水曜日"},
	{Value: "Thursday", Label: "木曜日"},
	{Value: "Friday", Label: "金曜日"},
	{Value: "Saturday", Label: "土曜日"},
	{Value: "Sunday", Label: "日曜日"},
}

// IsWeekday reports whether name is one of the WeekdayOptions values
func IsWeekday(name string) bool {
	for _, o := range WeekdayOptions {
		if o.Value == name {
			return true
		}
	}
	return false
}

// TimeOptions returns every half hour of the day, "00:00" through "23:30",
// labelled like "12 AM", "9:30 AM".
func TimeOptions() []Option {
	options := make([]Option, 0, 48)
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute += 30 {
			options = append(options, Option{
				Label: timeLabel(hour, minute),
				Value: fmt.Sprintf("%02d:%02d", hour, minute),
			})
		}
	}
	return options
}

func timeLabel(hour, minute int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour > 12:
		display = hour - 12
	}
	if minute == 0 {
		return fmt.Sprintf("%d %s", display, period)
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, period)
}
