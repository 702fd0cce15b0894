package timeconv

import (
	"fmt"
	"regexp"
	"time"

	"github.com/staticWagomU/slack-remind-generator/internal/models"
)

// Rule maps one Japanese time phrase pattern to a Slack time expression.
// Convert receives the submatches of Pattern and the reference time.
type Rule struct {
	Name     string
	Pattern  *regexp.Regexp
	Category models.Category
	Convert  func(m []string, now time.Time) string
}

func literal(s string) func([]string, time.Time) string {
	return func([]string, time.Time) string { return s }
}

var weekdayRules = []struct {
	pattern string
	name    string
}{
	{"月曜日?", "Monday"},
	{"火曜日?", "Tuesday"},
	{"水曜日?", "Wednesday"},
	{"木曜日?", "Thursday"},
	{"金曜日?", "Friday"},
	{"土曜日?", "Saturday"},
	{"日曜日?", "Sunday"},
}

// Rules is the ordered rule table. The first matching rule wins, so longer
// patterns precede the shorter ones they overlap with.
var Rules = buildRules()

func buildRules() []Rule {
	rules := []Rule{
		{
			Name:     "minutes_later",
			Pattern:  regexp.MustCompile(`(\d+)分後`),
			Category: models.CategoryRelative,
			Convert:  func(m []string, _ time.Time) string { return "in " + m[1] + " minutes" },
		},
		{
			Name:     "minutes",
			Pattern:  regexp.MustCompile(`(\d+)分`),
			Category: models.CategoryRelative,
			Convert:  func(m []string, _ time.Time) string { return "in " + m[1] + " minutes" },
		},
		{
			Name:     "hours_later",
			Pattern:  regexp.MustCompile(`(\d+)時間後`),
			Category: models.CategoryRelative,
			Convert:  func(m []string, _ time.Time) string { return "in " + m[1] + " hours" },
		},
		{
			Name:     "hours",
			Pattern:  regexp.MustCompile(`(\d+)時間`),
			Category: models.CategoryRelative,
			Convert:  func(m []string, _ time.Time) string { return "in " + m[1] + " hours" },
		},
		{
			Name:     "days_later",
			Pattern:  regexp.MustCompile(`(\d+)日後`),
			Category: models.CategoryRelative,
			Convert:  func(m []string, _ time.Time) string { return "in " + m[1] + " days" },
		},
		{
			Name:     "clock",
			Pattern:  regexp.MustCompile(`(\d{1,2}):(\d{2})`),
			Category: models.CategoryAbsolute,
			Convert:  func(m []string, _ time.Time) string { return "at " + m[1] + ":" + m[2] },
		},
		{
			Name:     "morning_hour",
			Pattern:  regexp.MustCompile(`午前(\d{1,2})時`),
			Category: models.CategoryAbsolute,
			Convert:  func(m []string, _ time.Time) string { return "at " + m[1] + "am" },
		},
		{
			Name:     "afternoon_hour",
			Pattern:  regexp.MustCompile(`午後(\d{1,2})時`),
			Category: models.CategoryAbsolute,
			Convert:  func(m []string, _ time.Time) string { return "at " + m[1] + "pm" },
		},
		{
			Name:     "full_date",
			Pattern:  regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日`),
			Category: models.CategoryAbsolute,
			Convert: func(m []string, _ time.Time) string {
				return fmt.Sprintf("on %s/%s/%s", m[2], m[3], m[1])
			},
		},
		{
			Name:     "month_day",
			Pattern:  regexp.MustCompile(`(\d{1,2})月(\d{1,2})日`),
			Category: models.CategoryAbsolute,
			Convert: func(m []string, now time.Time) string {
				return fmt.Sprintf("on %s/%s/%d", m[1], m[2], now.Year())
			},
		},
		{Name: "tomorrow", Pattern: regexp.MustCompile(`明日`), Category: models.CategoryNatural, Convert: literal("tomorrow")},
		{Name: "today", Pattern: regexp.MustCompile(`今日`), Category: models.CategoryNatural, Convert: literal("today")},
	}

	// 毎週<曜日> is the only reordering: it goes before the bare weekday
	// rules so that 毎週月曜 is not read as just 月曜.
	for _, wd := range weekdayRules {
		rules = append(rules, Rule{
			Name:     "every_" + wd.name,
			Pattern:  regexp.MustCompile(`毎週` + wd.pattern),
			Category: models.CategoryRecurring,
			Convert:  literal("every " + wd.name),
		})
	}
	for _, wd := range weekdayRules {
		rules = append(rules, Rule{
			Name:     wd.name,
			Pattern:  regexp.MustCompile(wd.pattern),
			Category: models.CategoryNatural,
			Convert:  literal(wd.name),
		})
	}
	rules = append(rules,
		Rule{Name: "every_day", Pattern: regexp.MustCompile(`毎日`), Category: models.CategoryRecurring, Convert: literal("every day")},
		Rule{Name: "every_weekday", Pattern: regexp.MustCompile(`平日`), Category: models.CategoryRecurring, Convert: literal("every weekday")},
		Rule{Name: "every_month", Pattern: regexp.MustCompile(`毎月`), Category: models.CategoryRecurring, Convert: literal("every month")},
	)

	return rules
}
