package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/staticWagomU/slack-remind-generator/internal/businessday"
	"github.com/staticWagomU/slack-remind-generator/internal/models"
	"github.com/staticWagomU/slack-remind-generator/internal/recurrence"
	"github.com/staticWagomU/slack-remind-generator/internal/timeconv"
)

// defaultReminderTime is used when --time is omitted
const defaultReminderTime = "09:00"

// conversion is the JSON shape of convert output
type conversion struct {
	models.TimeInput
	Combined string   `json:"combined,omitempty"`
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings"`
}

func newConvertCmd(app *App) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "convert <text>",
		Short: "Convert a Japanese time expression to Slack syntax",
		Example: `  remind convert 明日の午後3時
  remind convert 午後3時 --date 明日`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			converter := timeconv.NewWithClock(app.Now)
			input := strings.Join(args, " ")

			result := converter.Convert(input)
			valid, warnings := timeconv.Validate(result)
			out := conversion{TimeInput: result, Valid: valid, Warnings: warnings}
			if out.Warnings == nil {
				out.Warnings = []string{}
			}

			when := result.Value
			if date != "" {
				out.Combined = converter.CombineDateTime(input, date)
				when = out.Combined
			}

			var b strings.Builder
			fmt.Fprintf(&b, "%s (%s)", when, result.Type)
			for _, w := range warnings {
				fmt.Fprintf(&b, "\n⚠ %s", w)
			}
			return app.emit(cmd, out, b.String(), when)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Date phrase combined with the time (e.g. 明日, 来週月曜)")
	return cmd
}

// normalizeDay accepts "Monday", "monday", "月曜日" or "月"
func normalizeDay(day string) (string, error) {
	day = strings.TrimSpace(day)
	for _, o := range recurrence.WeekdayOptions {
		if strings.EqualFold(day, o.Value) || day == o.Label || day == strings.TrimSuffix(o.Label, "曜日") || day == strings.TrimSuffix(o.Label, "日") {
			return o.Value, nil
		}
	}
	return "", fmt.Errorf("unknown weekday %q", day)
}

// normalizeTime accepts "HH:MM" or loose clock input such as "930"
func normalizeTime(input string) (string, error) {
	hhmm, err := timeconv.NormalizeClock(input)
	if err != nil {
		return "", fmt.Errorf("invalid --time %q: %w", input, err)
	}
	return hhmm, nil
}

func newRecurrenceCmd(app *App) *cobra.Command {
	var (
		frequency  string
		days       []string
		at         string
		everyOther bool
		dayOfMonth int
	)
	cmd := &cobra.Command{
		Use:   "recurrence",
		Short: "Format a recurring schedule",
		Example: `  remind recurrence --frequency weekday --time 0930
  remind recurrence --frequency weekly --days 月,水 --time 14:00
  remind recurrence --frequency monthly --day-of-month 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			freq := models.Frequency(frequency)
			if !freq.Valid() {
				return fmt.Errorf("--frequency must be one of daily, weekday, weekly, biweekly, monthly")
			}
			hhmm, err := normalizeTime(at)
			if err != nil {
				return err
			}
			if dayOfMonth < 0 || dayOfMonth > 31 {
				return fmt.Errorf("--day-of-month must be between 1 and 31")
			}

			cfg := models.RecurringConfig{
				Frequency:    freq,
				SelectedTime: hhmm,
				IsEveryOther: everyOther,
				DayOfMonth:   dayOfMonth,
				SelectedDays: []string{},
			}
			for _, d := range days {
				name, err := normalizeDay(d)
				if err != nil {
					return err
				}
				cfg.SelectedDays = append(cfg.SelectedDays, name)
			}

			when := recurrence.Format(cfg)
			if when == "" {
				return fmt.Errorf("%s needs at least one --days value", freq)
			}
			return app.emit(cmd, map[string]string{"when": when}, when, when)
		},
	}
	cmd.Flags().StringVar(&frequency, "frequency", string(models.FrequencyDaily), "daily, weekday, weekly, biweekly or monthly")
	cmd.Flags().StringSliceVar(&days, "days", nil, "Weekdays for weekly schedules, in output order (e.g. Monday,Wednesday or 月,水)")
	cmd.Flags().StringVar(&at, "time", defaultReminderTime, "Time of day (HH:MM or HHMM)")
	cmd.Flags().BoolVar(&everyOther, "every-other", false, "Every other week (weekly only)")
	cmd.Flags().IntVar(&dayOfMonth, "day-of-month", 0, "Day of the month (monthly only)")
	return cmd
}

// businessDayResult is the JSON shape of business-day output
type businessDayResult struct {
	Date    string `json:"date"`
	Display string `json:"display"`
	When    string `json:"when"`
}

func newBusinessDayCmd(app *App) *cobra.Command {
	var (
		year  int
		month int
		at    string
	)
	cmd := &cobra.Command{
		Use:     "business-day",
		Short:   "Remind on the last business day of a month",
		Example: `  remind business-day --year 2026 --month 5 --time 1700`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.Now()
			if year == 0 {
				year = now.Year()
			}
			if month == 0 {
				month = int(now.Month())
			}
			hhmm, err := normalizeTime(at)
			if err != nil {
				return err
			}

			cfg, err := app.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			calendar, err := businessday.NewCalendar(cfg.HolidaysFile)
			if err != nil {
				return fmt.Errorf("load holiday calendar: %w", err)
			}

			date, err := businessday.NewCalculator(calendar).LastBusinessDay(year, month, now.Location())
			if err != nil {
				return err
			}

			out := businessDayResult{
				Date:    date.Format(time.DateOnly),
				Display: businessday.FormatJapaneseDate(date),
				When:    recurrence.FormatCalendarSelection(date, hhmm),
			}
			return app.emit(cmd, out, fmt.Sprintf("%s\n%s", out.Display, out.When), out.When)
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "Year (default: current year)")
	cmd.Flags().IntVar(&month, "month", 0, "Month 1-12 (default: current month)")
	cmd.Flags().StringVar(&at, "time", defaultReminderTime, "Time of day (HH:MM or HHMM)")
	return cmd
}
