package businessday

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/jp"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Years the rule-based Japanese calendar is accurate for. Showa Day and the
// current Greenery Day date start in 2007; the equinox formula ends in 2099.
const (
	MinYear = 2007
	MaxYear = 2099
)

// HolidayChecker reports whether a calendar date is a public holiday
type HolidayChecker interface {
	IsHoliday(date time.Time) bool
}

// HolidayCheckerFunc adapts a function to HolidayChecker
type HolidayCheckerFunc func(date time.Time) bool

// IsHoliday calls f(date)
func (f HolidayCheckerFunc) IsHoliday(date time.Time) bool {
	return f(date)
}

// YearCoverage is implemented by checkers that only know some years.
// LastBusinessDay refuses years outside it.
type YearCoverage interface {
	Covers(year int) bool
}

var japaneseNames = map[*cal.Holiday]string{
	jp.NewYear:                 "元日",
	jp.ComingOfAgeDay:          "成人の日",
	jp.NationalFoundationDay:   "建国記念の日",
	jp.TheEmperorsBirthday:     "天皇誕生日",
	jp.VernalEquinoxDay:        "春分の日",
	jp.ShowaDay:                "昭和の日",
	jp.ConstitutionMemorialDay: "憲法記念日",
	jp.GreeneryDay:             "みどりの日",
	jp.ChildrensDay:            "こどもの日",
	jp.MarineDay:               "海の日",
	jp.MountainDay:             "山の日",
	jp.RespectForTheAgedDay:    "敬老の日",
	jp.AutumnalEquinoxDay:      "秋分の日",
	jp.SportsDay:               "スポーツの日",
	jp.CultureDay:              "文化の日",
	jp.LaborThanksgivingDay:    "勤労感謝の日",
}

// JapanCalendar computes Japanese public holidays from the statutory rules,
// including substitute holidays (振替休日) and days sandwiched between two
// holidays (国民の休日).
type JapanCalendar struct {
	// jp rule funcs write to shared holiday definitions while computing
	mu  sync.Mutex
	cal *cal.Calendar
}

// NewJapanCalendar returns the rule-based calendar
func NewJapanCalendar() *JapanCalendar {
	c := &cal.Calendar{Name: "JP"}
	c.AddHoliday(jp.Holidays...)
	return &JapanCalendar{cal: c}
}

// Covers reports whether year is within MinYear..MaxYear
func (c *JapanCalendar) Covers(year int) bool {
	return year >= MinYear && year <= MaxYear
}

func (c *JapanCalendar) lookup(date time.Time) (string, bool) {
	// Compare on the calendar date, whatever the location
	day := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.UTC)

	c.mu.Lock()
	defer c.mu.Unlock()

	if actual, observed, h := c.cal.IsHoliday(day); actual || observed {
		if name, ok := japaneseNames[h]; ok && actual {
			return name, true
		}
		return "休日", true
	}
	if day.Weekday() == time.Sunday {
		return "", false
	}
	prev, _, _ := c.cal.IsHoliday(day.AddDate(0, 0, -1))
	next, _, _ := c.cal.IsHoliday(day.AddDate(0, 0, 1))
	if prev && next {
		return "国民の休日", true
	}
	return "", false
}

// IsHoliday implements HolidayChecker
func (c *JapanCalendar) IsHoliday(date time.Time) bool {
	_, ok := c.lookup(date)
	return ok
}

// Name returns the Japanese name of the holiday on date, if any
func (c *JapanCalendar) Name(date time.Time) (string, bool) {
	return c.lookup(date)
}

// Holiday is one entry of a holiday override file
type Holiday struct {
	Date string `yaml:"date"`
	Name string `yaml:"name"`
}

type calendarFile struct {
	Holidays []Holiday `yaml:"holidays"`
}

// YAMLCalendar is a HolidayChecker backed by a list of dated holidays.
// Lookups use the date's own year, month and day, so the location of the
// argument does not matter.
type YAMLCalendar struct {
	names map[string]string
}

// ParseCalendar reads a calendar document of the form
//
//	holidays:
//	  - { date: "2026-12-29", name: "年末休暇" }
func ParseCalendar(data []byte) (*YAMLCalendar, error) {
	var f calendarFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse holiday calendar: %w", err)
	}

	names := make(map[string]string, len(f.Holidays))
	for _, h := range f.Holidays {
		d, err := time.Parse(dateLayout, h.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", h.Date, err)
		}
		names[d.Format(dateLayout)] = h.Name
	}
	return &YAMLCalendar{names: names}, nil
}

// LoadCalendar reads a calendar file from disk
func LoadCalendar(path string) (*YAMLCalendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holiday calendar: %w", err)
	}
	return ParseCalendar(data)
}

func dateKey(date time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", date.Year(), int(date.Month()), date.Day())
}

// IsHoliday implements HolidayChecker
func (c *YAMLCalendar) IsHoliday(date time.Time) bool {
	_, ok := c.names[dateKey(date)]
	return ok
}

// Name returns the holiday name for date, if any
func (c *YAMLCalendar) Name(date time.Time) (string, bool) {
	name, ok := c.names[dateKey(date)]
	return name, ok
}

// Len returns the number of holidays in the calendar
func (c *YAMLCalendar) Len() int {
	return len(c.names)
}

// Calendar is the Japanese public calendar plus optional extra days off
// read from a YAML file (company holidays, year-end closure).
type Calendar struct {
	public *JapanCalendar
	extra  *YAMLCalendar
}

// DefaultCalendar returns the public calendar without extra days
func DefaultCalendar() *Calendar {
	return &Calendar{public: NewJapanCalendar()}
}

// NewCalendar returns the public calendar, extended with the days listed in
// the file at path when path is not empty
func NewCalendar(path string) (*Calendar, error) {
	c := DefaultCalendar()
	if path == "" {
		return c, nil
	}
	extra, err := LoadCalendar(path)
	if err != nil {
		return nil, err
	}
	c.extra = extra
	return c, nil
}

// IsHoliday implements HolidayChecker
func (c *Calendar) IsHoliday(date time.Time) bool {
	_, ok := c.Name(date)
	return ok
}

// Name returns the holiday name for date; extra days win over public ones
func (c *Calendar) Name(date time.Time) (string, bool) {
	if c.extra != nil {
		if name, ok := c.extra.Name(date); ok {
			return name, true
		}
	}
	return c.public.Name(date)
}

// Covers implements YearCoverage
func (c *Calendar) Covers(year int) bool {
	return c.public.Covers(year)
}

// ExtraDays returns the number of days read from the override file
func (c *Calendar) ExtraDays() int {
	if c.extra == nil {
		return 0
	}
	return c.extra.Len()
}
