package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/staticWagomU/slack-remind-generator/internal/businessday"
	"github.com/staticWagomU/slack-remind-generator/internal/models"
	"github.com/staticWagomU/slack-remind-generator/internal/recurrence"
	"github.com/staticWagomU/slack-remind-generator/internal/timeconv"
	"github.com/staticWagomU/slack-remind-generator/internal/validation"
)

// DefaultReminderTime is used by last-business-day when no time is given
const DefaultReminderTime = "09:00"

// TimeHandler exposes the time converter, recurrence formatter and
// business-day calculator
type TimeHandler struct {
	converter  *timeconv.Converter
	calculator *businessday.Calculator
	now        func() time.Time
	loc        *time.Location
}

// NewTimeHandler creates a new time handler. loc is the zone business days
// are computed in; nil means time.Local.
func NewTimeHandler(converter *timeconv.Converter, calculator *businessday.Calculator, loc *time.Location) *TimeHandler {
	if loc == nil {
		loc = time.Local
	}
	return &TimeHandler{
		converter:  converter,
		calculator: calculator,
		now:        time.Now,
		loc:        loc,
	}
}

// RegisterRoutes registers time routes. The router should already have the
// /time prefix.
func (h *TimeHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/convert", h.Convert).Methods(http.MethodPost)
	r.HandleFunc("/recurrence", h.Recurrence).Methods(http.MethodPost)
	r.HandleFunc("/calendar", h.Calendar).Methods(http.MethodPost)
	r.HandleFunc("/last-business-day", h.LastBusinessDay).Methods(http.MethodGet)
	r.HandleFunc("/options", h.Options).Methods(http.MethodGet)
}

// ConvertRequest represents a natural-language time conversion request
type ConvertRequest struct {
	Input string `json:"input" validate:"max=200"`
	Date  string `json:"date,omitempty" validate:"max=200"`
}

// ConvertResponse carries the conversion and its warnings
type ConvertResponse struct {
	models.TimeInput
	Combined string   `json:"combined,omitempty"`
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings"`
}

// Convert handles POST /time/convert
func (h *TimeHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result := h.converter.Convert(req.Input)
	valid, warnings := timeconv.Validate(result)
	if warnings == nil {
		warnings = []string{}
	}
	resp := ConvertResponse{TimeInput: result, Valid: valid, Warnings: warnings}
	if req.Date != "" {
		resp.Combined = h.converter.CombineDateTime(req.Input, req.Date)
	}
	respondJSON(w, http.StatusOK, resp)
}

// RecurrenceRequest mirrors models.RecurringConfig with validation rules
type RecurrenceRequest struct {
	Frequency    string   `json:"frequency" validate:"required,frequency"`
	SelectedDays []string `json:"selected_days" validate:"max=7,dive,weekday"`
	SelectedTime string   `json:"selected_time" validate:"required,hhmm"`
	IsEveryOther bool     `json:"is_every_other"`
	DayOfMonth   int      `json:"day_of_month,omitempty" validate:"omitempty,min=1,max=31"`
}

// WhenResponse is the rendered "when" clause
type WhenResponse struct {
	When string `json:"when"`
}

// Recurrence handles POST /time/recurrence
func (h *TimeHandler) Recurrence(w http.ResponseWriter, r *http.Request) {
	var req RecurrenceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	when := recurrence.Format(models.RecurringConfig{
		Frequency:    models.Frequency(req.Frequency),
		SelectedDays: req.SelectedDays,
		SelectedTime: req.SelectedTime,
		IsEveryOther: req.IsEveryOther,
		DayOfMonth:   req.DayOfMonth,
	})
	respondJSON(w, http.StatusOK, WhenResponse{When: when})
}

// CalendarRequest is a date picked on a calendar plus a time
type CalendarRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required,hhmm"`
}

// Calendar handles POST /time/calendar
func (h *TimeHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	var req CalendarRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, h.loc)
	if err != nil {
		respondCodedError(w, http.StatusBadRequest, "Bad Request", "date must be YYYY-MM-DD", models.CodeInvalidInput)
		return
	}
	respondJSON(w, http.StatusOK, WhenResponse{When: recurrence.FormatCalendarSelection(date, req.Time)})
}

// lastBusinessDayQuery is validated like a request body
type lastBusinessDayQuery struct {
	Year  int    `json:"year" validate:"required,gte=1970,lte=9999"`
	Month int    `json:"month" validate:"required,gte=1,lte=12"`
	Time  string `json:"time" validate:"hhmm"`
}

// LastBusinessDayResponse describes the computed date
type LastBusinessDayResponse struct {
	Date    string `json:"date"`
	Display string `json:"display"`
	When    string `json:"when"`
}

// LastBusinessDay handles GET /time/last-business-day?year=&month=&time=
func (h *TimeHandler) LastBusinessDay(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := lastBusinessDayQuery{Time: query.Get("time")}
	if q.Time == "" {
		q.Time = DefaultReminderTime
	}

	var err error
	if q.Year, err = strconv.Atoi(query.Get("year")); err != nil {
		respondCodedError(w, http.StatusBadRequest, "Bad Request", "year must be a number", models.CodeInvalidInput)
		return
	}
	if q.Month, err = strconv.Atoi(query.Get("month")); err != nil {
		respondCodedError(w, http.StatusBadRequest, "Bad Request", "month must be a number", models.CodeInvalidInput)
		return
	}
	if err := validation.Validate.Struct(q); err != nil {
		respondCodedError(w, http.StatusBadRequest, "Bad Request", validation.Message(err), models.CodeInvalidInput)
		return
	}

	date, err := h.calculator.LastBusinessDay(q.Year, q.Month, h.loc)
	if err != nil {
		respondAIError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, LastBusinessDayResponse{
		Date:    date.Format("2006-01-02"),
		Display: businessday.FormatJapaneseDate(date),
		When:    recurrence.FormatCalendarSelection(date, q.Time),
	})
}

// OptionsResponse lists every selectable value the form offers
type OptionsResponse struct {
	Times    []recurrence.Option      `json:"times"`
	Quick    []recurrence.QuickOption `json:"quick"`
	Weekdays []recurrence.Option      `json:"weekdays"`
	Years    []businessday.Option     `json:"years"`
	Months   []businessday.Option     `json:"months"`
}

// Options handles GET /time/options
func (h *TimeHandler) Options(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, OptionsResponse{
		Times:    recurrence.TimeOptions(),
		Quick:    recurrence.QuickOptions,
		Weekdays: recurrence.WeekdayOptions,
		Years:    businessday.YearOptions(h.now().In(h.loc)),
		Months:   businessday.MonthOptions(),
	})
}
