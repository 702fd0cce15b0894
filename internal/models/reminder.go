package models

// Category classifies a converted time expression
type Category string

const (
	CategoryRelative  Category = "relative"
	CategoryAbsolute  Category = "absolute"
	CategoryNatural   Category = "natural"
	CategoryRecurring Category = "recurring"
)

// TimeInput is the result of converting one time phrase.
// An empty Value means the input was empty; a natural Value equal to the
// trimmed input means no rule matched and the text was passed through.
type TimeInput struct {
	Type          Category `json:"type"`
	Value         string   `json:"value"`
	OriginalInput string   `json:"original_input"`
}

// Frequency is the repeat unit of a recurring reminder
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekday  Frequency = "weekday"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// Valid reports whether f is one of the known frequencies
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekday, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

// RecurringConfig describes a user-chosen recurrence.
// SelectedDays keeps selection order, which is also the output order.
type RecurringConfig struct {
	Frequency    Frequency `json:"frequency"`
	SelectedDays []string  `json:"selected_days"`
	SelectedTime string    `json:"selected_time"` // "HH:MM"
	IsEveryOther bool      `json:"is_every_other"`
	DayOfMonth   int       `json:"day_of_month,omitempty"` // 1..31, 0 = unset
}

// LastBusinessDayConfig is the input of the last-business-day mode
type LastBusinessDayConfig struct {
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	SelectedTime string `json:"selected_time"`
}

// Who is the recipient of a reminder. Exactly one of WhoMe, WhoUser or
// WhoChannel.
type Who interface {
	isWho()
}

// WhoMe addresses the person running the command
type WhoMe struct{}

// WhoUser addresses another workspace member
type WhoUser struct {
	Username string
}

// WhoChannel addresses a channel
type WhoChannel struct {
	ChannelName string
}

func (WhoMe) isWho()      {}
func (WhoUser) isWho()    {}
func (WhoChannel) isWho() {}

// Who type discriminators used on the wire
const (
	WhoTypeMe      = "me"
	WhoTypeUser    = "user"
	WhoTypeChannel = "channel"
)

// NewWho builds a Who from its wire discriminator. Unknown types fall back to WhoMe.
func NewWho(whoType, name string) Who {
	switch whoType {
	case WhoTypeUser:
		return WhoUser{Username: name}
	case WhoTypeChannel:
		return WhoChannel{ChannelName: name}
	default:
		return WhoMe{}
	}
}

// ReminderConfig is one fully specified reminder
type ReminderConfig struct {
	Who  Who
	What string
	When string
}

// Ready reports whether every field is present
func (c ReminderConfig) Ready() bool {
	return c.Who != nil && c.What != "" && c.When != ""
}
