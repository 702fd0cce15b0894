package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/staticWagomU/slack-remind-generator/internal/models"
	"github.com/staticWagomU/slack-remind-generator/internal/recurrence"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate

	hhmmPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

func init() {
	Validate = validator.New()

	// Report fields by their JSON names
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validators for enums
	// These should never fail in normal operation
	custom := map[string]validator.Func{
		"hhmm":      validateHHMM,
		"frequency": validateFrequency,
		"weekday":   validateWeekday,
		"who_type":  validateWhoType,
	}
	for tag, fn := range custom {
		if err := Validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("failed to register %s validator: %v", tag, err))
		}
	}
}

// validateHHMM accepts 24-hour "HH:MM"
func validateHHMM(fl validator.FieldLevel) bool {
	return hhmmPattern.MatchString(fl.Field().String())
}

// validateFrequency validates that a string is a valid Frequency enum value
func validateFrequency(fl validator.FieldLevel) bool {
	return models.Frequency(fl.Field().String()).Valid()
}

// validateWeekday accepts English day names as offered by the form
func validateWeekday(fl validator.FieldLevel) bool {
	return recurrence.IsWeekday(fl.Field().String())
}

func validateWhoType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case models.WhoTypeMe, models.WhoTypeUser, models.WhoTypeChannel:
		return true
	default:
		return false
	}
}

// Message turns a validation error into a single readable line naming the
// first failing field.
func Message(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return "Validation failed"
	}
	fe := validationErrors[0]
	field := fe.Namespace()
	if _, after, ok := strings.Cut(field, "."); ok {
		field = after
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "hhmm":
		return fmt.Sprintf("%s must be HH:MM, got %q", field, fe.Value())
	case "frequency":
		return fmt.Sprintf("%s must be daily, weekday, weekly, biweekly or monthly", field)
	case "weekday":
		return fmt.Sprintf("%s must be an English weekday name, got %q", field, fe.Value())
	case "who_type":
		return fmt.Sprintf("%s must be me, user or channel", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min", "gte", "lte":
		return fmt.Sprintf("%s is out of range (%s %s)", field, fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("Validation failed: %s", fe.Error())
	}
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	// Remove control characters except newline and tab
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}
