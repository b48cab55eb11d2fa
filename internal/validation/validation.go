// Package validation holds the field-level checks applied to request
// payloads before anything reaches the store.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/Brend-VanDenEynde/planner-api/internal/models"
)

const DateLayout = time.DateOnly

var (
	ErrEmptyField    = errors.New("empty field")
	ErrInvalidFormat = errors.New("invalid format")
	ErrPastDate      = errors.New("date in the past")
	ErrInvalidEnum   = errors.New("invalid enum value")
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldError is returned by every validator. Its message is safe to show
// to API clients; errors.Is matches one of the Err* sentinels.
type FieldError struct {
	Field   string
	Message string
	kind    error
}

func newFieldError(field string, kind error, format string, args ...any) *FieldError {
	return &FieldError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		kind:    kind,
	}
}

func (e *FieldError) Error() string {
	return e.Message
}

func (e *FieldError) Unwrap() error {
	return e.kind
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// ValidateRequired rejects blank values.
func ValidateRequired(value, field string) error {
	if isBlank(value) {
		return newFieldError(field, ErrEmptyField, "%s is required", field)
	}
	return nil
}

// ValidateName rejects blank names and names containing any digit.
func ValidateName(value, field string) error {
	if isBlank(value) {
		return newFieldError(field, ErrEmptyField, "%s is required", field)
	}
	if strings.IndexFunc(value, unicode.IsDigit) >= 0 {
		return newFieldError(field, ErrInvalidFormat, "%s must not contain digits", field)
	}
	return nil
}

// ValidateEmail rejects blank values and anything not shaped like x@y.z.
func ValidateEmail(value string) error {
	if isBlank(value) {
		return newFieldError("Email", ErrEmptyField, "Email is required")
	}
	if !emailRegexp.MatchString(value) {
		return newFieldError("Email", ErrInvalidFormat, "Invalid email format")
	}
	return nil
}

// ValidateDueDate parses value as a calendar date and rejects dates
// strictly before the date of now. Time of day is ignored on both sides.
// It returns the date normalized to DateLayout.
func ValidateDueDate(value string, now time.Time) (string, error) {
	if isBlank(value) {
		return "", newFieldError("Due date", ErrEmptyField, "Due date is required")
	}

	date, err := parseDate(strings.TrimSpace(value), now.Location())
	if err != nil {
		return "", newFieldError("Due date", ErrInvalidFormat,
			"Due date must be a valid date (YYYY-MM-DD)")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return "", newFieldError("Due date", ErrPastDate, "Due date must not be in the past")
	}
	return date.Format(DateLayout), nil
}

func parseDate(value string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation(DateLayout, value, loc)
	if err == nil {
		return date, nil
	}

	ts, tsErr := time.Parse(time.RFC3339, value)
	if tsErr != nil {
		return time.Time{}, err
	}
	// Keep the calendar date as written, whatever its offset.
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, loc), nil
}

// ValidateStatus rejects values outside models.TaskStatuses.
func ValidateStatus(value string) error {
	if !models.IsValidTaskStatus(value) {
		return newFieldError("Status", ErrInvalidEnum,
			"Invalid status. Must be one of: %s", strings.Join(models.TaskStatuses, ", "))
	}
	return nil
}
