package task

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Length limits, counted in characters (runes).
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

var validate = newValidator()

var fieldRules = map[string]string{
	FieldTitle:       "required,max=" + strconv.Itoa(MaxTitleLength) + ",text",
	FieldDescription: "max=" + strconv.Itoa(MaxDescriptionLength) + ",text",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("text", func(fl validator.FieldLevel) bool {
		return isText(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// isText reports whether s is valid UTF-8 free of control characters other
// than tab, newline and carriage return. Both file encodings can represent
// such text without substitution.
func isText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
		case r < 0x20 || r == 0x7f:
			return false
		case r == 0xfffe || r == 0xffff:
			return false
		}
	}
	return true
}

// checkField runs the validator rule registered for field against value.
func checkField(field, value string) error {
	err := validate.Var(value, fieldRules[field])
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fieldError(field, reasonFor(fieldErrs[0]))
	}
	return fieldError(field, err)
}

func reasonFor(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return ErrRequired
	case "max":
		return fmt.Errorf("%w: at most %s characters", ErrTooLong, fe.Param())
	case "text":
		return ErrInvalidText
	default:
		return fmt.Errorf("failed %q rule", fe.Tag())
	}
}

// NormalizeTitle trims surrounding whitespace and validates the result.
func NormalizeTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if err := checkField(FieldTitle, trimmed); err != nil {
		return "", err
	}
	return trimmed, nil
}

// ValidateDescription checks the description length. Nil means absent and is valid.
func ValidateDescription(description *string) error {
	if description == nil {
		return nil
	}
	return checkField(FieldDescription, *description)
}

// MaxDueYear is the last year a due date may fall in. Later years have no
// RFC 3339 representation.
const MaxDueYear = 9999

// ValidateDueDate rejects a due date strictly before now or after MaxDueYear.
// Nil is valid.
func ValidateDueDate(due *time.Time, now time.Time) error {
	if due == nil {
		return nil
	}
	if due.Before(now) {
		return fieldError(FieldDueDate, ErrPastDueDate)
	}
	if due.UTC().Year() > MaxDueYear {
		return fieldError(FieldDueDate, fmt.Errorf("%w: after year %d", ErrDueDateOutOfRange, MaxDueYear))
	}
	return nil
}

// ParseID validates a user-supplied identifier and returns its canonical form.
func ParseID(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fieldError(FieldID, ErrRequired)
	}
	id, err := uuid.Parse(trimmed)
	if err != nil {
		return "", fieldError(FieldID, fmt.Errorf("%w: %q", ErrInvalidID, trimmed))
	}
	return id.String(), nil
}
