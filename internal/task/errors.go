package task

import (
	"errors"
	"fmt"
)

// Field names used in validation errors. They match the persisted keys.
const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDueDate     = "due_date"
	FieldCreatedAt   = "created_at"
	FieldUpdatedAt   = "updated_at"
)

// Validation reasons wrapped by ValidationError.
var (
	// ErrRequired is returned when a required field is empty.
	ErrRequired = errors.New("cannot be empty")

	// ErrTooLong is returned when a text field exceeds its length limit.
	ErrTooLong = errors.New("too long")

	// ErrInvalidText is returned when text holds control characters or invalid UTF-8.
	ErrInvalidText = errors.New("contains invalid characters")

	// ErrPastDueDate is returned when a due date is earlier than now.
	ErrPastDueDate = errors.New("cannot be in the past")

	// ErrDueDateOutOfRange is returned when a due date cannot be stored.
	ErrDueDateOutOfRange = errors.New("out of range")

	// ErrInvalidID is returned when an identifier is not a valid UUID.
	ErrInvalidID = errors.New("not a valid task id")

	// ErrNoChanges is returned when an edit supplies no fields.
	ErrNoChanges = errors.New("no fields to update")

	// ErrConflictingChange is returned when an edit both sets and clears a field.
	ErrConflictingChange = errors.New("cannot be set and cleared at once")

	// ErrInconsistent is returned by Restore when stored values break an invariant.
	ErrInconsistent = errors.New("inconsistent value")
)

// ErrAlreadyCompleted is the DomainError reason for a second completion.
var ErrAlreadyCompleted = errors.New("already completed")

// ValidationError represents a field-level validation failure.
type ValidationError struct {
	Field string // Persisted field name, empty for whole-record errors
	Err   error  // Underlying reason
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying reason.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// DomainError represents a state transition the task does not allow.
type DomainError struct {
	Op     string
	TaskID string
	Err    error
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s task %s: %s", e.Op, e.TaskID, e.Err)
}

// Unwrap returns the underlying reason.
func (e *DomainError) Unwrap() error {
	return e.Err
}

func fieldError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}
