package task

import (
	"errors"
	"time"
)

// Snapshot is the plain record of a task as persisted by storage backends.
// Nil optional fields mean the field is absent.
type Snapshot struct {
	ID          string
	Title       string
	Description *string
	DueDate     *time.Time
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Snapshot returns a copy of the task's fields.
func (t *Task) Snapshot() Snapshot {
	return Snapshot{
		ID:          t.id,
		Title:       t.title,
		Description: copyString(t.description),
		DueDate:     copyTime(t.dueDate),
		Completed:   t.completed,
		CreatedAt:   t.createdAt,
		UpdatedAt:   t.updatedAt,
	}
}

// Restore rebuilds a task from a stored record. It checks structure (id
// is a UUID, title and description within limits, timestamps ordered) but does
// not reject due dates that have passed since they were set.
func Restore(s Snapshot) (*Task, error) {
	var errs []error
	id, err := ParseID(s.ID)
	if err != nil {
		errs = append(errs, err)
	}
	if err := checkField(FieldTitle, s.Title); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateDescription(s.Description); err != nil {
		errs = append(errs, err)
	}
	if s.CreatedAt.IsZero() {
		errs = append(errs, fieldError(FieldCreatedAt, ErrRequired))
	}
	if s.UpdatedAt.IsZero() {
		errs = append(errs, fieldError(FieldUpdatedAt, ErrRequired))
	}
	if s.UpdatedAt.Before(s.CreatedAt) {
		errs = append(errs, fieldError(FieldUpdatedAt, ErrInconsistent))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Task{
		id:          id,
		title:       s.Title,
		description: copyString(s.Description),
		dueDate:     copyTime(s.DueDate),
		completed:   s.Completed,
		createdAt:   s.CreatedAt.UTC(),
		updatedAt:   s.UpdatedAt.UTC(),
	}, nil
}
