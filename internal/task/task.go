// Package task defines the task entity and its validation rules.
package task

import (
	"errors"
	"sort"
	"time"
)

// Status represents a task status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Task is a single tracked task. Fields are reachable through accessors only;
// mutation goes through Edit and Complete.
type Task struct {
	id          string
	title       string
	description *string
	dueDate     *time.Time
	completed   bool
	createdAt   time.Time
	updatedAt   time.Time
}

// Draft holds the caller-supplied fields of a new task.
type Draft struct {
	Title       string
	Description *string
	DueDate     *time.Time
}

// Changes holds the fields to edit. Nil fields are left untouched.
type Changes struct {
	Title       *string
	Description *string
	DueDate     *time.Time

	// ClearDescription and ClearDueDate remove the optional field.
	ClearDescription bool
	ClearDueDate     bool
}

// IsEmpty reports whether c changes nothing.
func (c Changes) IsEmpty() bool {
	return c.Title == nil && c.Description == nil && c.DueDate == nil &&
		!c.ClearDescription && !c.ClearDueDate
}

// Factory creates tasks with identifiers and timestamps from its sources.
type Factory struct {
	clock Clock
	ids   IDGenerator
}

// NewFactory returns a Factory. Nil arguments fall back to SystemClock and
// UUIDGenerator.
func NewFactory(clock Clock, ids IDGenerator) *Factory {
	if clock == nil {
		clock = SystemClock
	}
	if ids == nil {
		ids = UUIDGenerator
	}
	return &Factory{clock: clock, ids: ids}
}

// Clock returns the factory's time source.
func (f *Factory) Clock() Clock {
	return f.clock
}

// New validates d and returns a pending task stamped with the current time.
func (f *Factory) New(d Draft) (*Task, error) {
	now := f.clock.Now().UTC()

	var errs []error
	title, err := NormalizeTitle(d.Title)
	if err != nil {
		errs = append(errs, err)
	}
	if err := ValidateDescription(d.Description); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateDueDate(d.DueDate, now); err != nil {
		errs = append(errs, err)
	}
	id, err := ParseID(f.ids.NewID())
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Task{
		id:          id,
		title:       title,
		description: copyString(d.Description),
		dueDate:     copyTime(d.DueDate),
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

var defaultFactory = NewFactory(nil, nil)

// New creates a task with the system clock and UUID identifiers.
func New(d Draft) (*Task, error) {
	return defaultFactory.New(d)
}

// ID returns the task identifier.
func (t *Task) ID() string { return t.id }

// Title returns the trimmed title.
func (t *Task) Title() string { return t.title }

// Description returns the description and whether one is set.
func (t *Task) Description() (string, bool) {
	if t.description == nil {
		return "", false
	}
	return *t.description, true
}

// DueDate returns the due date and whether one is set.
func (t *Task) DueDate() (time.Time, bool) {
	if t.dueDate == nil {
		return time.Time{}, false
	}
	return *t.dueDate, true
}

// Completed reports whether the task has been completed.
func (t *Task) Completed() bool { return t.completed }

// CreatedAt returns the creation timestamp.
func (t *Task) CreatedAt() time.Time { return t.createdAt }

// UpdatedAt returns the last modification timestamp.
func (t *Task) UpdatedAt() time.Time { return t.updatedAt }

// Status returns StatusCompleted or StatusPending.
func (t *Task) Status() Status {
	if t.completed {
		return StatusCompleted
	}
	return StatusPending
}

// IsOverdue reports whether a pending task's due date is before now.
func (t *Task) IsOverdue(now time.Time) bool {
	return !t.completed && t.dueDate != nil && t.dueDate.Before(now)
}

// Edit applies c after validating every supplied field. If any field is
// invalid the task is left unchanged. Completion state is never touched.
func (t *Task) Edit(c Changes, now time.Time) error {
	if c.IsEmpty() {
		return &ValidationError{Err: ErrNoChanges}
	}
	now = now.UTC()

	var errs []error
	if c.Description != nil && c.ClearDescription {
		errs = append(errs, fieldError(FieldDescription, ErrConflictingChange))
	}
	if c.DueDate != nil && c.ClearDueDate {
		errs = append(errs, fieldError(FieldDueDate, ErrConflictingChange))
	}

	title := t.title
	if c.Title != nil {
		normalized, err := NormalizeTitle(*c.Title)
		if err != nil {
			errs = append(errs, err)
		}
		title = normalized
	}
	if err := ValidateDescription(c.Description); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateDueDate(c.DueDate, now); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	t.title = title
	switch {
	case c.ClearDescription:
		t.description = nil
	case c.Description != nil:
		t.description = copyString(c.Description)
	}
	switch {
	case c.ClearDueDate:
		t.dueDate = nil
	case c.DueDate != nil:
		t.dueDate = copyTime(c.DueDate)
	}
	t.touch(now)
	return nil
}

// Complete marks the task completed. Completing twice is a *DomainError and
// leaves the task as it was after the first completion.
func (t *Task) Complete(now time.Time) error {
	if t.completed {
		return &DomainError{Op: "complete", TaskID: t.id, Err: ErrAlreadyCompleted}
	}
	t.completed = true
	t.touch(now.UTC())
	return nil
}

// touch refreshes updated_at without letting it move backwards.
func (t *Task) touch(now time.Time) {
	if now.Before(t.updatedAt) {
		now = t.updatedAt
	}
	t.updatedAt = now
}

// SortByDueDate orders tasks with a due date first (earliest first), then
// tasks without one. Ties keep creation order.
func SortByDueDate(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		left, right := tasks[i].dueDate, tasks[j].dueDate
		switch {
		case left != nil && right != nil:
			if !left.Equal(*right) {
				return left.Before(*right)
			}
		case left != nil:
			return true
		case right != nil:
			return false
		}
		return tasks[i].createdAt.Before(tasks[j].createdAt)
	})
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
