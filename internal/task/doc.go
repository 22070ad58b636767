// Package task defines the task entity and its validation rules.
//
// A task is created through a Factory, which assigns the identifier and the
// creation timestamp from an injected IDGenerator and Clock:
//
//	f := task.NewFactory(nil, nil) // system clock, UUID identifiers
//	t, err := f.New(task.Draft{Title: "Buy milk"})
//
// # Fields
//
//   - id: UUID string, assigned once
//   - title: required, trimmed, at most 200 characters
//   - description: optional, at most 1000 characters
//   - due_date: optional, must not be before the time it is set
//   - completed: false until Complete is called
//   - created_at / updated_at: UTC timestamps, updated_at >= created_at
//
// # State
//
// A task is either pending or completed. The only legal transition is
// pending -> completed; completing twice returns a *DomainError.
//
// # Errors
//
// Field violations are reported as *ValidationError values carrying the field
// name. When several fields fail at once the errors are joined with
// errors.Join, so errors.As still finds the first one and errors.Is matches
// any of the reasons (ErrRequired, ErrTooLong, ErrPastDueDate, ...).
//
// The package knows nothing about persistence. Storage backends encode a
// Snapshot and rebuild tasks with Restore, which performs structural checks
// only: a due date that has since passed is still a valid stored value.
package task
