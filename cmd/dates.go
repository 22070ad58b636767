package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nibzard/tasker-go/internal/task"
)

// ErrBadDate is returned for due dates in none of the accepted layouts.
var ErrBadDate = errors.New("unrecognized date")

// parseDueDate accepts RFC 3339, "YYYY-MM-DD HH:MM" in loc, or a bare
// "YYYY-MM-DD", which means the last second of that day in loc.
func parseDueDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(timeLayout, s, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, loc), nil
	}
	return time.Time{}, &task.ValidationError{
		Field: task.FieldDueDate,
		Err:   fmt.Errorf("%w %q (want YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC 3339)", ErrBadDate, s),
	}
}
