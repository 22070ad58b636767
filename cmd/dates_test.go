package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/nibzard/tasker-go/internal/task"
)

func TestParseDueDate(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"date only is end of day", "2026-10-17", time.Date(2026, 10, 17, 23, 59, 59, 0, loc)},
		{"date and time", "2026-10-17 08:15", time.Date(2026, 10, 17, 8, 15, 0, 0, loc)},
		{"rfc3339", "2026-10-17T08:15:00Z", time.Date(2026, 10, 17, 8, 15, 0, 0, time.UTC)},
		{"surrounding space", "  2026-10-17  ", time.Date(2026, 10, 17, 23, 59, 59, 0, loc)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDueDate(tt.input, loc)
			if err != nil {
				t.Fatalf("parseDueDate(%q): %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseDueDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDueDateRejects(t *testing.T) {
	for _, input := range []string{"", "tomorrow", "17/10/2026", "2026-13-01"} {
		_, err := parseDueDate(input, time.UTC)
		if !errors.Is(err, ErrBadDate) {
			t.Errorf("parseDueDate(%q): got %v, want ErrBadDate", input, err)
		}
		var ve *task.ValidationError
		if !errors.As(err, &ve) || ve.Field != task.FieldDueDate {
			t.Errorf("parseDueDate(%q): want due_date ValidationError, got %v", input, err)
		}
	}
}
