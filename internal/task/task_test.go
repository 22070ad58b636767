package task

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func sequentialIDs() IDGenerator {
	n := 0
	return IDFunc(func() string {
		n++
		return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
	})
}

func newTestFactory() (*Factory, *fakeClock) {
	clock := &fakeClock{now: baseTime}
	return NewFactory(clock, sequentialIDs()), clock
}

func ptr[T any](v T) *T { return &v }

func TestFactoryNew(t *testing.T) {
	t.Run("valid task gets id and timestamps", func(t *testing.T) {
		f, _ := newTestFactory()
		due := baseTime.Add(24 * time.Hour)

		got, err := f.New(Draft{
			Title:       "  Buy milk  ",
			Description: ptr("2 liters"),
			DueDate:     &due,
		})
		require.NoError(t, err)

		assert.Equal(t, "00000000-0000-4000-8000-000000000001", got.ID())
		assert.Equal(t, "Buy milk", got.Title())
		desc, ok := got.Description()
		assert.True(t, ok)
		assert.Equal(t, "2 liters", desc)
		gotDue, ok := got.DueDate()
		assert.True(t, ok)
		assert.True(t, gotDue.Equal(due))
		assert.False(t, got.Completed())
		assert.Equal(t, StatusPending, got.Status())
		assert.Equal(t, baseTime, got.CreatedAt())
		assert.Equal(t, got.CreatedAt(), got.UpdatedAt())
	})

	t.Run("optional fields stay absent", func(t *testing.T) {
		f, _ := newTestFactory()
		got, err := f.New(Draft{Title: "Read"})
		require.NoError(t, err)

		_, ok := got.Description()
		assert.False(t, ok)
		_, ok = got.DueDate()
		assert.False(t, ok)
	})

	t.Run("empty description is kept distinct from absent", func(t *testing.T) {
		f, _ := newTestFactory()
		got, err := f.New(Draft{Title: "Read", Description: ptr("")})
		require.NoError(t, err)

		desc, ok := got.Description()
		assert.True(t, ok)
		assert.Empty(t, desc)
	})

	t.Run("due date equal to now is accepted", func(t *testing.T) {
		f, _ := newTestFactory()
		now := baseTime
		_, err := f.New(Draft{Title: "Now", DueDate: &now})
		assert.NoError(t, err)
	})

	t.Run("length limits count characters not bytes", func(t *testing.T) {
		f, _ := newTestFactory()
		_, err := f.New(Draft{
			Title:       strings.Repeat("é", MaxTitleLength),
			Description: ptr(strings.Repeat("ü", MaxDescriptionLength)),
		})
		assert.NoError(t, err)
	})

	t.Run("each factory call issues a fresh id", func(t *testing.T) {
		f := NewFactory(nil, nil)
		a, err := f.New(Draft{Title: "a"})
		require.NoError(t, err)
		b, err := f.New(Draft{Title: "b"})
		require.NoError(t, err)
		assert.NotEqual(t, a.ID(), b.ID())
		_, err = ParseID(a.ID())
		assert.NoError(t, err)
	})
}

func TestFactoryNewValidation(t *testing.T) {
	yesterday := baseTime.Add(-24 * time.Hour)
	tooFar := time.Date(MaxDueYear+1, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		draft  Draft
		field  string
		reason error
	}{
		{"empty title", Draft{Title: ""}, FieldTitle, ErrRequired},
		{"whitespace title", Draft{Title: " \t\n "}, FieldTitle, ErrRequired},
		{"title too long", Draft{Title: strings.Repeat("a", MaxTitleLength+1)}, FieldTitle, ErrTooLong},
		{"description too long", Draft{Title: "ok", Description: ptr(strings.Repeat("d", MaxDescriptionLength+1))}, FieldDescription, ErrTooLong},
		{"control character in title", Draft{Title: "bell\x07"}, FieldTitle, ErrInvalidText},
		{"invalid utf-8 in description", Draft{Title: "ok", Description: ptr("caf\xe9")}, FieldDescription, ErrInvalidText},
		{"due date in the past", Draft{Title: "ok", DueDate: &yesterday}, FieldDueDate, ErrPastDueDate},
		{"due date after year 9999", Draft{Title: "ok", DueDate: &tooFar}, FieldDueDate, ErrDueDateOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newTestFactory()
			got, err := f.New(tt.draft)
			require.Error(t, err)
			assert.Nil(t, got)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "want *ValidationError, got %T", err)
			assert.Equal(t, tt.field, ve.Field)
			assert.ErrorIs(t, err, tt.reason)
		})
	}
}

func TestFactoryNewReportsEveryInvalidField(t *testing.T) {
	f, _ := newTestFactory()
	past := baseTime.Add(-time.Minute)

	_, err := f.New(Draft{
		Title:       "",
		Description: ptr(strings.Repeat("d", MaxDescriptionLength+1)),
		DueDate:     &past,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequired)
	assert.ErrorIs(t, err, ErrTooLong)
	assert.ErrorIs(t, err, ErrPastDueDate)
	assert.Contains(t, err.Error(), "title")
	assert.Contains(t, err.Error(), "description")
	assert.Contains(t, err.Error(), "due_date")
}

func TestFactoryNewRejectsMalformedID(t *testing.T) {
	f := NewFactory(&fakeClock{now: baseTime}, IDFunc(func() string { return "task-1" }))

	got, err := f.New(Draft{Title: "ok"})
	require.Error(t, err)
	assert.Nil(t, got)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, FieldID, ve.Field)
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestFactoryNewCanonicalizesID(t *testing.T) {
	f := NewFactory(&fakeClock{now: baseTime}, IDFunc(func() string {
		return "6BA7B810-9DAD-11D1-80B4-00C04FD430C8"
	}))

	got, err := f.New(Draft{Title: "ok"})
	require.NoError(t, err)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", got.ID())
}

func TestEditRejectsDueDateAfterMaxYear(t *testing.T) {
	f, clock := newTestFactory()
	task, err := f.New(Draft{Title: "ok"})
	require.NoError(t, err)

	tooFar := time.Date(MaxDueYear+1, 1, 1, 0, 0, 0, 0, time.UTC)
	err = task.Edit(Changes{DueDate: &tooFar}, clock.Now())
	assert.ErrorIs(t, err, ErrDueDateOutOfRange)
	_, ok := task.DueDate()
	assert.False(t, ok)

	lastDay := time.Date(MaxDueYear, 12, 31, 23, 59, 59, 0, time.UTC)
	require.NoError(t, task.Edit(Changes{DueDate: &lastDay}, clock.Now()))
}

func TestEdit(t *testing.T) {
	t.Run("applies only supplied fields", func(t *testing.T) {
		f, clock := newTestFactory()
		task, err := f.New(Draft{Title: "Old", Description: ptr("keep me")})
		require.NoError(t, err)

		clock.Advance(time.Minute)
		require.NoError(t, task.Edit(Changes{Title: ptr("  New  ")}, clock.Now()))

		assert.Equal(t, "New", task.Title())
		desc, ok := task.Description()
		assert.True(t, ok)
		assert.Equal(t, "keep me", desc)
		assert.Equal(t, baseTime, task.CreatedAt())
		assert.Equal(t, baseTime.Add(time.Minute), task.UpdatedAt())
	})

	t.Run("does not alter completion", func(t *testing.T) {
		f, clock := newTestFactory()
		task, err := f.New(Draft{Title: "Done soon"})
		require.NoError(t, err)
		require.NoError(t, task.Complete(clock.Now()))

		clock.Advance(time.Hour)
		due := clock.Now().Add(time.Hour)
		require.NoError(t, task.Edit(Changes{DueDate: &due}, clock.Now()))
		assert.True(t, task.Completed())
	})

	t.Run("invalid field leaves every field unchanged", func(t *testing.T) {
		f, clock := newTestFactory()
		task, err := f.New(Draft{Title: "Original"})
		require.NoError(t, err)
		before := task.Snapshot()

		clock.Advance(time.Minute)
		past := baseTime.Add(-time.Hour)
		err = task.Edit(Changes{Title: ptr("Valid new title"), DueDate: &past}, clock.Now())

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, FieldDueDate, ve.Field)
		assert.Equal(t, before, task.Snapshot())
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		f, clock := newTestFactory()
		task, err := f.New(Draft{Title: "Original"})
		require.NoError(t, err)

		err = task.Edit(Changes{Title: ptr("   ")}, clock.Now())
		assert.ErrorIs(t, err, ErrRequired)
		assert.Equal(t, "Original", task.Title())
	})

	t.Run("clear flags remove optional fields", func(t *testing.T) {
		f, clock := newTestFactory()
		due := baseTime.Add(time.Hour)
		task, err := f.New(Draft{Title: "x", Description: ptr("y"), DueDate: &due})
		require.NoError(t, err)

		require.NoError(t, task.Edit(Changes{ClearDescription: true, ClearDueDate: true}, clock.Now()))
		_, ok := task.Description()
		assert.False(t, ok)
		_, ok = task.DueDate()
		assert.False(t, ok)
	})

	t.Run("setting and clearing the same field conflicts", func(t *testing.T) {
		f, clock := newTestFactory()
		task, err := f.New(Draft{Title: "x"})
		require.NoError(t, err)

		err = task.Edit(Changes{Description: ptr("y"), ClearDescription: true}, clock.Now())
		assert.ErrorIs(t, err, ErrConflictingChange)
	})

	t.Run("no changes is a validation error", func(t *testing.T) {
		f, clock := newTestFactory()
		task, err := f.New(Draft{Title: "x"})
		require.NoError(t, err)

		err = task.Edit(Changes{}, clock.Now())
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.ErrorIs(t, err, ErrNoChanges)
		assert.Equal(t, baseTime, task.UpdatedAt())
	})

	t.Run("updated_at never moves backwards", func(t *testing.T) {
		f, clock := newTestFactory()
		task, err := f.New(Draft{Title: "x"})
		require.NoError(t, err)

		require.NoError(t, task.Edit(Changes{Title: ptr("y")}, clock.Now().Add(-time.Hour)))
		assert.Equal(t, task.CreatedAt(), task.UpdatedAt())
	})
}

func TestComplete(t *testing.T) {
	f, clock := newTestFactory()
	task, err := f.New(Draft{Title: "Finish report"})
	require.NoError(t, err)

	clock.Advance(time.Minute)
	require.NoError(t, task.Complete(clock.Now()))
	assert.True(t, task.Completed())
	assert.Equal(t, StatusCompleted, task.Status())
	firstUpdate := task.UpdatedAt()

	clock.Advance(time.Minute)
	err = task.Complete(clock.Now())

	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Equal(t, task.ID(), de.TaskID)
	assert.True(t, task.Completed())
	assert.Equal(t, firstUpdate, task.UpdatedAt())

	var ve *ValidationError
	assert.False(t, errors.As(err, &ve), "double completion must not be a validation error")
}

func TestScenarioBuyMilk(t *testing.T) {
	f, clock := newTestFactory()
	yesterday := clock.Now().Add(-24 * time.Hour)
	tomorrow := clock.Now().Add(24 * time.Hour)

	_, err := f.New(Draft{Title: "Buy milk", DueDate: &yesterday})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	task, err := f.New(Draft{Title: "Buy milk", DueDate: &tomorrow})
	require.NoError(t, err)
	assert.False(t, task.Completed())

	clock.Advance(time.Second)
	require.NoError(t, task.Complete(clock.Now()))
	assert.True(t, task.UpdatedAt().After(task.CreatedAt()))
}

func TestIsOverdue(t *testing.T) {
	f, clock := newTestFactory()
	due := baseTime.Add(time.Hour)
	task, err := f.New(Draft{Title: "x", DueDate: &due})
	require.NoError(t, err)

	assert.False(t, task.IsOverdue(clock.Now()))
	assert.True(t, task.IsOverdue(due.Add(time.Second)))

	require.NoError(t, task.Complete(clock.Now()))
	assert.False(t, task.IsOverdue(due.Add(time.Second)))
}

func TestSortByDueDate(t *testing.T) {
	f, clock := newTestFactory()
	mk := func(title string, due *time.Time) *Task {
		clock.Advance(time.Second)
		task, err := f.New(Draft{Title: title, DueDate: due})
		require.NoError(t, err)
		return task
	}
	later := baseTime.Add(48 * time.Hour)
	sooner := baseTime.Add(24 * time.Hour)

	tasks := []*Task{
		mk("undated-1", nil),
		mk("later", &later),
		mk("undated-2", nil),
		mk("sooner", &sooner),
		mk("sooner-2", &sooner),
	}
	SortByDueDate(tasks)

	var titles []string
	for _, task := range tasks {
		titles = append(titles, task.Title())
	}
	assert.Equal(t, []string{"sooner", "sooner-2", "later", "undated-1", "undated-2"}, titles)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"canonical", "7d8f1c2e-3b4a-4c5d-8e9f-0a1b2c3d4e5f", "7d8f1c2e-3b4a-4c5d-8e9f-0a1b2c3d4e5f", nil},
		{"upper case and spaces", "  7D8F1C2E-3B4A-4C5D-8E9F-0A1B2C3D4E5F ", "7d8f1c2e-3b4a-4c5d-8e9f-0a1b2c3d4e5f", nil},
		{"empty", "", "", ErrRequired},
		{"garbage", "not-an-id", "", ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID(tt.input)
			if tt.wantErr != nil {
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, FieldID, ve.Field)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
