package calendar

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tpl(kind RecurrenceKind, start, end time.Time, recEnd *time.Time) RecurrenceTemplate {
	return RecurrenceTemplate{
		Title:         "Gym",
		StartTime:     start,
		EndTime:       end,
		Kind:          kind,
		RecurrenceEnd: recEnd,
	}
}

func TestExpandRecurrenceDaily(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	recEnd := time.Date(2024, 1, 5, 23, 59, 59, 0, time.UTC)

	events, err := ExpandRecurrence(uuid.New(), tpl(RecurrenceDaily, start, end, &recEnd))
	require.NoError(t, err)
	require.Len(t, events, 5)

	for i, ev := range events {
		assert.Equal(t, start.AddDate(0, 0, i), ev.StartTime)
		assert.Equal(t, time.Hour, ev.Duration())
		assert.True(t, ev.IsRecurring)
		require.NotNil(t, ev.RecurrenceKind)
		assert.Equal(t, RecurrenceDaily, *ev.RecurrenceKind)
	}
}

func TestExpandRecurrenceWeekdaysSkipsWeekends(t *testing.T) {
	// Friday 2024-01-05
	start := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	recEnd := time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)

	events, err := ExpandRecurrence(uuid.New(), tpl(RecurrenceWeekdays, start, end, &recEnd))
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, time.Friday, events[0].StartTime.Weekday())
	assert.Equal(t, time.Monday, events[1].StartTime.Weekday())
	assert.Equal(t, 8, events[1].StartTime.Day())
	for _, ev := range events {
		assert.NotEqual(t, time.Saturday, ev.StartTime.Weekday())
		assert.NotEqual(t, time.Sunday, ev.StartTime.Weekday())
	}
}

func TestExpandRecurrenceWeekly(t *testing.T) {
	start := time.Date(2024, 2, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	recEnd := start.AddDate(0, 0, 21)

	events, err := ExpandRecurrence(uuid.New(), tpl(RecurrenceWeekly, start, end, &recEnd))
	require.NoError(t, err)
	require.Len(t, events, 4)
	for i := 1; i < len(events); i++ {
		assert.Equal(t, 7*24*time.Hour, events[i].StartTime.Sub(events[i-1].StartTime))
	}
}

func TestExpandRecurrenceMonthlyOverflowRollsForward(t *testing.T) {
	// Jan 31: February has no day 31, AddDate normalizes into March.
	start := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	recEnd := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	events, err := ExpandRecurrence(uuid.New(), tpl(RecurrenceMonthly, start, end, &recEnd))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC), events[1].StartTime)
}

func TestExpandRecurrenceDurationPreserved(t *testing.T) {
	start := time.Date(2024, 6, 15, 8, 30, 0, 0, time.UTC)
	end := start.Add(2*time.Hour + 15*time.Minute)
	recEnd := start.AddDate(0, 6, 0)

	events, err := ExpandRecurrence(uuid.New(), tpl(RecurrenceMonthly, start, end, &recEnd))
	require.NoError(t, err)
	require.NotEmpty(t, events)
	for _, ev := range events {
		assert.Equal(t, 2*time.Hour+15*time.Minute, ev.Duration())
	}
}

func TestExpandRecurrenceUnboundedCap(t *testing.T) {
	start := time.Date(2024, 1, 1, 7, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	events, err := ExpandRecurrence(uuid.New(), tpl(RecurrenceDaily, start, end, nil))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(events), 365)

	horizon := start.AddDate(1, 0, 0)
	for _, ev := range events {
		assert.False(t, ev.StartTime.After(horizon))
	}
}

func TestExpandRecurrenceValidation(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	t.Run("end not after start", func(t *testing.T) {
		_, err := ExpandRecurrence(uuid.New(), tpl(RecurrenceDaily, start, start, nil))
		assert.Error(t, err)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := ExpandRecurrence(uuid.New(), tpl(RecurrenceKind("hourly"), start, start.Add(time.Hour), nil))
		assert.Error(t, err)
	})
}

func TestExpandRecurrenceSharesTagSet(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	recEnd := start.AddDate(0, 0, 2)
	tagIDs := []uuid.UUID{uuid.New(), uuid.New()}

	template := tpl(RecurrenceDaily, start, start.Add(time.Hour), &recEnd)
	template.TagIDs = tagIDs

	events, err := ExpandRecurrence(uuid.New(), template)
	require.NoError(t, err)
	require.Len(t, events, 3)
	for _, ev := range events {
		assert.Equal(t, tagIDs, ev.TagIDs)
	}
}
