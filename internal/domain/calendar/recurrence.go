package calendar

import (
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/shared"
)

const (
	// maxOccurrences bounds the worst-case size of an expanded series.
	maxOccurrences = 365
	// defaultHorizon is how far an unbounded series extends past its
	// first occurrence.
	defaultHorizon = 365 * 24 * time.Hour
)

// RecurrenceTemplate holds the fields shared by every occurrence of a
// recurring event.
type RecurrenceTemplate struct {
	Title         string
	Description   string
	StartTime     time.Time
	EndTime       time.Time
	Location      string
	Kind          RecurrenceKind
	RecurrenceEnd *time.Time
	TagIDs        []uuid.UUID
}

// ExpandRecurrence generates the ordered sequence of concrete event
// instances described by the template. Each occurrence keeps the exact
// clock-time duration of the template, even across DST or month-length
// boundaries. Generation stops once the next start would pass the
// recurrence end (or the default one-year horizon) and never produces
// more than maxOccurrences rows.
func ExpandRecurrence(userID uuid.UUID, tpl RecurrenceTemplate) ([]*Event, error) {
	if err := validateEventFields(tpl.Title, tpl.StartTime, tpl.EndTime); err != nil {
		return nil, err
	}
	if !tpl.Kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_RECURRENCE", "Recurrence kind is not valid")
	}

	effectiveEnd := tpl.StartTime.Add(defaultHorizon)
	if tpl.RecurrenceEnd != nil {
		effectiveEnd = *tpl.RecurrenceEnd
	}
	duration := tpl.EndTime.Sub(tpl.StartTime)
	kind := tpl.Kind

	events := make([]*Event, 0)
	current := tpl.StartTime
	for !current.After(effectiveEnd) && len(events) < maxOccurrences {
		ev := &Event{
			OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
			Title:              tpl.Title,
			Description:        tpl.Description,
			StartTime:          current,
			EndTime:            current.Add(duration),
			Location:           tpl.Location,
			IsRecurring:        true,
			RecurrenceKind:     &kind,
			RecurrenceEnd:      tpl.RecurrenceEnd,
			TagIDs:             tpl.TagIDs,
		}
		events = append(events, ev)
		current = nextOccurrence(current, tpl.Kind)
	}

	return events, nil
}

// nextOccurrence advances a start time by one cadence step.
// Monthly and yearly steps use time.AddDate, whose normalization rolls a
// missing day-of-month forward into the next month (Jan 31 + 1 month =
// Mar 2/3).
func nextOccurrence(current time.Time, kind RecurrenceKind) time.Time {
	switch kind {
	case RecurrenceDaily:
		return current.AddDate(0, 0, 1)
	case RecurrenceWeekdays:
		next := current.AddDate(0, 0, 1)
		for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
			next = next.AddDate(0, 0, 1)
		}
		return next
	case RecurrenceWeekly:
		return current.AddDate(0, 0, 7)
	case RecurrenceMonthly:
		return current.AddDate(0, 1, 0)
	case RecurrenceYearly:
		return current.AddDate(1, 0, 0)
	default:
		// Unreachable for validated kinds; step one day to guarantee progress.
		return current.AddDate(0, 0, 1)
	}
}
