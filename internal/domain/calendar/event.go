package calendar

import (
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/shared"
)

// RecurrenceKind represents the cadence rule of a recurring event
type RecurrenceKind string

const (
	RecurrenceDaily    RecurrenceKind = "daily"
	RecurrenceWeekdays RecurrenceKind = "weekdays"
	RecurrenceWeekly   RecurrenceKind = "weekly"
	RecurrenceMonthly  RecurrenceKind = "monthly"
	RecurrenceYearly   RecurrenceKind = "yearly"
)

// IsValid checks if the kind is a recognised RecurrenceKind
func (k RecurrenceKind) IsValid() bool {
	switch k {
	case RecurrenceDaily, RecurrenceWeekdays, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// String returns the string representation of RecurrenceKind
func (k RecurrenceKind) String() string {
	return string(k)
}

// Event represents a calendar event aggregate root.
// A recurring template is expanded into many independent Event rows at
// creation time; after that each occurrence lives its own life and edits
// or deletions never cascade to siblings.
type Event struct {
	shared.OwnedAggregateRoot
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	StartTime      time.Time       `json:"start_time"`
	EndTime        time.Time       `json:"end_time"`
	Location       string          `json:"location"`
	IsRecurring    bool            `json:"is_recurring"`
	RecurrenceKind *RecurrenceKind `json:"recurrence_kind"`
	RecurrenceEnd  *time.Time      `json:"recurrence_end"`
	TagIDs         []uuid.UUID     `json:"tag_ids"`
}

// NewEvent creates a single, non-recurring event
func NewEvent(userID uuid.UUID, title string, start, end time.Time) (*Event, error) {
	if err := validateEventFields(title, start, end); err != nil {
		return nil, err
	}
	return &Event{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Title:              title,
		StartTime:          start,
		EndTime:            end,
	}, nil
}

// Update replaces the mutable fields of the event
func (e *Event) Update(title string, start, end time.Time, description, location string) error {
	if err := validateEventFields(title, start, end); err != nil {
		return err
	}
	e.Title = title
	e.StartTime = start
	e.EndTime = end
	e.Description = description
	e.Location = location
	e.UpdatedAt = time.Now()
	return nil
}

// SetTags replaces the tag associations of the event
func (e *Event) SetTags(tagIDs []uuid.UUID) {
	e.TagIDs = tagIDs
	e.UpdatedAt = time.Now()
}

// Duration returns the clock-time span of the event
func (e *Event) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

func validateEventFields(title string, start, end time.Time) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	if start.IsZero() || end.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Start and end times are required")
	}
	if !end.After(start) {
		return shared.NewDomainError("INVALID_DATE", "End time must be after start time")
	}
	return nil
}
