package models

import (
	"time"

	"github.com/organizer/backend/internal/domain/calendar"
)

// EventModel is the persistence model for the Event aggregate root.
// Recurring templates fan out to independent rows, one per occurrence.
type EventModel struct {
	OwnedAggregateModel
	Title          string     `gorm:"type:varchar(200);not null"`
	Description    string     `gorm:"type:text"`
	StartTime      time.Time  `gorm:"not null;index"`
	EndTime        time.Time  `gorm:"not null"`
	Location       string     `gorm:"type:varchar(200)"`
	IsRecurring    bool       `gorm:"not null;default:false"`
	RecurrenceKind *string    `gorm:"type:varchar(20)"`
	RecurrenceEnd  *time.Time `gorm:""`
	Tags           []TagModel `gorm:"many2many:event_tags;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (EventModel) TableName() string {
	return "events"
}

// ToDomain converts the persistence model to a domain Event
func (m *EventModel) ToDomain() *calendar.Event {
	var kind *calendar.RecurrenceKind
	if m.RecurrenceKind != nil {
		k := calendar.RecurrenceKind(*m.RecurrenceKind)
		kind = &k
	}
	return &calendar.Event{
		OwnedAggregateRoot: m.ToOwnedAggregateRoot(),
		Title:              m.Title,
		Description:        m.Description,
		StartTime:          m.StartTime,
		EndTime:            m.EndTime,
		Location:           m.Location,
		IsRecurring:        m.IsRecurring,
		RecurrenceKind:     kind,
		RecurrenceEnd:      m.RecurrenceEnd,
		TagIDs:             tagIDs(m.Tags),
	}
}

// FromDomain populates the persistence model from a domain Event.
// Tag associations are written separately by the repository.
func (m *EventModel) FromDomain(e *calendar.Event) {
	m.FromDomainOwnedAggregateRoot(e.OwnedAggregateRoot)
	m.Title = e.Title
	m.Description = e.Description
	m.StartTime = e.StartTime
	m.EndTime = e.EndTime
	m.Location = e.Location
	m.IsRecurring = e.IsRecurring
	if e.RecurrenceKind != nil {
		k := string(*e.RecurrenceKind)
		m.RecurrenceKind = &k
	} else {
		m.RecurrenceKind = nil
	}
	m.RecurrenceEnd = e.RecurrenceEnd
}

// EventModelFromDomain creates a new persistence model from a domain Event
func EventModelFromDomain(e *calendar.Event) *EventModel {
	m := &EventModel{}
	m.FromDomain(e)
	return m
}
