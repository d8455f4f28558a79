package calendar

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/calendar"
	"github.com/organizer/backend/internal/domain/shared"
	"github.com/organizer/backend/internal/infrastructure/telemetry"
)

// EventService provides application-level calendar operations
type EventService struct {
	eventRepo calendar.EventRepository
}

// NewEventService creates a new EventService
func NewEventService(eventRepo calendar.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

// EventResponse represents a calendar event in API responses
type EventResponse struct {
	ID             uuid.UUID   `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description,omitempty"`
	StartTime      time.Time   `json:"start_time"`
	EndTime        time.Time   `json:"end_time"`
	Location       string      `json:"location,omitempty"`
	IsRecurring    bool        `json:"is_recurring"`
	RecurrenceKind *string     `json:"recurrence_kind,omitempty"`
	RecurrenceEnd  *time.Time  `json:"recurrence_end,omitempty"`
	TagIDs         []uuid.UUID `json:"tag_ids"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// CreateEventRequest represents a request to create an event or a
// recurring series
type CreateEventRequest struct {
	Title          string      `json:"title" binding:"required"`
	Description    string      `json:"description"`
	StartTime      time.Time   `json:"start_time" binding:"required"`
	EndTime        time.Time   `json:"end_time" binding:"required"`
	Location       string      `json:"location"`
	IsRecurring    bool        `json:"is_recurring"`
	RecurrenceKind *string     `json:"recurrence_kind"`
	RecurrenceEnd  *time.Time  `json:"recurrence_end"`
	TagIDs         []uuid.UUID `json:"tag_ids"`
}

// UpdateEventRequest represents a request to update a single event
type UpdateEventRequest struct {
	Title       string      `json:"title" binding:"required"`
	Description string      `json:"description"`
	StartTime   time.Time   `json:"start_time" binding:"required"`
	EndTime     time.Time   `json:"end_time" binding:"required"`
	Location    string      `json:"location"`
	TagIDs      []uuid.UUID `json:"tag_ids"`
}

// EventListFilter defines filtering options for event list queries
type EventListFilter struct {
	Search   string     `form:"search"`
	From     *time.Time `form:"from"`
	To       *time.Time `form:"to"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir"`
}

// CreateEvent creates a single event, or fans a recurring template out
// into its full series of independent occurrences. The whole series is
// created in one shot so a failure leaves nothing behind.
func (s *EventService) CreateEvent(ctx context.Context, userID uuid.UUID, req CreateEventRequest) ([]EventResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "event", "create",
		telemetry.WithAttribute(telemetry.SpanAttrUserID, userID),
		telemetry.WithAttribute("recurring", req.IsRecurring),
	)
	defer span.End()

	if req.IsRecurring {
		if req.RecurrenceKind == nil {
			return nil, shared.NewDomainError("INVALID_RECURRENCE", "Recurring events require a recurrence kind")
		}
		events, err := calendar.ExpandRecurrence(userID, calendar.RecurrenceTemplate{
			Title:         req.Title,
			Description:   req.Description,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			Location:      req.Location,
			Kind:          calendar.RecurrenceKind(*req.RecurrenceKind),
			RecurrenceEnd: req.RecurrenceEnd,
			TagIDs:        req.TagIDs,
		})
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		telemetry.SetAttribute(span, telemetry.SpanAttrOccurrences, len(events))
		if err := s.eventRepo.CreateBatch(ctx, events); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		responses := make([]EventResponse, len(events))
		for i, e := range events {
			responses[i] = *toEventResponse(e)
		}
		return responses, nil
	}

	event, err := calendar.NewEvent(userID, req.Title, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	event.Description = req.Description
	event.Location = req.Location
	if len(req.TagIDs) > 0 {
		event.SetTags(req.TagIDs)
	}

	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, err
	}
	return []EventResponse{*toEventResponse(event)}, nil
}

// GetEventByID gets one event by ID
func (s *EventService) GetEventByID(ctx context.Context, userID, id uuid.UUID) (*EventResponse, error) {
	event, err := s.eventRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toEventResponse(event), nil
}

// UpdateEvent updates a single event. Occurrences of a recurring series
// are edited individually; siblings are untouched.
func (s *EventService) UpdateEvent(ctx context.Context, userID, id uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	event, err := s.eventRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := event.Update(req.Title, req.StartTime, req.EndTime, req.Description, req.Location); err != nil {
		return nil, err
	}
	event.SetTags(req.TagIDs)

	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, err
	}
	return toEventResponse(event), nil
}

// DeleteEvent deletes a single event
func (s *EventService) DeleteEvent(ctx context.Context, userID, id uuid.UUID) error {
	return s.eventRepo.DeleteForUser(ctx, userID, id)
}

// ListEvents lists events with filtering and pagination
func (s *EventService) ListEvents(ctx context.Context, userID uuid.UUID, filter EventListFilter) ([]EventResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  map[string]interface{}{},
	}
	if filter.From != nil {
		domainFilter.Filters["from"] = *filter.From
	}
	if filter.To != nil {
		domainFilter.Filters["to"] = *filter.To
	}

	events, err := s.eventRepo.FindAllForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.eventRepo.CountForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]EventResponse, len(events))
	for i := range events {
		responses[i] = *toEventResponse(&events[i])
	}
	return responses, total, nil
}

// GetEventsInRange returns the events whose start falls inside [from, to],
// ordered by start time
func (s *EventService) GetEventsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]EventResponse, error) {
	if !to.After(from) {
		return nil, shared.NewDomainError("INVALID_DATE", "Range end must be after range start")
	}
	events, err := s.eventRepo.FindByTimeRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	responses := make([]EventResponse, len(events))
	for i := range events {
		responses[i] = *toEventResponse(&events[i])
	}
	return responses, nil
}

func toEventResponse(e *calendar.Event) *EventResponse {
	var kind *string
	if e.RecurrenceKind != nil {
		k := e.RecurrenceKind.String()
		kind = &k
	}
	tagIDs := e.TagIDs
	if tagIDs == nil {
		tagIDs = []uuid.UUID{}
	}
	return &EventResponse{
		ID:             e.ID,
		Title:          e.Title,
		Description:    e.Description,
		StartTime:      e.StartTime,
		EndTime:        e.EndTime,
		Location:       e.Location,
		IsRecurring:    e.IsRecurring,
		RecurrenceKind: kind,
		RecurrenceEnd:  e.RecurrenceEnd,
		TagIDs:         tagIDs,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}
