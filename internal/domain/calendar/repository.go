package calendar

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/shared"
)

// EventRepository defines persistence operations for calendar events
type EventRepository interface {
	shared.OwnedRepository[Event]
	// CreateBatch persists an expanded recurring series atomically:
	// either every occurrence (with its tag associations) is written or
	// none are.
	CreateBatch(ctx context.Context, events []*Event) error
	FindByTimeRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Event, error)
}
