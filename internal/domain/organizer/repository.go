package organizer

import (
	"context"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/shared"
)

// NoteRepository defines persistence operations for notes
type NoteRepository interface {
	shared.OwnedRepository[Note]
}

// TodoRepository defines persistence operations for todos and their subtasks
type TodoRepository interface {
	shared.OwnedRepository[Todo]
	// FindBySubtaskID loads the todo owning the given subtask
	FindBySubtaskID(ctx context.Context, userID, subtaskID uuid.UUID) (*Todo, error)
}

// TagRepository defines persistence operations for tags
type TagRepository interface {
	shared.OwnedRepository[Tag]
	// FindByName returns the user's tag with the given name, or ErrNotFound
	FindByName(ctx context.Context, userID uuid.UUID, name string) (*Tag, error)
}
