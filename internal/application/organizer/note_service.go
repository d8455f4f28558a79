package organizer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/organizer"
	"github.com/organizer/backend/internal/domain/shared"
)

// NoteService provides application-level note operations
type NoteService struct {
	noteRepo organizer.NoteRepository
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo organizer.NoteRepository) *NoteService {
	return &NoteService{noteRepo: noteRepo}
}

// NoteResponse represents a note in API responses
type NoteResponse struct {
	ID        uuid.UUID   `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Type      string      `json:"type"`
	TagIDs    []uuid.UUID `json:"tag_ids"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CreateNoteRequest represents a request to create a note
type CreateNoteRequest struct {
	Title   string      `json:"title" binding:"required"`
	Content string      `json:"content" binding:"required"`
	Type    string      `json:"type"`
	TagIDs  []uuid.UUID `json:"tag_ids"`
}

// UpdateNoteRequest represents a request to update a note
type UpdateNoteRequest struct {
	Title   string      `json:"title" binding:"required"`
	Content string      `json:"content" binding:"required"`
	TagIDs  []uuid.UUID `json:"tag_ids"`
}

// NoteListFilter defines filtering options for note list queries
type NoteListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// CreateNote creates a new note
func (s *NoteService) CreateNote(ctx context.Context, userID uuid.UUID, req CreateNoteRequest) (*NoteResponse, error) {
	note, err := organizer.NewNote(userID, req.Title, req.Content, organizer.NoteType(req.Type))
	if err != nil {
		return nil, err
	}
	if len(req.TagIDs) > 0 {
		note.SetTags(req.TagIDs)
	}

	if err := s.noteRepo.Save(ctx, note); err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

// GetNoteByID gets a note by ID
func (s *NoteService) GetNoteByID(ctx context.Context, userID, id uuid.UUID) (*NoteResponse, error) {
	note, err := s.noteRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

// UpdateNote updates a note
func (s *NoteService) UpdateNote(ctx context.Context, userID, id uuid.UUID, req UpdateNoteRequest) (*NoteResponse, error) {
	note, err := s.noteRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := note.Update(req.Title, req.Content); err != nil {
		return nil, err
	}
	note.SetTags(req.TagIDs)

	if err := s.noteRepo.Save(ctx, note); err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

// DeleteNote deletes a note
func (s *NoteService) DeleteNote(ctx context.Context, userID, id uuid.UUID) error {
	return s.noteRepo.DeleteForUser(ctx, userID, id)
}

// ListNotes lists notes with filtering and pagination
func (s *NoteService) ListNotes(ctx context.Context, userID uuid.UUID, filter NoteListFilter) ([]NoteResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  map[string]interface{}{},
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}

	notes, err := s.noteRepo.FindAllForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.noteRepo.CountForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]NoteResponse, len(notes))
	for i := range notes {
		responses[i] = *toNoteResponse(&notes[i])
	}
	return responses, total, nil
}

func toNoteResponse(n *organizer.Note) *NoteResponse {
	tagIDs := n.TagIDs
	if tagIDs == nil {
		tagIDs = []uuid.UUID{}
	}
	return &NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Type:      string(n.Type),
		TagIDs:    tagIDs,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
