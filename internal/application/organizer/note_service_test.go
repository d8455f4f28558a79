package organizer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/organizer"
	"github.com/organizer/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*organizer.Note, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*organizer.Note), args.Error(1)
}

func (m *MockNoteRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]organizer.Note, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]organizer.Note), args.Error(1)
}

func (m *MockNoteRepository) Save(ctx context.Context, note *organizer.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockNoteRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestNoteService_CreateNote(t *testing.T) {
	userID := uuid.New()

	t.Run("creates a text note by default", func(t *testing.T) {
		noteRepo := new(MockNoteRepository)
		svc := NewNoteService(noteRepo)
		noteRepo.On("Save", mock.Anything, mock.AnythingOfType("*organizer.Note")).Return(nil)

		resp, err := svc.CreateNote(context.Background(), userID, CreateNoteRequest{
			Title:   "Meeting notes",
			Content: "Discussed the quarterly plan",
		})

		require.NoError(t, err)
		assert.Equal(t, "Meeting notes", resp.Title)
		assert.Equal(t, "text", resp.Type)
		noteRepo.AssertExpectations(t)
	})

	t.Run("keeps the requested type and tags", func(t *testing.T) {
		noteRepo := new(MockNoteRepository)
		svc := NewNoteService(noteRepo)
		noteRepo.On("Save", mock.Anything, mock.AnythingOfType("*organizer.Note")).Return(nil)

		tagID := uuid.New()
		resp, err := svc.CreateNote(context.Background(), userID, CreateNoteRequest{
			Title:   "Snippet",
			Content: "fmt.Println(42)",
			Type:    "code",
			TagIDs:  []uuid.UUID{tagID},
		})

		require.NoError(t, err)
		assert.Equal(t, "code", resp.Type)
		assert.Equal(t, []uuid.UUID{tagID}, resp.TagIDs)
	})

	t.Run("rejects an unknown type", func(t *testing.T) {
		noteRepo := new(MockNoteRepository)
		svc := NewNoteService(noteRepo)

		_, err := svc.CreateNote(context.Background(), userID, CreateNoteRequest{
			Title:   "Bad",
			Content: "content",
			Type:    "hologram",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
	})
}

func TestNoteService_UpdateNote(t *testing.T) {
	userID := uuid.New()

	t.Run("updates title, content and tags", func(t *testing.T) {
		noteRepo := new(MockNoteRepository)
		svc := NewNoteService(noteRepo)

		existing, err := organizer.NewNote(userID, "Draft", "original", organizer.NoteTypeText)
		require.NoError(t, err)

		noteRepo.On("FindByIDForUser", mock.Anything, userID, existing.ID).Return(existing, nil)
		noteRepo.On("Save", mock.Anything, existing).Return(nil)

		tagID := uuid.New()
		resp, err := svc.UpdateNote(context.Background(), userID, existing.ID, UpdateNoteRequest{
			Title:   "Final",
			Content: "revised",
			TagIDs:  []uuid.UUID{tagID},
		})

		require.NoError(t, err)
		assert.Equal(t, "Final", resp.Title)
		assert.Equal(t, "revised", resp.Content)
		assert.Equal(t, []uuid.UUID{tagID}, resp.TagIDs)
		noteRepo.AssertExpectations(t)
	})

	t.Run("returns not found for another user's note", func(t *testing.T) {
		noteRepo := new(MockNoteRepository)
		svc := NewNoteService(noteRepo)
		id := uuid.New()
		noteRepo.On("FindByIDForUser", mock.Anything, userID, id).Return(nil, shared.ErrNotFound)

		_, err := svc.UpdateNote(context.Background(), userID, id, UpdateNoteRequest{
			Title:   "Anything",
			Content: "content",
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestNoteService_ListNotes(t *testing.T) {
	userID := uuid.New()

	noteRepo := new(MockNoteRepository)
	svc := NewNoteService(noteRepo)

	first, err := organizer.NewNote(userID, "One", "first", organizer.NoteTypeText)
	require.NoError(t, err)
	second, err := organizer.NewNote(userID, "Two", "second", organizer.NoteTypeList)
	require.NoError(t, err)

	noteRepo.On("FindAllForUser", mock.Anything, userID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["type"] == "text" || f.Filters["type"] == nil
	})).Return([]organizer.Note{*first, *second}, nil)
	noteRepo.On("CountForUser", mock.Anything, userID, mock.AnythingOfType("shared.Filter")).
		Return(int64(2), nil)

	responses, total, err := svc.ListNotes(context.Background(), userID, NoteListFilter{Page: 1, PageSize: 10})

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, responses, 2)
}
