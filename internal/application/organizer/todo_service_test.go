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

type MockTodoRepository struct {
	mock.Mock
}

func (m *MockTodoRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*organizer.Todo, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*organizer.Todo), args.Error(1)
}

func (m *MockTodoRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]organizer.Todo, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]organizer.Todo), args.Error(1)
}

func (m *MockTodoRepository) Save(ctx context.Context, todo *organizer.Todo) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

func (m *MockTodoRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockTodoRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTodoRepository) FindBySubtaskID(ctx context.Context, userID, subtaskID uuid.UUID) (*organizer.Todo, error) {
	args := m.Called(ctx, userID, subtaskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*organizer.Todo), args.Error(1)
}

func TestTodoService_Subtasks(t *testing.T) {
	userID := uuid.New()

	newTodoWithSubtask := func(t *testing.T) (*organizer.Todo, uuid.UUID) {
		t.Helper()
		todo, err := organizer.NewTodo(userID, "Pack for the trip", "", "", nil)
		require.NoError(t, err)
		st, err := todo.AddSubtask("Passport")
		require.NoError(t, err)
		return todo, st.ID
	}

	t.Run("adds a subtask at the end", func(t *testing.T) {
		repo := new(MockTodoRepository)
		service := NewTodoService(repo)

		todo, _ := newTodoWithSubtask(t)
		repo.On("FindByIDForUser", mock.Anything, userID, todo.ID).Return(todo, nil)
		repo.On("Save", mock.Anything, todo).Return(nil)

		resp, err := service.AddSubtask(context.Background(), userID, todo.ID, AddSubtaskRequest{Title: "Chargers"})

		assert.NoError(t, err)
		require.Len(t, resp.Subtasks, 2)
		assert.Equal(t, "Chargers", resp.Subtasks[1].Title)
		assert.Equal(t, 1, resp.Subtasks[1].Position)
		repo.AssertExpectations(t)
	})

	t.Run("patches a subtask resolved through its own id", func(t *testing.T) {
		repo := new(MockTodoRepository)
		service := NewTodoService(repo)

		todo, subtaskID := newTodoWithSubtask(t)
		repo.On("FindBySubtaskID", mock.Anything, userID, subtaskID).Return(todo, nil)
		repo.On("Save", mock.Anything, todo).Return(nil)

		done := true
		resp, err := service.UpdateSubtask(context.Background(), userID, subtaskID, UpdateSubtaskRequest{Completed: &done})

		assert.NoError(t, err)
		require.Len(t, resp.Subtasks, 1)
		assert.True(t, resp.Subtasks[0].Completed)
		assert.Equal(t, "Passport", resp.Subtasks[0].Title)
		repo.AssertExpectations(t)
	})

	t.Run("removes a subtask and renumbers the rest", func(t *testing.T) {
		repo := new(MockTodoRepository)
		service := NewTodoService(repo)

		todo, subtaskID := newTodoWithSubtask(t)
		_, err := todo.AddSubtask("Tickets")
		require.NoError(t, err)

		repo.On("FindBySubtaskID", mock.Anything, userID, subtaskID).Return(todo, nil)
		repo.On("Save", mock.Anything, todo).Return(nil)

		resp, err := service.RemoveSubtask(context.Background(), userID, subtaskID)

		assert.NoError(t, err)
		require.Len(t, resp.Subtasks, 1)
		assert.Equal(t, "Tickets", resp.Subtasks[0].Title)
		assert.Equal(t, 0, resp.Subtasks[0].Position)
		repo.AssertExpectations(t)
	})

	t.Run("propagates not found for foreign subtasks", func(t *testing.T) {
		repo := new(MockTodoRepository)
		service := NewTodoService(repo)

		subtaskID := uuid.New()
		repo.On("FindBySubtaskID", mock.Anything, userID, subtaskID).Return(nil, shared.ErrNotFound)

		_, err := service.RemoveSubtask(context.Background(), userID, subtaskID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestTodoService_SetTodoStatus(t *testing.T) {
	userID := uuid.New()

	t.Run("done status mirrors the completed flag", func(t *testing.T) {
		repo := new(MockTodoRepository)
		service := NewTodoService(repo)

		todo, err := organizer.NewTodo(userID, "Ship release", "", "", nil)
		require.NoError(t, err)
		repo.On("FindByIDForUser", mock.Anything, userID, todo.ID).Return(todo, nil)
		repo.On("Save", mock.Anything, todo).Return(nil)

		resp, err := service.SetTodoStatus(context.Background(), userID, todo.ID, SetTodoStatusRequest{Status: "done"})

		assert.NoError(t, err)
		assert.Equal(t, "done", resp.Status)
		assert.True(t, resp.Completed)
		repo.AssertExpectations(t)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		repo := new(MockTodoRepository)
		service := NewTodoService(repo)

		todo, err := organizer.NewTodo(userID, "Ship release", "", "", nil)
		require.NoError(t, err)
		repo.On("FindByIDForUser", mock.Anything, userID, todo.ID).Return(todo, nil)

		_, err = service.SetTodoStatus(context.Background(), userID, todo.ID, SetTodoStatusRequest{Status: "archived"})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
