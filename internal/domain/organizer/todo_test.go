package organizer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTodo(t *testing.T) {
	userID := uuid.New()

	t.Run("valid todo with defaults", func(t *testing.T) {
		todo, err := NewTodo(userID, "Buy groceries", "", "", nil)
		require.NoError(t, err)
		assert.Equal(t, TodoPriorityMedium, todo.Priority)
		assert.Equal(t, TodoStatusPending, todo.Status)
		assert.False(t, todo.Completed)
		assert.Equal(t, userID, todo.UserID)
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := NewTodo(userID, "", "", TodoPriorityHigh, nil)
		assert.Error(t, err)
	})

	t.Run("invalid priority", func(t *testing.T) {
		_, err := NewTodo(userID, "Task", "", "urgent", nil)
		assert.Error(t, err)
	})
}

func TestTodoStatusTransitions(t *testing.T) {
	todo, err := NewTodo(uuid.New(), "Task", "", TodoPriorityLow, nil)
	require.NoError(t, err)

	require.NoError(t, todo.SetStatus(TodoStatusInProgress))
	assert.False(t, todo.Completed)

	require.NoError(t, todo.SetStatus(TodoStatusDone))
	assert.True(t, todo.Completed)

	todo.SetCompleted(false)
	assert.Equal(t, TodoStatusPending, todo.Status)

	assert.Error(t, todo.SetStatus("archived"))
}

func TestTodoSubtasks(t *testing.T) {
	todo, err := NewTodo(uuid.New(), "Plan trip", "", TodoPriorityMedium, nil)
	require.NoError(t, err)

	first, err := todo.AddSubtask("Book flights")
	require.NoError(t, err)
	second, err := todo.AddSubtask("Reserve hotel")
	require.NoError(t, err)
	third, err := todo.AddSubtask("Pack bags")
	require.NoError(t, err)

	assert.Equal(t, 0, first.Position)
	assert.Equal(t, 1, second.Position)
	assert.Equal(t, 2, third.Position)

	done := true
	require.NoError(t, todo.UpdateSubtask(second.ID, nil, &done))
	assert.True(t, todo.Subtasks[1].Completed)

	require.NoError(t, todo.RemoveSubtask(second.ID))
	require.Len(t, todo.Subtasks, 2)
	assert.Equal(t, "Book flights", todo.Subtasks[0].Title)
	assert.Equal(t, 0, todo.Subtasks[0].Position)
	assert.Equal(t, "Pack bags", todo.Subtasks[1].Title)
	assert.Equal(t, 1, todo.Subtasks[1].Position)

	err = todo.RemoveSubtask(uuid.New())
	assert.Error(t, err)

	_, err = todo.AddSubtask("")
	assert.Error(t, err)
}
