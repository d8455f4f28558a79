package organizer

import (
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/shared"
)

// TodoPriority represents how urgent a todo is
type TodoPriority string

const (
	TodoPriorityHigh   TodoPriority = "alta"
	TodoPriorityMedium TodoPriority = "media"
	TodoPriorityLow    TodoPriority = "baja"
)

// IsValid checks if the priority is a recognised value
func (p TodoPriority) IsValid() bool {
	switch p {
	case TodoPriorityHigh, TodoPriorityMedium, TodoPriorityLow:
		return true
	}
	return false
}

// TodoStatus represents the lifecycle state of a todo
type TodoStatus string

const (
	TodoStatusPending    TodoStatus = "todo"
	TodoStatusInProgress TodoStatus = "in_progress"
	TodoStatusDone       TodoStatus = "done"
)

// IsValid checks if the status is a recognised value
func (s TodoStatus) IsValid() bool {
	switch s {
	case TodoStatusPending, TodoStatusInProgress, TodoStatusDone:
		return true
	}
	return false
}

// Subtask is a child item of a todo, ordered by Position
type Subtask struct {
	shared.BaseEntity
	TodoID    uuid.UUID `json:"todo_id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Position  int       `json:"position"`
}

// Todo represents a todo aggregate root with its subtasks
type Todo struct {
	shared.OwnedAggregateRoot
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    TodoPriority `json:"priority"`
	Status      TodoStatus   `json:"status"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Completed   bool         `json:"completed"`
	Subtasks    []Subtask    `json:"subtasks"`
	TagIDs      []uuid.UUID  `json:"tag_ids"`
}

// NewTodo creates a new todo in the pending state.
// Priority defaults to media when empty.
func NewTodo(userID uuid.UUID, title, description string, priority TodoPriority, dueDate *time.Time) (*Todo, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if priority == "" {
		priority = TodoPriorityMedium
	}
	if !priority.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRIORITY", "Priority is not valid")
	}
	return &Todo{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Title:              title,
		Description:        description,
		Priority:           priority,
		Status:             TodoStatusPending,
		DueDate:            dueDate,
	}, nil
}

// Update replaces the editable fields of the todo
func (t *Todo) Update(title, description string, priority TodoPriority, dueDate *time.Time) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if !priority.IsValid() {
		return shared.NewDomainError("INVALID_PRIORITY", "Priority is not valid")
	}
	t.Title = title
	t.Description = description
	t.Priority = priority
	t.DueDate = dueDate
	t.UpdatedAt = time.Now()
	return nil
}

// SetStatus moves the todo to the given status.
// Completed mirrors the done status so both representations agree.
func (t *Todo) SetStatus(status TodoStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Status is not valid")
	}
	t.Status = status
	t.Completed = status == TodoStatusDone
	t.UpdatedAt = time.Now()
	return nil
}

// SetCompleted toggles completion, keeping Status in sync
func (t *Todo) SetCompleted(completed bool) {
	t.Completed = completed
	if completed {
		t.Status = TodoStatusDone
	} else if t.Status == TodoStatusDone {
		t.Status = TodoStatusPending
	}
	t.UpdatedAt = time.Now()
}

// SetTags replaces the tag associations of the todo
func (t *Todo) SetTags(tagIDs []uuid.UUID) {
	t.TagIDs = tagIDs
	t.UpdatedAt = time.Now()
}

// AddSubtask appends a subtask at the end of the list
func (t *Todo) AddSubtask(title string) (*Subtask, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Subtask title cannot be empty")
	}
	subtask := Subtask{
		BaseEntity: shared.NewBaseEntity(),
		TodoID:     t.ID,
		Title:      title,
		Position:   len(t.Subtasks),
	}
	t.Subtasks = append(t.Subtasks, subtask)
	t.UpdatedAt = time.Now()
	return &t.Subtasks[len(t.Subtasks)-1], nil
}

// UpdateSubtask changes a subtask's title or completion flag
func (t *Todo) UpdateSubtask(subtaskID uuid.UUID, title *string, completed *bool) error {
	for i := range t.Subtasks {
		if t.Subtasks[i].ID != subtaskID {
			continue
		}
		if title != nil {
			if *title == "" {
				return shared.NewDomainError("INVALID_TITLE", "Subtask title cannot be empty")
			}
			t.Subtasks[i].Title = *title
		}
		if completed != nil {
			t.Subtasks[i].Completed = *completed
		}
		t.Subtasks[i].UpdatedAt = time.Now()
		t.UpdatedAt = time.Now()
		return nil
	}
	return shared.ErrNotFound
}

// RemoveSubtask deletes a subtask and renumbers the remaining positions
func (t *Todo) RemoveSubtask(subtaskID uuid.UUID) error {
	for i := range t.Subtasks {
		if t.Subtasks[i].ID != subtaskID {
			continue
		}
		t.Subtasks = append(t.Subtasks[:i], t.Subtasks[i+1:]...)
		for j := range t.Subtasks {
			t.Subtasks[j].Position = j
		}
		t.UpdatedAt = time.Now()
		return nil
	}
	return shared.ErrNotFound
}
