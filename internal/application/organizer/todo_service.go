package organizer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/organizer"
	"github.com/organizer/backend/internal/domain/shared"
)

// TodoService provides application-level todo and subtask operations
type TodoService struct {
	todoRepo organizer.TodoRepository
}

// NewTodoService creates a new TodoService
func NewTodoService(todoRepo organizer.TodoRepository) *TodoService {
	return &TodoService{todoRepo: todoRepo}
}

// SubtaskResponse represents a subtask in API responses
type SubtaskResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Position  int       `json:"position"`
}

// TodoResponse represents a todo in API responses
type TodoResponse struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Priority    string            `json:"priority"`
	Status      string            `json:"status"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	Completed   bool              `json:"completed"`
	Subtasks    []SubtaskResponse `json:"subtasks"`
	TagIDs      []uuid.UUID       `json:"tag_ids"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// CreateTodoRequest represents a request to create a todo
type CreateTodoRequest struct {
	Title       string      `json:"title" binding:"required"`
	Description string      `json:"description"`
	Priority    string      `json:"priority"`
	DueDate     *time.Time  `json:"due_date"`
	TagIDs      []uuid.UUID `json:"tag_ids"`
}

// UpdateTodoRequest represents a request to update a todo
type UpdateTodoRequest struct {
	Title       string      `json:"title" binding:"required"`
	Description string      `json:"description"`
	Priority    string      `json:"priority"`
	DueDate     *time.Time  `json:"due_date"`
	TagIDs      []uuid.UUID `json:"tag_ids"`
}

// SetTodoStatusRequest represents a request to move a todo between states
type SetTodoStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AddSubtaskRequest represents a request to append a subtask
type AddSubtaskRequest struct {
	Title string `json:"title" binding:"required"`
}

// UpdateSubtaskRequest represents a partial update of a subtask
type UpdateSubtaskRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// TodoListFilter defines filtering options for todo list queries
type TodoListFilter struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	Priority  string `form:"priority"`
	Completed *bool  `form:"completed"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir"`
}

// CreateTodo creates a new todo
func (s *TodoService) CreateTodo(ctx context.Context, userID uuid.UUID, req CreateTodoRequest) (*TodoResponse, error) {
	todo, err := organizer.NewTodo(userID, req.Title, req.Description, organizer.TodoPriority(req.Priority), req.DueDate)
	if err != nil {
		return nil, err
	}
	if len(req.TagIDs) > 0 {
		todo.SetTags(req.TagIDs)
	}

	if err := s.todoRepo.Save(ctx, todo); err != nil {
		return nil, err
	}
	return toTodoResponse(todo), nil
}

// GetTodoByID gets a todo by ID
func (s *TodoService) GetTodoByID(ctx context.Context, userID, id uuid.UUID) (*TodoResponse, error) {
	todo, err := s.todoRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toTodoResponse(todo), nil
}

// UpdateTodo updates a todo's own fields; subtasks are managed through
// the dedicated subtask operations
func (s *TodoService) UpdateTodo(ctx context.Context, userID, id uuid.UUID, req UpdateTodoRequest) (*TodoResponse, error) {
	todo, err := s.todoRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := todo.Update(req.Title, req.Description, organizer.TodoPriority(req.Priority), req.DueDate); err != nil {
		return nil, err
	}
	todo.SetTags(req.TagIDs)

	if err := s.todoRepo.Save(ctx, todo); err != nil {
		return nil, err
	}
	return toTodoResponse(todo), nil
}

// SetTodoStatus moves a todo between workflow states
func (s *TodoService) SetTodoStatus(ctx context.Context, userID, id uuid.UUID, req SetTodoStatusRequest) (*TodoResponse, error) {
	todo, err := s.todoRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := todo.SetStatus(organizer.TodoStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.todoRepo.Save(ctx, todo); err != nil {
		return nil, err
	}
	return toTodoResponse(todo), nil
}

// DeleteTodo deletes a todo together with its subtasks
func (s *TodoService) DeleteTodo(ctx context.Context, userID, id uuid.UUID) error {
	return s.todoRepo.DeleteForUser(ctx, userID, id)
}

// ListTodos lists todos with filtering and pagination
func (s *TodoService) ListTodos(ctx context.Context, userID uuid.UUID, filter TodoListFilter) ([]TodoResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  map[string]interface{}{},
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Priority != "" {
		domainFilter.Filters["priority"] = filter.Priority
	}
	if filter.Completed != nil {
		domainFilter.Filters["completed"] = *filter.Completed
	}

	todos, err := s.todoRepo.FindAllForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.todoRepo.CountForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TodoResponse, len(todos))
	for i := range todos {
		responses[i] = *toTodoResponse(&todos[i])
	}
	return responses, total, nil
}

// AddSubtask appends a subtask at the end of the todo's list
func (s *TodoService) AddSubtask(ctx context.Context, userID, todoID uuid.UUID, req AddSubtaskRequest) (*TodoResponse, error) {
	todo, err := s.todoRepo.FindByIDForUser(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	if _, err := todo.AddSubtask(req.Title); err != nil {
		return nil, err
	}

	if err := s.todoRepo.Save(ctx, todo); err != nil {
		return nil, err
	}
	return toTodoResponse(todo), nil
}

// UpdateSubtask patches a subtask's title or completion flag. The subtask
// is addressed directly; its parent todo is resolved from it.
func (s *TodoService) UpdateSubtask(ctx context.Context, userID, subtaskID uuid.UUID, req UpdateSubtaskRequest) (*TodoResponse, error) {
	todo, err := s.todoRepo.FindBySubtaskID(ctx, userID, subtaskID)
	if err != nil {
		return nil, err
	}

	if err := todo.UpdateSubtask(subtaskID, req.Title, req.Completed); err != nil {
		return nil, err
	}

	if err := s.todoRepo.Save(ctx, todo); err != nil {
		return nil, err
	}
	return toTodoResponse(todo), nil
}

// RemoveSubtask deletes a subtask and closes the position gap it leaves
func (s *TodoService) RemoveSubtask(ctx context.Context, userID, subtaskID uuid.UUID) (*TodoResponse, error) {
	todo, err := s.todoRepo.FindBySubtaskID(ctx, userID, subtaskID)
	if err != nil {
		return nil, err
	}

	if err := todo.RemoveSubtask(subtaskID); err != nil {
		return nil, err
	}

	if err := s.todoRepo.Save(ctx, todo); err != nil {
		return nil, err
	}
	return toTodoResponse(todo), nil
}

func toTodoResponse(t *organizer.Todo) *TodoResponse {
	subtasks := make([]SubtaskResponse, len(t.Subtasks))
	for i, st := range t.Subtasks {
		subtasks[i] = SubtaskResponse{
			ID:        st.ID,
			Title:     st.Title,
			Completed: st.Completed,
			Position:  st.Position,
		}
	}
	tagIDs := t.TagIDs
	if tagIDs == nil {
		tagIDs = []uuid.UUID{}
	}
	return &TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		DueDate:     t.DueDate,
		Completed:   t.Completed,
		Subtasks:    subtasks,
		TagIDs:      tagIDs,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
