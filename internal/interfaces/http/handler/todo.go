package handler

import (
	"github.com/gin-gonic/gin"
	organizerapp "github.com/organizer/backend/internal/application/organizer"
)

// TodoHandler handles todo and subtask API endpoints
type TodoHandler struct {
	BaseHandler
	todoService *organizerapp.TodoService
}

// NewTodoHandler creates a new TodoHandler
func NewTodoHandler(todoService *organizerapp.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// Create creates a new todo
func (h *TodoHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req organizerapp.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	todo, err := h.todoService.CreateTodo(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, todo)
}

// GetByID retrieves a todo with its subtasks
func (h *TodoHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid todo ID")
		return
	}

	todo, err := h.todoService.GetTodoByID(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, todo)
}

// Update updates a todo's fields
func (h *TodoHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid todo ID")
		return
	}

	var req organizerapp.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	todo, err := h.todoService.UpdateTodo(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, todo)
}

// SetStatus moves a todo between states
func (h *TodoHandler) SetStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid todo ID")
		return
	}

	var req organizerapp.SetTodoStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	todo, err := h.todoService.SetTodoStatus(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, todo)
}

// Delete deletes a todo and its subtasks
func (h *TodoHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid todo ID")
		return
	}

	if err := h.todoService.DeleteTodo(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// List lists todos with optional filters and pagination
func (h *TodoHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter organizerapp.TodoListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	todos, total, err := h.todoService.ListTodos(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, todos, total, page, pageSize)
}

// AddSubtask appends a subtask to a todo
func (h *TodoHandler) AddSubtask(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	todoID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid todo ID")
		return
	}

	var req organizerapp.AddSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	todo, err := h.todoService.AddSubtask(c.Request.Context(), userID, todoID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, todo)
}

// UpdateSubtask patches a subtask's title or completion flag
func (h *TodoHandler) UpdateSubtask(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	subtaskID, err := parseIDParam(c, "subtaskId")
	if err != nil {
		h.BadRequest(c, "Invalid subtask ID")
		return
	}

	var req organizerapp.UpdateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	todo, err := h.todoService.UpdateSubtask(c.Request.Context(), userID, subtaskID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, todo)
}

// RemoveSubtask removes a subtask and renumbers the survivors
func (h *TodoHandler) RemoveSubtask(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	subtaskID, err := parseIDParam(c, "subtaskId")
	if err != nil {
		h.BadRequest(c, "Invalid subtask ID")
		return
	}

	todo, err := h.todoService.RemoveSubtask(c.Request.Context(), userID, subtaskID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, todo)
}

// RegisterRoutes registers all todo and subtask routes
func (h *TodoHandler) RegisterRoutes(rg *gin.RouterGroup) {
	todos := rg.Group("/todos")
	{
		todos.GET("", h.List)
		todos.GET("/:id", h.GetByID)
		todos.POST("", h.Create)
		todos.PUT("/:id", h.Update)
		todos.PATCH("/:id/status", h.SetStatus)
		todos.DELETE("/:id", h.Delete)
		todos.POST("/:id/subtasks", h.AddSubtask)
	}

	subtasks := rg.Group("/subtasks")
	{
		subtasks.PATCH("/:subtaskId", h.UpdateSubtask)
		subtasks.DELETE("/:subtaskId", h.RemoveSubtask)
	}
}
