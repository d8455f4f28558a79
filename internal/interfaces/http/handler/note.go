package handler

import (
	"github.com/gin-gonic/gin"
	organizerapp "github.com/organizer/backend/internal/application/organizer"
)

// NoteHandler handles note API endpoints
type NoteHandler struct {
	BaseHandler
	noteService *organizerapp.NoteService
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(noteService *organizerapp.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// Create creates a new note
func (h *NoteHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req organizerapp.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	note, err := h.noteService.CreateNote(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, note)
}

// GetByID retrieves a note by ID
func (h *NoteHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid note ID")
		return
	}

	note, err := h.noteService.GetNoteByID(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, note)
}

// Update updates a note
func (h *NoteHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid note ID")
		return
	}

	var req organizerapp.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	note, err := h.noteService.UpdateNote(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, note)
}

// Delete deletes a note
func (h *NoteHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid note ID")
		return
	}

	if err := h.noteService.DeleteNote(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// List lists notes with optional filters and pagination
func (h *NoteHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter organizerapp.NoteListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	notes, total, err := h.noteService.ListNotes(c.Request.Context(), userID, filter)
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
	h.SuccessWithMeta(c, notes, total, page, pageSize)
}

// RegisterRoutes registers all note routes
func (h *NoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notes := rg.Group("/notes")
	{
		notes.GET("", h.List)
		notes.GET("/:id", h.GetByID)
		notes.POST("", h.Create)
		notes.PUT("/:id", h.Update)
		notes.DELETE("/:id", h.Delete)
	}
}
