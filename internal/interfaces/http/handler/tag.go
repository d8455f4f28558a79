package handler

import (
	"github.com/gin-gonic/gin"
	organizerapp "github.com/organizer/backend/internal/application/organizer"
)

// TagHandler handles tag API endpoints
type TagHandler struct {
	BaseHandler
	tagService *organizerapp.TagService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagService *organizerapp.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// Create creates a new tag. Names are unique per user.
func (h *TagHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req organizerapp.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tag, err := h.tagService.CreateTag(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tag)
}

// GetByID retrieves a tag by ID
func (h *TagHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tag ID")
		return
	}

	tag, err := h.tagService.GetTagByID(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tag)
}

// Update updates a tag
func (h *TagHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tag ID")
		return
	}

	var req organizerapp.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tag, err := h.tagService.UpdateTag(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tag)
}

// Delete deletes a tag and detaches it from all tagged items
func (h *TagHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tag ID")
		return
	}

	if err := h.tagService.DeleteTag(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// List lists tags with optional search and pagination
func (h *TagHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter organizerapp.TagListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tags, total, err := h.tagService.ListTags(c.Request.Context(), userID, filter)
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
	h.SuccessWithMeta(c, tags, total, page, pageSize)
}

// RegisterRoutes registers all tag routes
func (h *TagHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tags := rg.Group("/tags")
	{
		tags.GET("", h.List)
		tags.GET("/:id", h.GetByID)
		tags.POST("", h.Create)
		tags.PUT("/:id", h.Update)
		tags.DELETE("/:id", h.Delete)
	}
}
