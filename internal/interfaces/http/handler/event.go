package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	calendarapp "github.com/organizer/backend/internal/application/calendar"
)

// EventHandler handles calendar event API endpoints
type EventHandler struct {
	BaseHandler
	eventService *calendarapp.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService *calendarapp.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Create creates a single event or expands a recurring template into its
// series. The response always carries the full list of created rows.
func (h *EventHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req calendarapp.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	events, err := h.eventService.CreateEvent(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, events)
}

// GetByID retrieves a single event
func (h *EventHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	event, err := h.eventService.GetEventByID(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, event)
}

// Update updates a single event. An occurrence of a recurring series is
// edited independently of its siblings.
func (h *EventHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	var req calendarapp.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, event)
}

// Delete deletes a single event
func (h *EventHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	if err := h.eventService.DeleteEvent(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// List lists events with optional filters and pagination
func (h *EventHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter calendarapp.EventListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	events, total, err := h.eventService.ListEvents(c.Request.Context(), userID, filter)
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
	h.SuccessWithMeta(c, events, total, page, pageSize)
}

// Range returns all events overlapping a time window
func (h *EventHandler) Range(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing 'from' parameter, expected RFC3339")
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing 'to' parameter, expected RFC3339")
		return
	}

	events, err := h.eventService.GetEventsInRange(c.Request.Context(), userID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, events)
}

// RegisterRoutes registers all event routes
func (h *EventHandler) RegisterRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	{
		events.GET("", h.List)
		events.GET("/range", h.Range)
		events.GET("/:id", h.GetByID)
		events.POST("", h.Create)
		events.PUT("/:id", h.Update)
		events.DELETE("/:id", h.Delete)
	}
}
