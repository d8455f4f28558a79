package handler

import (
	"github.com/gin-gonic/gin"
	settingsapp "github.com/organizer/backend/internal/application/settings"
)

// SettingsHandler handles user settings API endpoints
type SettingsHandler struct {
	BaseHandler
	settingsService *settingsapp.Service
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *settingsapp.Service) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get returns the caller's settings, creating defaults on first read
func (h *SettingsHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	settings, err := h.settingsService.GetSettings(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, settings)
}

// Update updates the caller's settings
func (h *SettingsHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req settingsapp.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, settings)
}

// RegisterRoutes registers settings routes
func (h *SettingsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	settings := rg.Group("/settings")
	{
		settings.GET("", h.Get)
		settings.PUT("", h.Update)
	}
}
