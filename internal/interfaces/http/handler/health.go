package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	BaseHandler
	db      *gorm.DB
	appName string
	version string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *gorm.DB, appName, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		appName: appName,
		version: version,
	}
}

// HealthResponse represents the health check payload
type HealthResponse struct {
	Status   string    `json:"status"`
	App      string    `json:"app"`
	Version  string    `json:"version,omitempty"`
	Database string    `json:"database"`
	Time     time.Time `json:"time"`
}

// Check reports service liveness and database connectivity
func (h *HealthHandler) Check(c *gin.Context) {
	resp := HealthResponse{
		Status:   "ok",
		App:      h.appName,
		Version:  h.version,
		Database: "ok",
		Time:     time.Now().UTC(),
	}

	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			resp.Status = "degraded"
			resp.Database = "unreachable"
		}
	}

	h.Success(c, resp)
}

// RegisterRoutes registers health routes
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Check)
}
