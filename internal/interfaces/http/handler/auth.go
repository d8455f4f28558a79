package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/organizer/backend/internal/domain/identity"
	"github.com/organizer/backend/internal/infrastructure/auth"
	"github.com/organizer/backend/internal/interfaces/http/dto"
)

// AuthHandler handles token exchange for the allow-listed principal
type AuthHandler struct {
	BaseHandler
	jwtService *auth.JWTService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{jwtService: jwtService}
}

// TokenRequest represents a request to exchange the shared secret for a token
type TokenRequest struct {
	Subject string `json:"subject" binding:"required"`
	Secret  string `json:"secret" binding:"required"`
}

// Token exchanges the shared secret for a signed bearer token. Only the
// configured principal can obtain one.
func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	issued, err := h.jwtService.Exchange(req.Subject, req.Secret)
	if err != nil {
		if err == identity.ErrNotAllowed {
			h.Error(c, http.StatusForbidden, dto.ErrCodeForbidden, "Principal is not allowed")
			return
		}
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Invalid credentials")
		return
	}

	h.Success(c, issued)
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/token", h.Token)
	}
}
