package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/identity"
	"github.com/organizer/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Auth context keys
const (
	AuthUserIDKey  = "auth_user_id"
	AuthSubjectKey = "auth_subject"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// AuthMiddlewareConfig holds configuration for the auth middleware
type AuthMiddlewareConfig struct {
	// Resolver maps a bearer token to the calling user
	Resolver identity.Resolver
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultAuthConfig returns default auth middleware configuration
func DefaultAuthConfig(resolver identity.Resolver) AuthMiddlewareConfig {
	return AuthMiddlewareConfig{
		Resolver: resolver,
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/ready",
			"/api/v1/health",
			"/api/v1/auth/token",
		},
		SkipPathPrefixes: []string{},
	}
}

// Auth creates authentication middleware backed by the identity resolver
func Auth(resolver identity.Resolver) gin.HandlerFunc {
	return AuthWithConfig(DefaultAuthConfig(resolver))
}

// AuthWithConfig creates authentication middleware with custom config
func AuthWithConfig(cfg AuthMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, cfg, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, cfg, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, cfg, "Missing token")
			return
		}

		user, err := cfg.Resolver.Resolve(c.Request.Context(), tokenString)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn("Authentication failed",
					zap.Error(err),
					zap.String("path", path),
				)
			}
			if err == identity.ErrNotAllowed {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "ERR_FORBIDDEN",
						"message": "Principal is not allowed",
					},
				})
				return
			}
			abortUnauthorized(c, cfg, "Invalid or expired token")
			return
		}

		c.Set(AuthUserIDKey, user.ID)
		c.Set(AuthSubjectKey, user.Subject)

		// Propagate the user ID into the request context for the logger
		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, _ = logger.WithUserID(ctx, log, user.ID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, cfg AuthMiddlewareConfig, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("Request rejected",
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path),
		)
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ERR_UNAUTHORIZED",
			"message": "Authentication required",
		},
	})
}

// CurrentUserID retrieves the authenticated user's ID from gin.Context
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	if v, exists := c.Get(AuthUserIDKey); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id, true
		}
	}
	return uuid.Nil, false
}

// CurrentSubject retrieves the authenticated principal from gin.Context
func CurrentSubject(c *gin.Context) string {
	if v, exists := c.Get(AuthSubjectKey); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
