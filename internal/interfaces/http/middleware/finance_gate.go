package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FinanceGate reports whether the finance module is enabled for a user.
// The settings service implements it with a Redis-backed cache in front
// of the settings store.
type FinanceGate interface {
	FinanceEnabled(ctx context.Context, userID uuid.UUID) (bool, error)
}

// RequireFinance creates middleware that blocks finance routes for users
// who have not enabled the finance module in their settings.
func RequireFinance(gate FinanceGate, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ERR_UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		enabled, err := gate.FinanceEnabled(c.Request.Context(), userID)
		if err != nil {
			if log != nil {
				log.Error("Failed to check finance flag",
					zap.String("user_id", userID.String()),
					zap.Error(err),
				)
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ERR_INTERNAL",
					"message": "Failed to check feature availability",
				},
			})
			return
		}

		if !enabled {
			if log != nil {
				log.Info("Finance access denied",
					zap.String("user_id", userID.String()),
				)
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ERR_FEATURE_DISABLED",
					"message": "The finance module is disabled. Enable it in settings first.",
				},
			})
			return
		}

		c.Next()
	}
}
