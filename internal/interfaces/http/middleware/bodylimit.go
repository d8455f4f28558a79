package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/organizer/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that rejects requests whose declared
// Content-Length exceeds maxBytes and caps streaming bodies at the same
// limit, so chunked uploads cannot sidestep the check.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRequestTooLarge,
				"Request body exceeds the maximum allowed size",
				c.GetString(RequestIDContextKey),
			))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
