package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/organizer/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBodyLimitRouter(maxBytes int64) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.Use(BodyLimit(maxBytes))
	router.POST("/notes", func(c *gin.Context) {
		var payload map[string]interface{}
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeInvalidJSON, err.Error()))
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(payload))
	})
	return router
}

func TestBodyLimit_RejectsOversizedBody(t *testing.T) {
	router := newBodyLimitRouter(16)

	body := `{"content":"` + strings.Repeat("x", 64) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeRequestTooLarge, resp.Error.Code)
	assert.Equal(t, w.Header().Get(RequestIDHeader), resp.Error.RequestID)
}

func TestBodyLimit_AllowsBodyWithinLimit(t *testing.T) {
	router := newBodyLimitRouter(1024)

	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{"content":"ok"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBodyLimit_CapsStreamingBody(t *testing.T) {
	router := newBodyLimitRouter(16)

	// No Content-Length header, so only the MaxBytesReader wrapper can stop it
	body := `{"content":"` + strings.Repeat("x", 64) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.NotEqual(t, http.StatusOK, w.Code)
}
