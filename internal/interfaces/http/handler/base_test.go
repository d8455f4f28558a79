package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/shared"
	"github.com/organizer/backend/internal/interfaces/http/dto"
	"github.com/organizer/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setAuthContext simulates an authenticated request without a real token
func setAuthContext(c *gin.Context, userID uuid.UUID) {
	c.Set(middleware.AuthUserIDKey, userID)
}

func TestGetUserID(t *testing.T) {
	t.Run("returns the authenticated user", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)

		expected := uuid.New()
		setAuthContext(c, expected)

		id, err := getUserID(c)
		require.NoError(t, err)
		assert.Equal(t, expected, id)
	})

	t.Run("fails without auth context", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)

		_, err := getUserID(c)
		assert.Error(t, err)
	})
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	data := map[string]string{"key": "value"}
	h.Success(c, data)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	data := []string{"item1", "item2"}
	h.SuccessWithMeta(c, data, 100, 1, 10)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Meta)
	assert.Equal(t, int64(100), resp.Meta.Total)
	assert.Equal(t, 10, resp.Meta.TotalPages)
}

func TestBaseHandlerCreated(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Created(c, map[string]string{"id": "123"})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestBaseHandlerNoContent(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.NoContent(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestBaseHandlerHandleError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "not found",
			err:            shared.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   dto.ErrCodeNotFound,
		},
		{
			name:           "already exists",
			err:            shared.ErrAlreadyExists,
			expectedStatus: http.StatusConflict,
			expectedCode:   dto.ErrCodeAlreadyExists,
		},
		{
			name:           "already paid",
			err:            shared.ErrAlreadyPaid,
			expectedStatus: http.StatusConflict,
			expectedCode:   dto.ErrCodeAlreadyPaid,
		},
		{
			name:           "feature disabled",
			err:            shared.ErrFeatureDisabled,
			expectedStatus: http.StatusForbidden,
			expectedCode:   dto.ErrCodeFeatureDisabled,
		},
		{
			name:           "invalid state",
			err:            shared.ErrInvalidState,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   dto.ErrCodeInvalidState,
		},
		{
			name:           "custom domain code",
			err:            shared.NewDomainError("INVALID_RECURRENCE", "Unknown recurrence kind"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrCodeInvalidInput,
		},
		{
			name:           "plain error becomes internal",
			err:            assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp dto.Response
			err := json.Unmarshal(w.Body.Bytes(), &resp)
			require.NoError(t, err)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
		})
	}
}
