package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"library-backend/internal/shared"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", fmt.Errorf("%w: book not found", shared.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"validation", fmt.Errorf("%w: title is required", shared.ErrValidation), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"conflict", fmt.Errorf("%w: title exists", shared.ErrConflict), http.StatusConflict, "CONFLICT"},
		{"terminal state", fmt.Errorf("%w: reviewed", shared.ErrTerminalState), http.StatusConflict, "ALREADY_REVIEWED"},
		{"self review", fmt.Errorf("%w: own request", shared.ErrSelfReview), http.StatusForbidden, "SELF_REVIEW"},
		{"unauthorized", shared.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"wrapped twice", fmt.Errorf("approve: %w", fmt.Errorf("%w: gone", shared.ErrNotFound)), http.StatusNotFound, "NOT_FOUND"},
		{"unknown", errors.New("pq: connection refused"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/books/1", nil)

			HandleError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)

			var body Response
			require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			if tt.status == http.StatusInternalServerError {
				assert.NotContains(t, body.Error.Message, "connection refused")
			}
		})
	}
}

func TestPaged(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Paged(c, shared.PagedResult[string]{Items: []string{"a", "b"}, Page: 2, PageSize: 2, Total: 5})

	var body struct {
		Success bool     `json:"success"`
		Data    []string `json:"data"`
		Meta    Meta     `json:"meta"`
	}
	require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, []string{"a", "b"}, body.Data)
	assert.Equal(t, Meta{Page: 2, Limit: 2, Total: 5, TotalPages: 3}, body.Meta)
}
