package response

import (
	"errors"
	"net/http"

	"library-backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Meta struct {
	Page       int   `json:"page,omitempty"`
	Limit      int   `json:"limit,omitempty"`
	Total      int64 `json:"total,omitempty"`
	TotalPages int   `json:"total_pages,omitempty"`
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithMeta(c *gin.Context, statusCode int, data interface{}, meta *Meta) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Paged writes a shared.PagedResult as data + meta.
func Paged[T any](c *gin.Context, result shared.PagedResult[T]) {
	SuccessWithMeta(c, http.StatusOK, result.Items, &Meta{
		Page:       result.Page,
		Limit:      result.PageSize,
		Total:      result.Total,
		TotalPages: result.TotalPages(),
	})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message)
}

func Conflict(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, "CONFLICT", message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}

var errorKinds = []struct {
	kind   error
	status int
	code   string
}{
	{shared.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{shared.ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR"},
	{shared.ErrConflict, http.StatusConflict, "CONFLICT"},
	{shared.ErrTerminalState, http.StatusConflict, "ALREADY_REVIEWED"},
	{shared.ErrSelfReview, http.StatusForbidden, "SELF_REVIEW"},
	{shared.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
	{shared.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
}

// HandleError maps a service error onto the envelope. Unknown errors are
// logged and reported as 500 without leaking their text.
func HandleError(c *gin.Context, err error) {
	for _, k := range errorKinds {
		if errors.Is(err, k.kind) {
			ErrorResponse(c, k.status, k.code, err.Error())
			return
		}
	}

	log.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg("unhandled error")
	InternalServerError(c, "Internal server error")
}
