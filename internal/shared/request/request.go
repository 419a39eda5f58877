package request

import (
	"fmt"

	"library-backend/internal/shared"
	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UUIDParam parses a path parameter and writes a 400 when it is not a UUID.
func UUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, fmt.Sprintf("invalid %s: must be a UUID", name))
		return uuid.Nil, false
	}
	return id, true
}

// Pagination binds ?page=&page_size= with defaults and validates it.
func Pagination(c *gin.Context, defaultPageSize int) (shared.Pagination, bool) {
	var p shared.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.BadRequest(c, "page and page_size must be integers")
		return p, false
	}

	p = p.WithDefaults(defaultPageSize)
	if err := p.Validate(); err != nil {
		response.HandleError(c, err)
		return p, false
	}
	return p, true
}
