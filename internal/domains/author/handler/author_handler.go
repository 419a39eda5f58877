package handler

import (
	"net/http"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/domains/author/service"
	"library-backend/internal/shared/request"
	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type AuthorHandler struct {
	service         service.ServiceInterface
	defaultPageSize int
}

func NewAuthorHandler(svc service.ServiceInterface, defaultPageSize int) *AuthorHandler {
	return &AuthorHandler{service: svc, defaultPageSize: defaultPageSize}
}

// ════════════════════════════════════════════════════════════════
// POST /v1/authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// ════════════════════════════════════════════════════════════════
// PUT /v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ════════════════════════════════════════════════════════════════
// DELETE /v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ════════════════════════════════════════════════════════════════
// GET /v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GET /v1/authors?page=&page_size=
func (h *AuthorHandler) List(c *gin.Context) {
	p, ok := request.Pagination(c, h.defaultPageSize)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Paged(c, *result)
}

// GET /v1/authors/all
func (h *AuthorHandler) GetAll(c *gin.Context) {
	authors, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, authors)
}

// GET /v1/authors/search?name=&page=&page_size=
func (h *AuthorHandler) Search(c *gin.Context) {
	p, ok := request.Pagination(c, h.defaultPageSize)
	if !ok {
		return
	}

	result, err := h.service.Search(c.Request.Context(), c.Query("name"), p)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Paged(c, *result)
}

// GET /v1/authors/:id/books/count
func (h *AuthorHandler) BooksCount(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	n, err := h.service.GetBooksCount(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.BooksCountResponse{AuthorID: id, BooksCount: n})
}
