package handler

import (
	"net/http"

	"library-backend/internal/domains/genre/model"
	"library-backend/internal/domains/genre/service"
	"library-backend/internal/shared/request"
	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	service         service.ServiceInterface
	defaultPageSize int
}

func NewGenreHandler(svc service.ServiceInterface, defaultPageSize int) *GenreHandler {
	return &GenreHandler{service: svc, defaultPageSize: defaultPageSize}
}

// ════════════════════════════════════════════════════════════════
// POST /v1/genres
// ════════════════════════════════════════════════════════════════

func (h *GenreHandler) Create(c *gin.Context) {
	var req model.GenreRequest
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
// PUT /v1/genres/:id
// ════════════════════════════════════════════════════════════════

func (h *GenreHandler) Update(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.GenreRequest
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
// DELETE /v1/genres/:id
// ════════════════════════════════════════════════════════════════

func (h *GenreHandler) Delete(c *gin.Context) {
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
// GET /v1/genres/:id
// ════════════════════════════════════════════════════════════════

func (h *GenreHandler) GetByID(c *gin.Context) {
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

// GET /v1/genres?page=&page_size=
func (h *GenreHandler) List(c *gin.Context) {
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

// GET /v1/genres/all
func (h *GenreHandler) GetAll(c *gin.Context) {
	genres, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, genres)
}

// GET /v1/genres/search?name=&page=&page_size=
func (h *GenreHandler) Search(c *gin.Context) {
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

// GET /v1/genres/count
func (h *GenreHandler) Count(c *gin.Context) {
	n, err := h.service.CountAll(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.CountResponse{Count: n})
}

// GET /v1/genres/:id/books/count
func (h *GenreHandler) BooksCount(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	n, err := h.service.GetBooksCount(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.BooksCountResponse{GenreID: id, BooksCount: n})
}
