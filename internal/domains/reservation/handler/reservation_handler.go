package handler

import (
	"context"
	"net/http"

	"library-backend/internal/domains/reservation/model"
	"library-backend/internal/domains/reservation/service"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/request"
	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	service         service.ServiceInterface
	defaultPageSize int
}

func NewReservationHandler(svc service.ServiceInterface, defaultPageSize int) *ReservationHandler {
	return &ReservationHandler{service: svc, defaultPageSize: defaultPageSize}
}

// ════════════════════════════════════════════════════════════════
// POST /v1/reservations
// ════════════════════════════════════════════════════════════════

func (h *ReservationHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, err)
		return
	}

	resp, err := h.service.AddReservation(c.Request.Context(), userID, uuid.MustParse(req.BookID))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// ════════════════════════════════════════════════════════════════
// GET /v1/reservations/pending
// ════════════════════════════════════════════════════════════════

func (h *ReservationHandler) Pending(c *gin.Context) {
	p, ok := request.Pagination(c, h.defaultPageSize)
	if !ok {
		return
	}

	result, err := h.service.GetPending(c.Request.Context(), p)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Paged(c, *result)
}

// GET /v1/reservations/:id
func (h *ReservationHandler) GetByID(c *gin.Context) {
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

// ════════════════════════════════════════════════════════════════
// POST /v1/reservations/:id/approve | /reject
// ════════════════════════════════════════════════════════════════

func (h *ReservationHandler) Approve(c *gin.Context) {
	h.review(c, h.service.Approve)
}

func (h *ReservationHandler) Reject(c *gin.Context) {
	h.review(c, h.service.Reject)
}

type reviewFunc func(ctx context.Context, id, librarianID uuid.UUID, message string) error

func (h *ReservationHandler) review(c *gin.Context, fn reviewFunc) {
	librarianID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, err)
		return
	}

	if err := fn(c.Request.Context(), id, librarianID, req.Message); err != nil {
		response.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
