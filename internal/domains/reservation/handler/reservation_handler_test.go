package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"library-backend/internal/domains/reservation/model"
	"library-backend/internal/shared"
	"library-backend/internal/shared/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockReservationService struct {
	mock.Mock
}

func (m *mockReservationService) AddReservation(ctx context.Context, userID, bookID uuid.UUID) (*model.ReservationResponse, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReservationResponse), args.Error(1)
}

func (m *mockReservationService) GetPending(ctx context.Context, p shared.Pagination) (*shared.PagedResult[model.ReservationOutput], error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.PagedResult[model.ReservationOutput]), args.Error(1)
}

func (m *mockReservationService) GetByID(ctx context.Context, id uuid.UUID) (*model.ConfirmOutput, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ConfirmOutput), args.Error(1)
}

func (m *mockReservationService) Approve(ctx context.Context, id, librarianID uuid.UUID, message string) error {
	return m.Called(ctx, id, librarianID, message).Error(0)
}

func (m *mockReservationService) Reject(ctx context.Context, id, librarianID uuid.UUID, message string) error {
	return m.Called(ctx, id, librarianID, message).Error(0)
}

func (m *mockReservationService) GenerateReservationOutput(ctx context.Context, r *model.BookReservation) (*model.ReservationOutput, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReservationOutput), args.Error(1)
}

func (m *mockReservationService) GenerateConfirmOutput(ctx context.Context, r *model.BookReservation) (*model.ConfirmOutput, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ConfirmOutput), args.Error(1)
}

// newTestRouter wires the handler behind a stub that plays the auth middleware.
func newTestRouter(svc *mockReservationService, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewReservationHandler(svc, 10)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Next()
	})
	r.POST("/reservations", h.Create)
	r.GET("/reservations/pending", h.Pending)
	r.POST("/reservations/:id/approve", h.Approve)
	r.POST("/reservations/:id/reject", h.Reject)
	return r
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestReservationHandler_Create(t *testing.T) {
	userID, bookID := uuid.New(), uuid.New()

	t.Run("created", func(t *testing.T) {
		svc := new(mockReservationService)
		svc.On("AddReservation", mock.Anything, userID, bookID).
			Return(&model.ReservationResponse{ID: uuid.New(), Status: model.StatusPending}, nil).Once()

		w := serve(newTestRouter(svc, userID), http.MethodPost, "/reservations", `{"book_id":"`+bookID.String()+`"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"pending"`)
		svc.AssertExpectations(t)
	})

	t.Run("book id must be a uuid", func(t *testing.T) {
		svc := new(mockReservationService)

		w := serve(newTestRouter(svc, userID), http.MethodPost, "/reservations", `{"book_id":"42"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "AddReservation", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("out of stock", func(t *testing.T) {
		svc := new(mockReservationService)
		svc.On("AddReservation", mock.Anything, userID, bookID).Return(nil, model.ErrBookOutOfStock).Once()

		w := serve(newTestRouter(svc, userID), http.MethodPost, "/reservations", `{"book_id":"`+bookID.String()+`"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})
}

func TestReservationHandler_Review(t *testing.T) {
	librarianID, id := uuid.New(), uuid.New()

	tests := []struct {
		name   string
		path   string
		method string
		err    error
		want   int
	}{
		{"approved", "/approve", "Approve", nil, http.StatusNoContent},
		{"rejected", "/reject", "Reject", nil, http.StatusNoContent},
		{"already reviewed", "/approve", "Approve", model.ErrAlreadyReviewed, http.StatusConflict},
		{"own request", "/reject", "Reject", model.ErrSelfReview, http.StatusForbidden},
		{"missing reservation", "/approve", "Approve", model.ErrReservationNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockReservationService)
			svc.On(tt.method, mock.Anything, id, librarianID, "see you").Return(tt.err).Once()

			w := serve(newTestRouter(svc, librarianID), http.MethodPost,
				"/reservations/"+id.String()+tt.path, `{"message":"see you"}`)

			assert.Equal(t, tt.want, w.Code)
			svc.AssertExpectations(t)
		})
	}

	t.Run("bad id", func(t *testing.T) {
		svc := new(mockReservationService)

		w := serve(newTestRouter(svc, librarianID), http.MethodPost, "/reservations/nope/approve", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReservationHandler_Pending(t *testing.T) {
	svc := new(mockReservationService)
	svc.On("GetPending", mock.Anything, shared.Pagination{Page: 1, PageSize: 10}).
		Return(nil, model.ErrNoPendingReservations).Once()

	w := serve(newTestRouter(svc, uuid.New()), http.MethodGet, "/reservations/pending", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertExpectations(t)
}
