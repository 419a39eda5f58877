package service

import (
	"context"

	bookmodel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/reservation/model"
	usermodel "library-backend/internal/domains/user/model"
	"library-backend/internal/shared"

	"github.com/google/uuid"
)

// ServiceInterface - reservation workflow: request, list, approve, reject
type ServiceInterface interface {
	AddReservation(ctx context.Context, userID, bookID uuid.UUID) (*model.ReservationResponse, error)
	GetPending(ctx context.Context, p shared.Pagination) (*shared.PagedResult[model.ReservationOutput], error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.ConfirmOutput, error)

	Approve(ctx context.Context, id, librarianID uuid.UUID, message string) error
	Reject(ctx context.Context, id, librarianID uuid.UUID, message string) error

	GenerateReservationOutput(ctx context.Context, r *model.BookReservation) (*model.ReservationOutput, error)
	GenerateConfirmOutput(ctx context.Context, r *model.BookReservation) (*model.ConfirmOutput, error)
}

// BookStore is the slice of the book repository the workflow needs.
// GetByID returns nil, nil on a miss; Update is version checked.
type BookStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*bookmodel.Book, error)
	Update(ctx context.Context, book *bookmodel.Book) error
}

// UserFinder returns nil, nil when the user does not exist.
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*usermodel.User, error)
}
