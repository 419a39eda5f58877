package repository

import (
	"context"

	"library-backend/internal/domains/reservation/model"

	"github.com/google/uuid"
)

// RepositoryInterface - data access for book reservations. GetByID returns nil, nil on a miss.
type RepositoryInterface interface {
	Create(ctx context.Context, r *model.BookReservation) error
	// Update persists the review columns if r.Version is still current and advances it.
	Update(ctx context.Context, r *model.BookReservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.BookReservation, error)
	// ListPending pages unreviewed rows, oldest first. total counts pending rows only.
	ListPending(ctx context.Context, page, pageSize int) ([]*model.BookReservation, int64, error)
}
