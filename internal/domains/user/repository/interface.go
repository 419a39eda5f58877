package repository

import (
	"context"

	"library-backend/internal/domains/user/model"

	"github.com/google/uuid"
)

// RepositoryInterface - data access for users. Lookups return nil, nil on a miss.
type RepositoryInterface interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// FindByEmail matches case-insensitively.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
	CountByRole(ctx context.Context, role string) (int64, error)
}
