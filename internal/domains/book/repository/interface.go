package repository

import (
	"context"
	"time"

	"library-backend/internal/domains/book/model"

	"github.com/google/uuid"
)

// RepositoryInterface - data access for books. GetByID returns nil, nil on a miss.
type RepositoryInterface interface {
	Create(ctx context.Context, book *model.Book) error
	// Update persists the mutable columns if book.Version is still current
	// and advances book.Version. Returns model.ErrVersionConflict otherwise.
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	TitleExists(ctx context.Context, title string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, page, pageSize int) ([]*model.Book, int64, error)
	ListAll(ctx context.Context) ([]*model.Book, error)
	Search(ctx context.Context, filter model.SearchFilter, page, pageSize int) ([]*model.Book, int64, error)
	CreatedSince(ctx context.Context, since time.Time, page, pageSize int) ([]*model.Book, int64, error)
	Count(ctx context.Context) (int64, error)
	CoverAddresses(ctx context.Context) ([]string, error)
}
