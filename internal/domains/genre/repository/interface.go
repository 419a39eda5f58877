package repository

import (
	"context"

	"library-backend/internal/domains/genre/model"

	"github.com/google/uuid"
)

// RepositoryInterface - data access for genres. Lookups return nil, nil on a miss.
type RepositoryInterface interface {
	Create(ctx context.Context, genre *model.Genre) error
	Rename(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error)
	FindByName(ctx context.Context, name string) (*model.Genre, error)
	FindByNames(ctx context.Context, names []string) ([]*model.Genre, error)
	// NameExists ignores the row with excludeID, pass uuid.Nil to check every row.
	NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, page, pageSize int) ([]*model.Genre, int64, error)
	ListAll(ctx context.Context) ([]*model.Genre, error)
	Search(ctx context.Context, name string, page, pageSize int) ([]*model.Genre, int64, error)
	CountAll(ctx context.Context) (int64, error)
}

// GenresBooksRepository - the genres_books junction.
type GenresBooksRepository interface {
	AddLinks(ctx context.Context, bookID uuid.UUID, genreIDs []uuid.UUID) error
	DeleteByBook(ctx context.Context, bookID uuid.UUID) error
	CountBooks(ctx context.Context, genreID uuid.UUID) (int64, error)
	GenreNamesByBook(ctx context.Context, bookID uuid.UUID) ([]string, error)
	BookIDsByGenres(ctx context.Context, genreIDs []uuid.UUID) ([]uuid.UUID, error)
}
