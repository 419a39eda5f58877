package service

import (
	"context"

	"library-backend/internal/domains/genre/model"
	"library-backend/internal/shared"

	"github.com/google/uuid"
)

// ServiceInterface - genre catalog operations. Mirrors the author catalog plus a global count.
type ServiceInterface interface {
	Create(ctx context.Context, req model.GenreRequest) (*model.GenreResponse, error)
	Update(ctx context.Context, id uuid.UUID, req model.GenreRequest) (*model.GenreResponse, error)
	// Delete fails with ErrGenreHasBooks while any book links the genre.
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.GenreResponse, error)
	List(ctx context.Context, p shared.Pagination) (*shared.PagedResult[model.GenreResponse], error)
	GetAll(ctx context.Context) ([]model.GenreResponse, error)
	Search(ctx context.Context, name string, p shared.Pagination) (*shared.PagedResult[model.GenreResponse], error)
	GetBooksCount(ctx context.Context, id uuid.UUID) (int64, error)
	// CountAll is cached for a short TTL, the number only feeds dashboards.
	CountAll(ctx context.Context) (int64, error)

	// ResolveNames maps every name to an existing genre id, failing on the first unknown name.
	ResolveNames(ctx context.Context, names []string) ([]uuid.UUID, error)
	// FindIDsByNames returns the ids of the names that exist and silently skips the rest.
	FindIDsByNames(ctx context.Context, names []string) ([]uuid.UUID, error)
}

// GenresBooksServiceInterface - maintenance of the genres_books junction.
type GenresBooksServiceInterface interface {
	LinkBook(ctx context.Context, bookID uuid.UUID, genreIDs []uuid.UUID) error
	// ReplaceForBook deletes every link of the book and inserts genreIDs.
	ReplaceForBook(ctx context.Context, bookID uuid.UUID, genreIDs []uuid.UUID) error
	DeleteByBook(ctx context.Context, bookID uuid.UUID) error
	CountBooks(ctx context.Context, genreID uuid.UUID) (int64, error)
	GenreNamesByBook(ctx context.Context, bookID uuid.UUID) ([]string, error)
	BookIDsByGenres(ctx context.Context, genreIDs []uuid.UUID) ([]uuid.UUID, error)
}
