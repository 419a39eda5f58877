package service

import (
	"context"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/shared"

	"github.com/google/uuid"
)

// ServiceInterface - author catalog operations.
type ServiceInterface interface {
	Create(ctx context.Context, req model.AuthorRequest) (*model.AuthorResponse, error)
	Update(ctx context.Context, id uuid.UUID, req model.AuthorRequest) (*model.AuthorResponse, error)
	// Delete fails with ErrAuthorHasBooks while any book links the author.
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.AuthorResponse, error)
	List(ctx context.Context, p shared.Pagination) (*shared.PagedResult[model.AuthorResponse], error)
	GetAll(ctx context.Context) ([]model.AuthorResponse, error)
	Search(ctx context.Context, name string, p shared.Pagination) (*shared.PagedResult[model.AuthorResponse], error)
	GetBooksCount(ctx context.Context, id uuid.UUID) (int64, error)

	// ResolveNames maps every name to an existing author id, failing on the first unknown name.
	ResolveNames(ctx context.Context, names []string) ([]uuid.UUID, error)
	// FindIDsByNames returns the ids of the names that exist and silently skips the rest.
	FindIDsByNames(ctx context.Context, names []string) ([]uuid.UUID, error)
}

// AuthorsBooksServiceInterface - maintenance of the authors_books junction.
type AuthorsBooksServiceInterface interface {
	LinkBook(ctx context.Context, bookID uuid.UUID, authorIDs []uuid.UUID) error
	// ReplaceForBook deletes every link of the book and inserts authorIDs.
	ReplaceForBook(ctx context.Context, bookID uuid.UUID, authorIDs []uuid.UUID) error
	DeleteByBook(ctx context.Context, bookID uuid.UUID) error
	CountBooks(ctx context.Context, authorID uuid.UUID) (int64, error)
	AuthorNamesByBook(ctx context.Context, bookID uuid.UUID) ([]string, error)
	BookIDsByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]uuid.UUID, error)
}
