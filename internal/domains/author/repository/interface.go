package repository

import (
	"context"

	"library-backend/internal/domains/author/model"

	"github.com/google/uuid"
)

// RepositoryInterface - data access for authors.
// Lookups return nil, nil when nothing matches.
type RepositoryInterface interface {
	Create(ctx context.Context, author *model.Author) error
	Rename(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	FindByName(ctx context.Context, name string) (*model.Author, error)
	FindByNames(ctx context.Context, names []string) ([]*model.Author, error)
	// NameExists ignores the row with excludeID, pass uuid.Nil to check every row.
	NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, page, pageSize int) ([]*model.Author, int64, error)
	ListAll(ctx context.Context) ([]*model.Author, error)
	Search(ctx context.Context, name string, page, pageSize int) ([]*model.Author, int64, error)
}

// AuthorsBooksRepository - the authors_books junction.
type AuthorsBooksRepository interface {
	AddLinks(ctx context.Context, bookID uuid.UUID, authorIDs []uuid.UUID) error
	DeleteByBook(ctx context.Context, bookID uuid.UUID) error
	CountBooks(ctx context.Context, authorID uuid.UUID) (int64, error)
	AuthorNamesByBook(ctx context.Context, bookID uuid.UUID) ([]string, error)
	BookIDsByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]uuid.UUID, error)
}
