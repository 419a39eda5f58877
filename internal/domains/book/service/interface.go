package service

import (
	"context"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/infrastructure/storage"
	"library-backend/internal/shared"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ServiceInterface - book catalog operations
type ServiceInterface interface {
	AddBook(ctx context.Context, in model.BookInput) (*model.BookResponse, error)
	UpdateBook(ctx context.Context, id uuid.UUID, in model.BookInput) (*model.BookResponse, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.BookResponse, error)
	GetAll(ctx context.Context) ([]model.BookResponse, error)
	GetBooks(ctx context.Context, p shared.Pagination) (*shared.PagedResult[model.BookResponse], error)
	Search(ctx context.Context, req model.SearchRequest, p shared.Pagination) (*shared.PagedResult[model.BookResponse], error)
	GetLastTwoWeeks(ctx context.Context, p shared.Pagination) (*shared.PagedResult[model.BookResponse], error)

	CompareBookQuantity(ctx context.Context, id uuid.UUID) (bool, error)
	GetBooksCount(ctx context.Context) (int64, error)
	ExportCatalog(ctx context.Context) (*excelize.File, error)
	CleanupOrphanCovers(ctx context.Context) (*model.CleanupReport, error)
}

// NameResolver turns catalog names into ids. Implemented by the author and genre services.
type NameResolver interface {
	ResolveNames(ctx context.Context, names []string) ([]uuid.UUID, error)
	FindIDsByNames(ctx context.Context, names []string) ([]uuid.UUID, error)
}

// AuthorLinks is the part of the authors_books service the book service needs.
type AuthorLinks interface {
	LinkBook(ctx context.Context, bookID uuid.UUID, authorIDs []uuid.UUID) error
	ReplaceForBook(ctx context.Context, bookID uuid.UUID, authorIDs []uuid.UUID) error
	AuthorNamesByBook(ctx context.Context, bookID uuid.UUID) ([]string, error)
	BookIDsByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]uuid.UUID, error)
}

// GenreLinks is the part of the genres_books service the book service needs.
type GenreLinks interface {
	LinkBook(ctx context.Context, bookID uuid.UUID, genreIDs []uuid.UUID) error
	ReplaceForBook(ctx context.Context, bookID uuid.UUID, genreIDs []uuid.UUID) error
	GenreNamesByBook(ctx context.Context, bookID uuid.UUID) ([]string, error)
	BookIDsByGenres(ctx context.Context, genreIDs []uuid.UUID) ([]uuid.UUID, error)
}

// BlobStore holds cover images. Implemented by storage.MinIOStorage.
type BlobStore interface {
	Upload(ctx context.Context, file *storage.File, baseName string) (string, error)
	Copy(ctx context.Context, srcURL, newName string) (string, error)
	Remove(ctx context.Context, blobURL string) error
	Delete(ctx context.Context, name string) error
	ListAll(ctx context.Context) ([]string, error)
}
