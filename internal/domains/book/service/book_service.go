package service

import (
	"context"
	"fmt"
	"time"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
	"library-backend/internal/shared"
	"library-backend/pkg/cache"
	"library-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const booksCountKey = "books:count"

// Config groups the tunables the book service reads.
type Config struct {
	RecentWindow  time.Duration
	CountCacheTTL time.Duration
}

type BookService struct {
	repo        repository.RepositoryInterface
	tx          database.Transactor
	authors     NameResolver
	genres      NameResolver
	authorLinks AuthorLinks
	genreLinks  GenreLinks
	blobs       BlobStore
	cache       cache.Cache
	cfg         Config
	now         func() time.Time
}

// NewBookService - Constructor with DI
func NewBookService(
	repo repository.RepositoryInterface,
	tx database.Transactor,
	authors NameResolver,
	genres NameResolver,
	authorLinks AuthorLinks,
	genreLinks GenreLinks,
	blobs BlobStore,
	cache cache.Cache,
	cfg Config,
) ServiceInterface {
	return &BookService{
		repo:        repo,
		tx:          tx,
		authors:     authors,
		genres:      genres,
		authorLinks: authorLinks,
		genreLinks:  genreLinks,
		blobs:       blobs,
		cache:       cache,
		cfg:         cfg,
		now:         time.Now,
	}
}

// =====================================================
// WRITE
// =====================================================

func (s *BookService) AddBook(ctx context.Context, in model.BookInput) (*model.BookResponse, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.TitleExists(ctx, in.Title, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrTitleExists
	}

	if err := in.RequireCatalog(); err != nil {
		return nil, err
	}

	if in.TotalQuantity <= 0 {
		return nil, model.ErrInvalidTotalQuantity
	}

	authorIDs, genreIDs, err := s.resolveCatalog(ctx, in)
	if err != nil {
		return nil, err
	}

	var cover *string
	if in.Cover != nil {
		url, err := s.blobs.Upload(ctx, in.Cover, in.Title)
		if err != nil {
			return nil, fmt.Errorf("upload cover: %w", err)
		}
		cover = &url
	}

	book := model.NewBook(in.Title, in.DescriptionPtr(), in.TotalQuantity, cover)

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, book); err != nil {
			return err
		}
		if err := s.authorLinks.LinkBook(ctx, book.ID, authorIDs); err != nil {
			return err
		}
		return s.genreLinks.LinkBook(ctx, book.ID, genreIDs)
	})
	if err != nil {
		if cover != nil {
			s.discardBlob(ctx, *cover)
		}
		return nil, fmt.Errorf("add book: %w", err)
	}

	s.invalidateCount(ctx)
	log.Info().Str("book_id", book.ID.String()).Str("title", book.Title).Int("quantity", book.TotalQuantity).Msg("book added")

	return s.toResponse(ctx, book)
}

func (s *BookService) UpdateBook(ctx context.Context, id uuid.UUID, in model.BookInput) (*model.BookResponse, error) {
	book, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.TitleExists(ctx, in.Title, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrTitleExists
	}

	if err := in.RequireCatalog(); err != nil {
		return nil, err
	}

	if err := book.SetTotal(in.TotalQuantity); err != nil {
		return nil, err
	}

	authorIDs, genreIDs, err := s.resolveCatalog(ctx, in)
	if err != nil {
		return nil, err
	}

	titleChanged := book.Title != in.Title
	book.Title = in.Title
	book.Description = in.DescriptionPtr()

	cover, err := s.stageCover(ctx, book, in, titleChanged)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, book); err != nil {
			return err
		}
		if err := s.authorLinks.ReplaceForBook(ctx, book.ID, authorIDs); err != nil {
			return err
		}
		return s.genreLinks.ReplaceForBook(ctx, book.ID, genreIDs)
	})
	if err != nil {
		cover.rollback(ctx, s)
		return nil, fmt.Errorf("update book: %w", err)
	}
	cover.commit(ctx, s)

	log.Info().Str("book_id", book.ID.String()).Int("total", book.TotalQuantity).Int("current", book.CurrentQuantity).Msg("book updated")
	return s.toResponse(ctx, book)
}

// DeleteBook removes the row first; a cover left behind by a failed blob
// delete is picked up by CleanupOrphanCovers.
func (s *BookService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	book, err := s.mustGet(ctx, id)
	if err != nil {
		return err
	}

	if !book.AllReturned() {
		return model.ErrBooksOnLoan
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	if book.HasCover() {
		s.discardBlob(ctx, *book.ImageAddress)
	}

	s.invalidateCount(ctx)
	log.Info().Str("book_id", id.String()).Str("title", book.Title).Msg("book deleted")
	return nil
}

// =====================================================
// READ
// =====================================================

func (s *BookService) GetByID(ctx context.Context, id uuid.UUID) (*model.BookResponse, error) {
	book, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, book)
}

func (s *BookService) GetAll(ctx context.Context) ([]model.BookResponse, error) {
	books, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	if len(books) == 0 {
		return nil, model.ErrNoBooks
	}
	return s.toResponses(ctx, books)
}

func (s *BookService) GetBooks(ctx context.Context, p shared.Pagination) (*shared.PagedResult[model.BookResponse], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	books, total, err := s.repo.List(ctx, p.Page, p.PageSize)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return s.page(ctx, books, total, p)
}

func (s *BookService) Search(ctx context.Context, req model.SearchRequest, p shared.Pagination) (*shared.PagedResult[model.BookResponse], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	req.Normalize()

	filter := model.SearchFilter{Title: req.Title, Description: req.Description}

	if len(req.Authors) > 0 {
		ids, err := s.bookIDsForNames(ctx, req.Authors, s.authors, s.authorLinks.BookIDsByAuthors)
		if err != nil {
			return nil, err
		}
		filter.RestrictIDs, filter.IDs = true, ids
	}

	if len(req.Genres) > 0 {
		ids, err := s.bookIDsForNames(ctx, req.Genres, s.genres, s.genreLinks.BookIDsByGenres)
		if err != nil {
			return nil, err
		}
		if filter.RestrictIDs {
			ids = intersect(filter.IDs, ids)
		}
		filter.RestrictIDs, filter.IDs = true, ids
	}

	if filter.RestrictIDs && len(filter.IDs) == 0 {
		return nil, model.ErrNoBooks
	}

	books, total, err := s.repo.Search(ctx, filter, p.Page, p.PageSize)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return s.page(ctx, books, total, p)
}

// GetLastTwoWeeks lists books added since midnight UTC RecentWindow ago, newest first.
func (s *BookService) GetLastTwoWeeks(ctx context.Context, p shared.Pagination) (*shared.PagedResult[model.BookResponse], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	since := s.now().UTC().Truncate(24 * time.Hour).Add(-s.cfg.RecentWindow)

	books, total, err := s.repo.CreatedSince(ctx, since, p.Page, p.PageSize)
	if err != nil {
		return nil, fmt.Errorf("list recent books: %w", err)
	}
	return s.page(ctx, books, total, p)
}

func (s *BookService) CompareBookQuantity(ctx context.Context, id uuid.UUID) (bool, error) {
	book, err := s.mustGet(ctx, id)
	if err != nil {
		return false, err
	}
	return book.AllReturned(), nil
}

func (s *BookService) GetBooksCount(ctx context.Context) (int64, error) {
	var count int64
	found, err := s.cache.Get(ctx, booksCountKey, &count)
	if err != nil {
		log.Warn().Err(err).Msg("book count cache read failed")
	}
	if found {
		return count, nil
	}

	count, err = s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}

	if err := s.cache.Set(ctx, booksCountKey, count, s.cfg.CountCacheTTL); err != nil {
		log.Warn().Err(err).Msg("book count cache write failed")
	}
	return count, nil
}

// =====================================================
// HELPERS
// =====================================================

func (s *BookService) mustGet(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if book == nil {
		return nil, model.ErrBookNotFound
	}
	return book, nil
}

func (s *BookService) resolveCatalog(ctx context.Context, in model.BookInput) ([]uuid.UUID, []uuid.UUID, error) {
	authorIDs, err := s.authors.ResolveNames(ctx, in.Authors)
	if err != nil {
		return nil, nil, err
	}
	genreIDs, err := s.genres.ResolveNames(ctx, in.Genres)
	if err != nil {
		return nil, nil, err
	}
	return authorIDs, genreIDs, nil
}

// bookIDsForNames resolves catalog names and returns the ids of the books linked to them.
// Names that resolve to nothing make the whole search empty.
func (s *BookService) bookIDsForNames(
	ctx context.Context,
	names []string,
	resolver NameResolver,
	booksFor func(context.Context, []uuid.UUID) ([]uuid.UUID, error),
) ([]uuid.UUID, error) {
	ids, err := resolver.FindIDsByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, model.ErrNoBooks
	}
	return booksFor(ctx, ids)
}

func (s *BookService) page(ctx context.Context, books []*model.Book, total int64, p shared.Pagination) (*shared.PagedResult[model.BookResponse], error) {
	if total == 0 {
		return nil, model.ErrNoBooks
	}

	items, err := s.toResponses(ctx, books)
	if err != nil {
		return nil, err
	}

	return &shared.PagedResult[model.BookResponse]{
		Items:    items,
		Page:     p.Page,
		PageSize: p.PageSize,
		Total:    total,
	}, nil
}

func (s *BookService) toResponse(ctx context.Context, book *model.Book) (*model.BookResponse, error) {
	authors, err := s.authorLinks.AuthorNamesByBook(ctx, book.ID)
	if err != nil {
		return nil, err
	}
	genres, err := s.genreLinks.GenreNamesByBook(ctx, book.ID)
	if err != nil {
		return nil, err
	}

	resp := book.ToResponse(authors, genres)
	return &resp, nil
}

func (s *BookService) toResponses(ctx context.Context, books []*model.Book) ([]model.BookResponse, error) {
	out := make([]model.BookResponse, 0, len(books))
	for _, b := range books {
		resp, err := s.toResponse(ctx, b)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *BookService) invalidateCount(ctx context.Context) {
	if err := s.cache.Delete(ctx, booksCountKey); err != nil {
		log.Warn().Err(err).Msg("book count cache invalidation failed")
	}
}

func intersect(a, b []uuid.UUID) []uuid.UUID {
	set := make(map[uuid.UUID]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}

	out := make([]uuid.UUID, 0, len(b))
	for _, id := range b {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
