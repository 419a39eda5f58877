package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-backend/internal/domains/book/model"
	"library-backend/pkg/database"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const booksTable = "books"

type postgresRepository struct {
	db    database.DBTX
	books *database.Gateway[model.Book]
}

func NewPostgresRepository(db database.DBTX) RepositoryInterface {
	return &postgresRepository{
		db:    db,
		books: database.NewGateway[model.Book](db, booksTable),
	}
}

func (r *postgresRepository) Create(ctx context.Context, book *model.Book) error {
	err := r.books.Insert(ctx, book)
	if errors.Is(err, database.ErrUniqueViolation) {
		return model.ErrTitleExists
	}
	return err
}

func (r *postgresRepository) Update(ctx context.Context, book *model.Book) error {
	err := r.books.UpdateVersioned(ctx, book.ID, book.Version, goqu.Record{
		"title":            book.Title,
		"description":      book.Description,
		"total_quantity":   book.TotalQuantity,
		"current_quantity": book.CurrentQuantity,
		"is_available":     book.IsAvailable,
		"image_address":    book.ImageAddress,
	})
	switch {
	case errors.Is(err, database.ErrVersionConflict):
		return model.ErrVersionConflict
	case errors.Is(err, database.ErrUniqueViolation):
		return model.ErrTitleExists
	case err != nil:
		return err
	}

	book.Version++
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.books.Delete(ctx, id)
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return r.books.GetByID(ctx, id)
}

func (r *postgresRepository) TitleExists(ctx context.Context, title string, excludeID uuid.UUID) (bool, error) {
	n, err := r.books.Count(ctx, func(ds *goqu.SelectDataset) *goqu.SelectDataset {
		return ds.Where(goqu.C("title").Eq(title), goqu.C("id").Neq(excludeID))
	})
	if err != nil {
		return false, fmt.Errorf("check book title: %w", err)
	}
	return n > 0, nil
}

func (r *postgresRepository) List(ctx context.Context, page, pageSize int) ([]*model.Book, int64, error) {
	return r.books.GetPage(ctx, page, pageSize, byTitle)
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]*model.Book, error) {
	return r.books.Find(ctx, byTitle)
}

func (r *postgresRepository) Search(ctx context.Context, filter model.SearchFilter, page, pageSize int) ([]*model.Book, int64, error) {
	if filter.RestrictIDs && len(filter.IDs) == 0 {
		return []*model.Book{}, 0, nil
	}

	return r.books.GetPage(ctx, page, pageSize, func(ds *goqu.SelectDataset) *goqu.SelectDataset {
		if filter.Title != "" {
			ds = ds.Where(goqu.C("title").ILike(database.ContainsPattern(filter.Title)))
		}
		if filter.Description != "" {
			ds = ds.Where(goqu.C("description").ILike(database.ContainsPattern(filter.Description)))
		}
		if filter.RestrictIDs {
			ds = ds.Where(goqu.C("id").In(filter.IDs))
		}
		return byTitle(ds)
	})
}

func (r *postgresRepository) CreatedSince(ctx context.Context, since time.Time, page, pageSize int) ([]*model.Book, int64, error) {
	return r.books.GetPage(ctx, page, pageSize, func(ds *goqu.SelectDataset) *goqu.SelectDataset {
		return ds.Where(goqu.C("created_at").Gte(since)).Order(goqu.C("created_at").Desc())
	})
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	return r.books.Count(ctx, nil)
}

func (r *postgresRepository) CoverAddresses(ctx context.Context) ([]string, error) {
	type coverRow struct {
		ImageAddress string `db:"image_address"`
	}

	ds := r.books.From().
		Select(goqu.C("image_address")).
		Where(goqu.C("image_address").IsNotNull())

	rows, err := database.Select[coverRow](ctx, database.Executor(ctx, r.db), ds)
	if err != nil {
		return nil, fmt.Errorf("list cover addresses: %w", err)
	}

	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.ImageAddress
	}
	return out, nil
}

func byTitle(ds *goqu.SelectDataset) *goqu.SelectDataset {
	return ds.Order(goqu.C("title").Asc())
}
