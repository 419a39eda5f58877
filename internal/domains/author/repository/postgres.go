package repository

import (
	"context"
	"errors"
	"fmt"

	"library-backend/internal/domains/author/model"
	"library-backend/pkg/database"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	authorsTable      = "authors"
	authorsBooksTable = "authors_books"
)

type postgresRepository struct {
	authors *database.Gateway[model.Author]
}

func NewPostgresRepository(db database.DBTX) RepositoryInterface {
	return &postgresRepository{authors: database.NewGateway[model.Author](db, authorsTable)}
}

func (r *postgresRepository) Create(ctx context.Context, author *model.Author) error {
	err := r.authors.Insert(ctx, author)
	if errors.Is(err, database.ErrUniqueViolation) {
		return model.ErrAuthorNameExists
	}
	return err
}

func (r *postgresRepository) Rename(ctx context.Context, id uuid.UUID, name string) error {
	err := r.authors.Update(ctx, id, goqu.Record{"name": name})
	switch {
	case errors.Is(err, database.ErrUniqueViolation):
		return model.ErrAuthorNameExists
	case errors.Is(err, database.ErrNoRowsAffected):
		return model.ErrAuthorNotFound
	}
	return err
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.authors.Delete(ctx, id)
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	return r.authors.GetByID(ctx, id)
}

func (r *postgresRepository) FindByName(ctx context.Context, name string) (*model.Author, error) {
	return r.authors.FindOne(ctx, func(ds *goqu.SelectDataset) *goqu.SelectDataset {
		return ds.Where(goqu.C("name").Eq(name))
	})
}

func (r *postgresRepository) FindByNames(ctx context.Context, names []string) ([]*model.Author, error) {
	if len(names) == 0 {
		return []*model.Author{}, nil
	}
	return r.authors.Find(ctx, func(ds *goqu.SelectDataset) *goqu.SelectDataset {
		return ds.Where(goqu.C("name").In(names))
	})
}

func (r *postgresRepository) NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	n, err := r.authors.Count(ctx, func(ds *goqu.SelectDataset) *goqu.SelectDataset {
		return ds.Where(goqu.C("name").Eq(name), goqu.C("id").Neq(excludeID))
	})
	if err != nil {
		return false, fmt.Errorf("check author name: %w", err)
	}
	return n > 0, nil
}

func (r *postgresRepository) List(ctx context.Context, page, pageSize int) ([]*model.Author, int64, error) {
	return r.authors.GetPage(ctx, page, pageSize, byName)
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]*model.Author, error) {
	return r.authors.Find(ctx, byName)
}

func (r *postgresRepository) Search(ctx context.Context, name string, page, pageSize int) ([]*model.Author, int64, error) {
	return r.authors.GetPage(ctx, page, pageSize, func(ds *goqu.SelectDataset) *goqu.SelectDataset {
		return byName(ds.Where(goqu.C("name").ILike(database.ContainsPattern(name))))
	})
}

func byName(ds *goqu.SelectDataset) *goqu.SelectDataset {
	return ds.Order(goqu.C("name").Asc())
}

// ============================================================
// authors_books
// ============================================================

type authorsBooksRepository struct {
	db    database.DBTX
	links *database.Gateway[model.AuthorBook]
}

func NewAuthorsBooksRepository(db database.DBTX) AuthorsBooksRepository {
	return &authorsBooksRepository{
		db:    db,
		links: database.NewGateway[model.AuthorBook](db, authorsBooksTable),
	}
}

func (r *authorsBooksRepository) AddLinks(ctx context.Context, bookID uuid.UUID, authorIDs []uuid.UUID) error {
	rows := make([]goqu.Record, 0, len(authorIDs))
	for _, id := range authorIDs {
		rows = append(rows, goqu.Record{"book_id": bookID, "author_id": id})
	}
	return r.links.InsertMany(ctx, rows)
}

func (r *authorsBooksRepository) DeleteByBook(ctx context.Context, bookID uuid.UUID) error {
	return r.links.DeleteWhere(ctx, goqu.C("book_id").Eq(bookID))
}

func (r *authorsBooksRepository) CountBooks(ctx context.Context, authorID uuid.UUID) (int64, error) {
	return r.links.Count(ctx, func(ds *goqu.SelectDataset) *goqu.SelectDataset {
		return ds.Where(goqu.C("author_id").Eq(authorID))
	})
}

func (r *authorsBooksRepository) AuthorNamesByBook(ctx context.Context, bookID uuid.UUID) ([]string, error) {
	type nameRow struct {
		Name string `db:"name"`
	}

	ds := database.Dialect.From(goqu.T(authorsBooksTable).As("ab")).Prepared(true).
		Join(goqu.T(authorsTable).As("a"), goqu.On(goqu.I("a.id").Eq(goqu.I("ab.author_id")))).
		Select(goqu.I("a.name").As("name")).
		Where(goqu.I("ab.book_id").Eq(bookID)).
		Order(goqu.I("a.name").Asc())

	rows, err := database.Select[nameRow](ctx, database.Executor(ctx, r.db), ds)
	if err != nil {
		return nil, fmt.Errorf("author names for book %s: %w", bookID, err)
	}

	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = row.Name
	}
	return names, nil
}

func (r *authorsBooksRepository) BookIDsByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(authorIDs) == 0 {
		return []uuid.UUID{}, nil
	}

	links, err := r.links.Find(ctx, func(ds *goqu.SelectDataset) *goqu.SelectDataset {
		return ds.Where(goqu.C("author_id").In(authorIDs))
	})
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(links))
	ids := make([]uuid.UUID, 0, len(links))
	for _, l := range links {
		if _, ok := seen[l.BookID]; ok {
			continue
		}
		seen[l.BookID] = struct{}{}
		ids = append(ids, l.BookID)
	}
	return ids, nil
}
