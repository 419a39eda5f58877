package repository

import (
	"context"
	"errors"
	"fmt"

	"library-backend/internal/domains/genre/model"
	"library-backend/pkg/database"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	genresTable      = "genres"
	genresBooksTable = "genres_books"
)

type postgresRepository struct {
	genres *database.Gateway[model.Genre]
}

func NewPostgresRepository(db database.DBTX) RepositoryInterface {
	return &postgresRepository{genres: database.NewGateway[model.Genre](db, genresTable)}
}

func (r *postgresRepository) Create(ctx context.Context, genre *model.Genre) error {
	err := r.genres.Insert(ctx, genre)
	if errors.Is(err, database.ErrUniqueViolation) {
		return model.ErrGenreNameExists
	}
	return err
}

func (r *postgresRepository) Rename(ctx context.Context, id uuid.UUID, name string) error {
	err := r.genres.Update(ctx, id, goqu.Record{"name": name})
	switch {
	case errors.Is(err, database.ErrUniqueViolation):
		return model.ErrGenreNameExists
	case errors.Is(err, database.ErrNoRowsAffected):
		return model.ErrGenreNotFound
	}
	return err
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.genres.Delete(ctx, id)
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	return r.genres.GetByID(ctx, id)
}

func (r *postgresRepository) FindByName(ctx context.Context, name string) (*model.Genre, error) {
	return r.genres.FindOne(ctx, func(ds *goqu.SelectDataset) *goqu.SelectDataset {
		return ds.Where(goqu.C("name").Eq(name))
	})
}

func (r *postgresRepository) FindByNames(ctx context.Context, names []string) ([]*model.Genre, error) {
	if len(names) == 0 {
		return []*model.Genre{}, nil
	}
	return r.genres.Find(ctx, func(ds *goqu.SelectDataset) *goqu.SelectDataset {
		return ds.Where(goqu.C("name").In(names))
	})
}

func (r *postgresRepository) NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	n, err := r.genres.Count(ctx, func(ds *goqu.SelectDataset) *goqu.SelectDataset {
		return ds.Where(goqu.C("name").Eq(name), goqu.C("id").Neq(excludeID))
	})
	if err != nil {
		return false, fmt.Errorf("check genre name: %w", err)
	}
	return n > 0, nil
}

func (r *postgresRepository) List(ctx context.Context, page, pageSize int) ([]*model.Genre, int64, error) {
	return r.genres.GetPage(ctx, page, pageSize, byName)
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]*model.Genre, error) {
	return r.genres.Find(ctx, byName)
}

func (r *postgresRepository) Search(ctx context.Context, name string, page, pageSize int) ([]*model.Genre, int64, error) {
	return r.genres.GetPage(ctx, page, pageSize, func(ds *goqu.SelectDataset) *goqu.SelectDataset {
		return byName(ds.Where(goqu.C("name").ILike(database.ContainsPattern(name))))
	})
}

func (r *postgresRepository) CountAll(ctx context.Context) (int64, error) {
	return r.genres.Count(ctx, nil)
}

func byName(ds *goqu.SelectDataset) *goqu.SelectDataset {
	return ds.Order(goqu.C("name").Asc())
}

// ============================================================
// genres_books
// ============================================================

type genresBooksRepository struct {
	db    database.DBTX
	links *database.Gateway[model.GenreBook]
}

func NewGenresBooksRepository(db database.DBTX) GenresBooksRepository {
	return &genresBooksRepository{
		db:    db,
		links: database.NewGateway[model.GenreBook](db, genresBooksTable),
	}
}

func (r *genresBooksRepository) AddLinks(ctx context.Context, bookID uuid.UUID, genreIDs []uuid.UUID) error {
	rows := make([]goqu.Record, 0, len(genreIDs))
	for _, id := range genreIDs {
		rows = append(rows, goqu.Record{"book_id": bookID, "genre_id": id})
	}
	return r.links.InsertMany(ctx, rows)
}

func (r *genresBooksRepository) DeleteByBook(ctx context.Context, bookID uuid.UUID) error {
	return r.links.DeleteWhere(ctx, goqu.C("book_id").Eq(bookID))
}

func (r *genresBooksRepository) CountBooks(ctx context.Context, genreID uuid.UUID) (int64, error) {
	return r.links.Count(ctx, func(ds *goqu.SelectDataset) *goqu.SelectDataset {
		return ds.Where(goqu.C("genre_id").Eq(genreID))
	})
}

func (r *genresBooksRepository) GenreNamesByBook(ctx context.Context, bookID uuid.UUID) ([]string, error) {
	type nameRow struct {
		Name string `db:"name"`
	}

	ds := database.Dialect.From(goqu.T(genresBooksTable).As("gb")).Prepared(true).
		Join(goqu.T(genresTable).As("g"), goqu.On(goqu.I("g.id").Eq(goqu.I("gb.genre_id")))).
		Select(goqu.I("g.name").As("name")).
		Where(goqu.I("gb.book_id").Eq(bookID)).
		Order(goqu.I("g.name").Asc())

	rows, err := database.Select[nameRow](ctx, database.Executor(ctx, r.db), ds)
	if err != nil {
		return nil, fmt.Errorf("genre names for book %s: %w", bookID, err)
	}

	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = row.Name
	}
	return names, nil
}

func (r *genresBooksRepository) BookIDsByGenres(ctx context.Context, genreIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(genreIDs) == 0 {
		return []uuid.UUID{}, nil
	}

	links, err := r.links.Find(ctx, func(ds *goqu.SelectDataset) *goqu.SelectDataset {
		return ds.Where(goqu.C("genre_id").In(genreIDs))
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
