package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrUniqueViolation is returned when an insert or update hits a unique constraint (SQLSTATE 23505).
	ErrUniqueViolation = errors.New("unique constraint violated")
	// ErrNoRowsAffected means the target row does not exist anymore.
	ErrNoRowsAffected = errors.New("no rows affected")
	// ErrVersionConflict means the row exists but was changed by someone else since it was read.
	ErrVersionConflict = errors.New("version conflict")
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Dialect is the goqu postgres dialect shared by every gateway and custom query.
var Dialect = goqu.Dialect("postgres")

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns user input into a LIKE/ILIKE pattern matching it as a
// literal substring. Postgres escapes with a backslash by default.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// Gateway is a generic table gateway. T must be a struct whose `db` tags
// match the table's columns; its id column is "id".
type Gateway[T any] struct {
	db    DBTX
	table string
}

func NewGateway[T any](db DBTX, table string) *Gateway[T] {
	return &Gateway[T]{db: db, table: table}
}

// Table exposes the table name for hand-built datasets.
func (g *Gateway[T]) Table() string {
	return g.table
}

// From starts a select dataset on the gateway's table.
func (g *Gateway[T]) From() *goqu.SelectDataset {
	return Dialect.From(g.table).Prepared(true)
}

// Insert writes entity using its `db` tags.
func (g *Gateway[T]) Insert(ctx context.Context, entity *T) error {
	query, args, err := Dialect.Insert(g.table).Prepared(true).Rows(entity).ToSQL()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", g.table, err)
	}

	if _, err := Executor(ctx, g.db).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", g.table, translate(err))
	}
	return nil
}

// InsertMany writes all rows in one statement. An empty slice is a no-op.
func (g *Gateway[T]) InsertMany(ctx context.Context, rows []goqu.Record) error {
	if len(rows) == 0 {
		return nil
	}

	vals := make([]any, len(rows))
	for i := range rows {
		vals[i] = rows[i]
	}

	query, args, err := Dialect.Insert(g.table).Prepared(true).Rows(vals...).ToSQL()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", g.table, err)
	}

	if _, err := Executor(ctx, g.db).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", g.table, translate(err))
	}
	return nil
}

// Update sets record on the row with the given id.
func (g *Gateway[T]) Update(ctx context.Context, id any, record goqu.Record) error {
	query, args, err := Dialect.Update(g.table).Prepared(true).
		Set(record).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update %s: %w", g.table, err)
	}

	tag, err := Executor(ctx, g.db).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", g.table, translate(err))
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

// UpdateVersioned applies record only if the row still carries expectedVersion,
// and bumps the version column.
func (g *Gateway[T]) UpdateVersioned(ctx context.Context, id any, expectedVersion int, record goqu.Record) error {
	set := goqu.Record{"version": goqu.L("version + 1")}
	for k, v := range record {
		set[k] = v
	}

	query, args, err := Dialect.Update(g.table).Prepared(true).
		Set(set).
		Where(goqu.C("id").Eq(id), goqu.C("version").Eq(expectedVersion)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update %s: %w", g.table, err)
	}

	tag, err := Executor(ctx, g.db).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", g.table, translate(err))
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	return nil
}

// Delete removes the row with the given id.
func (g *Gateway[T]) Delete(ctx context.Context, id any) error {
	return g.DeleteWhere(ctx, goqu.C("id").Eq(id))
}

// DeleteWhere removes every row matching the expressions.
func (g *Gateway[T]) DeleteWhere(ctx context.Context, where ...exp.Expression) error {
	query, args, err := Dialect.Delete(g.table).Prepared(true).Where(where...).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", g.table, err)
	}

	if _, err := Executor(ctx, g.db).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %s: %w", g.table, translate(err))
	}
	return nil
}

// GetByID returns nil, nil when the row does not exist.
func (g *Gateway[T]) GetByID(ctx context.Context, id any) (*T, error) {
	return g.FindOne(ctx, func(ds *goqu.SelectDataset) *goqu.SelectDataset {
		return ds.Where(goqu.C("id").Eq(id))
	})
}

// FindOne returns the first row produced by the filtered dataset, or nil.
func (g *Gateway[T]) FindOne(ctx context.Context, filter func(*goqu.SelectDataset) *goqu.SelectDataset) (*T, error) {
	items, err := g.Find(ctx, func(ds *goqu.SelectDataset) *goqu.SelectDataset {
		return filter(ds).Limit(1)
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}

// Find runs the filtered dataset and scans every row into T.
func (g *Gateway[T]) Find(ctx context.Context, filter func(*goqu.SelectDataset) *goqu.SelectDataset) ([]*T, error) {
	ds := g.From().Select(goqu.Star())
	if filter != nil {
		ds = filter(ds)
	}
	return Select[T](ctx, Executor(ctx, g.db), ds)
}

// GetPage returns one page plus the total number of rows matching filter.
// page is 1-based.
func (g *Gateway[T]) GetPage(ctx context.Context, page, pageSize int, filter func(*goqu.SelectDataset) *goqu.SelectDataset) ([]*T, int64, error) {
	total, err := g.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []*T{}, 0, nil
	}

	items, err := g.Find(ctx, func(ds *goqu.SelectDataset) *goqu.SelectDataset {
		if filter != nil {
			ds = filter(ds)
		}
		return ds.Limit(uint(pageSize)).Offset(uint((page - 1) * pageSize))
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Count counts the rows matching filter. Ordering added by filter is dropped.
func (g *Gateway[T]) Count(ctx context.Context, filter func(*goqu.SelectDataset) *goqu.SelectDataset) (int64, error) {
	ds := g.From()
	if filter != nil {
		ds = filter(ds)
	}
	query, args, err := ds.ClearOrder().ClearLimit().ClearOffset().Select(goqu.COUNT(goqu.Star())).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count %s: %w", g.table, err)
	}

	var total int64
	if err := Executor(ctx, g.db).QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count %s: %w", g.table, err)
	}
	return total, nil
}

// Select runs any dataset and scans the rows into T by column name.
func Select[T any](ctx context.Context, db DBTX, ds *goqu.SelectDataset) ([]*T, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[T])
	if err != nil {
		return nil, fmt.Errorf("scan rows: %w", err)
	}
	return items, nil
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrUniqueViolation, pgErr.ConstraintName)
	}
	return err
}
