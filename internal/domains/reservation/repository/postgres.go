package repository

import (
	"context"
	"errors"

	"library-backend/internal/domains/reservation/model"
	"library-backend/pkg/database"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const reservationsTable = "book_reservations"

type postgresRepository struct {
	reservations *database.Gateway[model.BookReservation]
}

func NewPostgresRepository(db database.DBTX) RepositoryInterface {
	return &postgresRepository{
		reservations: database.NewGateway[model.BookReservation](db, reservationsTable),
	}
}

func (r *postgresRepository) Create(ctx context.Context, res *model.BookReservation) error {
	return r.reservations.Insert(ctx, res)
}

func (r *postgresRepository) Update(ctx context.Context, res *model.BookReservation) error {
	err := r.reservations.UpdateVersioned(ctx, res.ID, res.Version, goqu.Record{
		"librarian_id": res.LibrarianID,
		"is_approved":  res.IsApproved,
		"is_reviewed":  res.IsReviewed,
	})
	switch {
	case errors.Is(err, database.ErrVersionConflict):
		return model.ErrVersionConflict
	case err != nil:
		return err
	}

	res.Version++
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.BookReservation, error) {
	return r.reservations.GetByID(ctx, id)
}

func (r *postgresRepository) ListPending(ctx context.Context, page, pageSize int) ([]*model.BookReservation, int64, error) {
	return r.reservations.GetPage(ctx, page, pageSize, func(ds *goqu.SelectDataset) *goqu.SelectDataset {
		return ds.
			Where(goqu.C("is_reviewed").IsFalse()).
			Order(goqu.C("created_at").Asc())
	})
}
