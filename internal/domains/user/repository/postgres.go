package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"library-backend/internal/domains/user/model"
	"library-backend/pkg/database"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const usersTable = "users"

type postgresRepository struct {
	users *database.Gateway[model.User]
}

func NewPostgresRepository(db database.DBTX) RepositoryInterface {
	return &postgresRepository{users: database.NewGateway[model.User](db, usersTable)}
}

func (r *postgresRepository) Create(ctx context.Context, u *model.User) error {
	err := r.users.Insert(ctx, u)
	if errors.Is(err, database.ErrUniqueViolation) {
		return model.ErrEmailAlreadyExists
	}
	return err
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.users.GetByID(ctx, id)
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := r.users.FindOne(ctx, func(ds *goqu.SelectDataset) *goqu.SelectDataset {
		return ds.Where(goqu.Func("LOWER", goqu.C("email")).Eq(strings.ToLower(email)))
	})
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.update(ctx, id, goqu.Record{"password_hash": passwordHash})
}

func (r *postgresRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	return r.update(ctx, id, goqu.Record{"role": role})
}

func (r *postgresRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	return r.users.Count(ctx, func(ds *goqu.SelectDataset) *goqu.SelectDataset {
		return ds.Where(goqu.C("role").Eq(role))
	})
}

func (r *postgresRepository) update(ctx context.Context, id uuid.UUID, record goqu.Record) error {
	err := r.users.Update(ctx, id, record)
	if errors.Is(err, database.ErrNoRowsAffected) {
		return model.ErrUserNotFound
	}
	return err
}
