package service

import (
	"context"
	"time"

	"library-backend/internal/domains/user/model"

	"github.com/google/uuid"
)

// ServiceInterface - accounts, authentication and roles
type ServiceInterface interface {
	// Authentication
	Register(ctx context.Context, req model.RegisterRequest) (*model.UserDTO, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error

	// Profile
	GetByID(ctx context.Context, id uuid.UUID) (*model.UserDTO, error)
	// FindByID returns nil, nil when the user does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// Admin
	AssignRole(ctx context.Context, adminID, userID uuid.UUID, req model.UpdateRoleRequest) error
	GetReadersCount(ctx context.Context) (int64, error)
}

// TokenIssuer is satisfied by *jwt.Manager.
type TokenIssuer interface {
	GenerateAccessToken(userID, email, role string) (string, time.Time, error)
}
