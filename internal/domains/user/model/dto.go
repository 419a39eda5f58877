package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"library-backend/internal/shared"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

const MinPasswordLength = 10

// passwordRules: at least 10 characters with an upper, a lower, a digit and a symbol.
func passwordRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.Length(MinPasswordLength, 128),
		validation.Match(regexp.MustCompile(`[A-Z]`)).Error("must contain an uppercase letter"),
		validation.Match(regexp.MustCompile(`[a-z]`)).Error("must contain a lowercase letter"),
		validation.Match(regexp.MustCompile(`[0-9]`)).Error("must contain a digit"),
		validation.Match(regexp.MustCompile(`[^a-zA-Z0-9]`)).Error("must contain a non-alphanumeric character"),
	}
}

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", shared.ErrValidation, err)
}

// ========================================
// AUTH DTOs
// ========================================

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

func (r RegisterRequest) Validate() error {
	return invalid(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email, validation.Length(3, 255)),
		validation.Field(&r.Password, passwordRules()...),
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 100)),
	))
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return invalid(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	))
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserDTO   `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r ForgotPasswordRequest) Validate() error {
	return invalid(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	))
}

// ResetPasswordRequest carries the email and token from the emailed link.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (r ResetPasswordRequest) Validate() error {
	return invalid(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Token, validation.Required),
		validation.Field(&r.NewPassword, passwordRules()...),
	))
}

// ========================================
// PROFILE / ADMIN DTOs
// ========================================

type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

func (r UpdateRoleRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Role,
			validation.Required,
			validation.In(shared.RoleReader, shared.RoleLibrarian, shared.RoleAdmin),
		),
	)
	if err != nil {
		return ErrInvalidRole
	}
	return nil
}

type CountResponse struct {
	Count int64 `json:"count"`
}
