package model

import (
	"strings"
	"time"

	"library-backend/internal/shared"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

// NewReader creates a user with the default role.
func NewReader(email, firstName, lastName, passwordHash string) *User {
	return &User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		PasswordHash: passwordHash,
		Role:         shared.RoleReader,
		CreatedAt:    time.Now().UTC(),
	}
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsStaff reports whether the user may review reservations.
func (u *User) IsStaff() bool {
	return u.Role == shared.RoleLibrarian || u.Role == shared.RoleAdmin
}

func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
