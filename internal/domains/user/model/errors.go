package model

import (
	"fmt"

	"library-backend/internal/shared"
)

var (
	ErrUserNotFound       = fmt.Errorf("%w: user not found", shared.ErrNotFound)
	ErrEmailAlreadyExists = fmt.Errorf("%w: email already exists", shared.ErrConflict)

	// Login never tells whether the email or the password was wrong.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", shared.ErrUnauthorized)

	ErrInvalidResetToken = fmt.Errorf("%w: invalid or expired reset token", shared.ErrValidation)
	ErrInvalidRole       = fmt.Errorf("%w: role must be reader, librarian or admin", shared.ErrValidation)
	ErrOwnRole           = fmt.Errorf("%w: administrators cannot change their own role", shared.ErrValidation)
)
