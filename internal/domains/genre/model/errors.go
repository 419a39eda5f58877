package model

import (
	"fmt"

	"library-backend/internal/shared"
)

var (
	ErrGenreNotFound   = fmt.Errorf("%w: genre not found", shared.ErrNotFound)
	ErrNoGenres        = fmt.Errorf("%w: there are no genres", shared.ErrNotFound)
	ErrGenreNameExists = fmt.Errorf("%w: genre with this name already exists", shared.ErrConflict)
	ErrGenreHasBooks   = fmt.Errorf("%w: cannot delete genre with linked books", shared.ErrValidation)
)

// UnknownGenreError names the genre that could not be resolved.
func UnknownGenreError(name string) error {
	return fmt.Errorf("%w: %q", ErrGenreNotFound, name)
}
