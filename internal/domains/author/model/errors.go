package model

import (
	"fmt"

	"library-backend/internal/shared"
)

var (
	ErrAuthorNotFound   = fmt.Errorf("%w: author not found", shared.ErrNotFound)
	ErrNoAuthors        = fmt.Errorf("%w: there are no authors", shared.ErrNotFound)
	ErrAuthorNameExists = fmt.Errorf("%w: author with this name already exists", shared.ErrConflict)
	ErrAuthorHasBooks   = fmt.Errorf("%w: cannot delete author with linked books", shared.ErrValidation)
)

// UnknownAuthorError names the author that could not be resolved.
func UnknownAuthorError(name string) error {
	return fmt.Errorf("%w: %q", ErrAuthorNotFound, name)
}
