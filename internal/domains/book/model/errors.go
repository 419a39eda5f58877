package model

import (
	"fmt"

	"library-backend/internal/shared"
)

var (
	ErrBookNotFound = fmt.Errorf("%w: book not found", shared.ErrNotFound)
	ErrNoBooks      = fmt.Errorf("%w: there are no books", shared.ErrNotFound)

	ErrTitleExists     = fmt.Errorf("%w: book with this title already exists", shared.ErrConflict)
	ErrVersionConflict = fmt.Errorf("%w: book was modified by another request, reload and retry", shared.ErrConflict)

	ErrAuthorsRequired       = fmt.Errorf("%w: at least one author is required", shared.ErrValidation)
	ErrGenresRequired        = fmt.Errorf("%w: at least one genre is required", shared.ErrValidation)
	ErrInvalidTotalQuantity  = fmt.Errorf("%w: total quantity must be greater than zero", shared.ErrValidation)
	ErrNegativeQuantity      = fmt.Errorf("%w: total quantity cannot be negative", shared.ErrValidation)
	ErrQuantityBelowBorrowed = fmt.Errorf("%w: total quantity cannot be lower than the borrowed copies", shared.ErrValidation)
	ErrBooksOnLoan           = fmt.Errorf("%w: book has copies on loan and cannot be deleted", shared.ErrValidation)
	ErrBookUnavailable       = fmt.Errorf("%w: book is not available", shared.ErrValidation)
)
