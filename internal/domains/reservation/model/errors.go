package model

import (
	"fmt"

	"library-backend/internal/shared"
)

var (
	ErrReservationNotFound   = fmt.Errorf("%w: book reservation not found", shared.ErrNotFound)
	ErrNoPendingReservations = fmt.Errorf("%w: there are no pending book reservations", shared.ErrNotFound)
	ErrBookNotFound          = fmt.Errorf("%w: book not found", shared.ErrNotFound)
	ErrLibrarianNotFound     = fmt.Errorf("%w: librarian not found", shared.ErrNotFound)
	ErrRequesterNotFound     = fmt.Errorf("%w: requesting user not found", shared.ErrNotFound)

	// AddReservation reports missing references as bad input.
	ErrUnknownUser     = fmt.Errorf("%w: user does not exist", shared.ErrValidation)
	ErrUnknownBook     = fmt.Errorf("%w: book does not exist", shared.ErrValidation)
	ErrBookUnavailable = fmt.Errorf("%w: book is not available", shared.ErrValidation)
	ErrBookOutOfStock  = fmt.Errorf("%w: book has no copies left", shared.ErrValidation)

	ErrAlreadyReviewed = fmt.Errorf("%w: book reservation was already reviewed", shared.ErrTerminalState)
	ErrSelfReview      = fmt.Errorf("%w: librarians cannot review their own reservation", shared.ErrSelfReview)
	ErrVersionConflict = fmt.Errorf("%w: book reservation was modified by another request", shared.ErrConflict)
)
