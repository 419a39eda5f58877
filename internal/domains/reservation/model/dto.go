package model

import (
	"fmt"
	"time"

	"library-backend/internal/shared"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// CreateReservationRequest - POST /reservations. The requester comes from the token.
type CreateReservationRequest struct {
	BookID string `json:"book_id"`
}

func (r CreateReservationRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required, is.UUID),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	return nil
}

// ReviewRequest is the librarian's note sent to the reader on approve/reject.
type ReviewRequest struct {
	Message string `json:"message"`
}

func (r ReviewRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Message, validation.Length(0, 2000)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	return nil
}

type ReservationResponse struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	BookID      uuid.UUID  `json:"book_id"`
	LibrarianID *uuid.UUID `json:"librarian_id,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ReservationOutput is one row of the pending list.
type ReservationOutput struct {
	ID         uuid.UUID `json:"id"`
	BookTitle  string    `json:"book_title"`
	UserName   string    `json:"user_name"`
	Email      string    `json:"email"`
	IsApproved bool      `json:"is_approved"`
	CreatedOn  string    `json:"created_on"`
}

// ConfirmOutput is what a librarian sees before approving or rejecting.
type ConfirmOutput struct {
	BookTitle          string `json:"book_title"`
	UserName           string `json:"user_name"`
	Quantity           int    `json:"quantity"`
	IsAvailable        bool   `json:"is_available"`
	CreatedRequestDate string `json:"created_request_date"`
	Message            string `json:"message"`
}
