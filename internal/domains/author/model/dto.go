package model

import (
	"fmt"
	"strings"
	"time"

	"library-backend/internal/shared"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const MaxNameLength = 255

// AuthorRequest is the body of POST and PUT /authors.
type AuthorRequest struct {
	Name string `json:"name"`
}

// Normalize trims the name in place.
func (r *AuthorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r AuthorRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, MaxNameLength)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	return nil
}

type AuthorResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type BooksCountResponse struct {
	AuthorID   uuid.UUID `json:"author_id"`
	BooksCount int64     `json:"books_count"`
}
