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

// GenreRequest is the body of POST and PUT /genres.
type GenreRequest struct {
	Name string `json:"name"`
}

// Normalize trims the name in place.
func (r *GenreRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r GenreRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, MaxNameLength)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	return nil
}

type GenreResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type BooksCountResponse struct {
	GenreID   uuid.UUID `json:"genre_id"`
	BooksCount int64     `json:"books_count"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}
