package model

import (
	"fmt"
	"strings"
	"time"

	"library-backend/internal/infrastructure/storage"
	"library-backend/internal/shared"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const MaxTitleLength = 255

// BookInput is the create/update payload, bound from a multipart form.
type BookInput struct {
	Title         string        `form:"title"`
	Description   string        `form:"description"`
	TotalQuantity int           `form:"total_quantity"`
	Authors       []string      `form:"authors"`
	Genres        []string      `form:"genres"`
	DeleteCover   bool          `form:"delete_cover"`
	Cover         *storage.File `form:"-"`
}

// Normalize trims text fields and drops blank author/genre names.
func (in *BookInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Authors = compact(in.Authors)
	in.Genres = compact(in.Genres)
}

// Validate checks the title. Catalog and quantity rules are checked by the
// service after the title uniqueness check.
func (in BookInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, MaxTitleLength)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	return nil
}

// RequireCatalog demands at least one author and one genre.
func (in BookInput) RequireCatalog() error {
	if len(in.Authors) == 0 {
		return ErrAuthorsRequired
	}
	if len(in.Genres) == 0 {
		return ErrGenresRequired
	}
	return nil
}

// DescriptionPtr returns nil for an empty description.
func (in BookInput) DescriptionPtr() *string {
	if in.Description == "" {
		return nil
	}
	d := in.Description
	return &d
}

type BookResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	TotalQuantity   int       `json:"total_quantity"`
	CurrentQuantity int       `json:"current_quantity"`
	IsAvailable     bool      `json:"is_available"`
	ImageAddress    *string   `json:"image_address,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	Authors         []string  `json:"authors"`
	Genres          []string  `json:"genres"`
	AllAuthors      string    `json:"all_authors"`
	AllGenres       string    `json:"all_genres"`
}

// SearchRequest - GET /books/search. Every filter is optional.
type SearchRequest struct {
	Title       string   `form:"title"`
	Description string   `form:"description"`
	Authors     []string `form:"author"`
	Genres      []string `form:"genre"`
}

func (r *SearchRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Authors = compact(r.Authors)
	r.Genres = compact(r.Genres)
}

// SearchFilter is what the repository receives once names are resolved to ids.
type SearchFilter struct {
	Title       string
	Description string
	// RestrictIDs limits the result to IDs when true, an empty IDs then matches nothing.
	RestrictIDs bool
	IDs         []uuid.UUID
}

type QuantityCheckResponse struct {
	BookID      uuid.UUID `json:"book_id"`
	AllReturned bool      `json:"all_returned"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

// CleanupReport is logged by the orphan cover job.
type CleanupReport struct {
	Scanned int
	Deleted []string
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
