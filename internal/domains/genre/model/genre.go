package model

import (
	"time"

	"github.com/google/uuid"
)

type Genre struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// GenreBook is a row of the genres_books junction table.
type GenreBook struct {
	BookID   uuid.UUID `db:"book_id"`
	GenreID uuid.UUID `db:"genre_id"`
}

func NewGenre(name string) *Genre {
	return &Genre{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// ToResponse converts Genre to GenreResponse
func (a *Genre) ToResponse() GenreResponse {
	return GenreResponse{
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
	}
}

func ToResponses(genres []*Genre) []GenreResponse {
	out := make([]GenreResponse, len(genres))
	for i, a := range genres {
		out[i] = a.ToResponse()
	}
	return out
}
