package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Book struct {
	ID              uuid.UUID `db:"id"`
	Title           string    `db:"title"`
	Description     *string   `db:"description"`
	TotalQuantity   int       `db:"total_quantity"`
	CurrentQuantity int       `db:"current_quantity"`
	IsAvailable     bool      `db:"is_available"`
	ImageAddress    *string   `db:"image_address"`
	Version         int       `db:"version"`
	CreatedAt       time.Time `db:"created_at"`
}

// NewBook creates a book with every copy on the shelf.
func NewBook(title string, description *string, total int, imageAddress *string) *Book {
	return &Book{
		ID:              uuid.New(),
		Title:           title,
		Description:     description,
		TotalQuantity:   total,
		CurrentQuantity: total,
		IsAvailable:     total > 0,
		ImageAddress:    imageAddress,
		Version:         1,
		CreatedAt:       time.Now().UTC(),
	}
}

// Borrowed is the number of copies currently out on approved reservations.
func (b *Book) Borrowed() int {
	return b.TotalQuantity - b.CurrentQuantity
}

// AllReturned reports whether no copy is out.
func (b *Book) AllReturned() bool {
	return b.CurrentQuantity == b.TotalQuantity
}

func (b *Book) HasCover() bool {
	return b.ImageAddress != nil && *b.ImageAddress != ""
}

// SetTotal reconciles a new total against the copies already borrowed.
// The delta is applied to both counters so the borrowed count is preserved.
func (b *Book) SetTotal(newTotal int) error {
	if newTotal < 0 {
		return ErrNegativeQuantity
	}
	if newTotal < b.Borrowed() {
		return ErrQuantityBelowBorrowed
	}

	delta := newTotal - b.TotalQuantity
	b.TotalQuantity += delta
	b.CurrentQuantity += delta
	b.IsAvailable = b.CurrentQuantity > 0
	return nil
}

// CanBeReserved is the precondition for a reservation request or approval.
func (b *Book) CanBeReserved() bool {
	return b.IsAvailable && b.CurrentQuantity > 0
}

// CheckOut takes one copy off the shelf.
func (b *Book) CheckOut() error {
	if !b.CanBeReserved() {
		return ErrBookUnavailable
	}
	b.CurrentQuantity--
	b.IsAvailable = b.CurrentQuantity > 0
	return nil
}

// ToResponse converts a book plus its resolved author and genre names.
func (b *Book) ToResponse(authors, genres []string) BookResponse {
	if authors == nil {
		authors = []string{}
	}
	if genres == nil {
		genres = []string{}
	}

	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Description:     b.Description,
		TotalQuantity:   b.TotalQuantity,
		CurrentQuantity: b.CurrentQuantity,
		IsAvailable:     b.IsAvailable,
		ImageAddress:    b.ImageAddress,
		CreatedAt:       b.CreatedAt,
		Authors:         authors,
		Genres:          genres,
		AllAuthors:      strings.Join(authors, ", "),
		AllGenres:       strings.Join(genres, ", "),
	}
}
