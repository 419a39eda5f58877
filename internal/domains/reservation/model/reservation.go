package model

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout renders reservation dates as dd/MM/yyyy HH:mm:ss.
const DateLayout = "02/01/2006 15:04:05"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// BookReservation moves Pending -> Approved | Rejected exactly once.
type BookReservation struct {
	ID          uuid.UUID  `db:"id"`
	UserID      uuid.UUID  `db:"user_id"`
	BookID      uuid.UUID  `db:"book_id"`
	LibrarianID *uuid.UUID `db:"librarian_id"`
	IsApproved  bool       `db:"is_approved"`
	IsReviewed  bool       `db:"is_reviewed"`
	Version     int        `db:"version"`
	CreatedAt   time.Time  `db:"created_at"`
}

func NewReservation(userID, bookID uuid.UUID) *BookReservation {
	return &BookReservation{
		ID:        uuid.New(),
		UserID:    userID,
		BookID:    bookID,
		Version:   1,
		CreatedAt: time.Now().UTC(),
	}
}

func (r *BookReservation) IsPending() bool {
	return !r.IsReviewed
}

func (r *BookReservation) Status() string {
	switch {
	case !r.IsReviewed:
		return StatusPending
	case r.IsApproved:
		return StatusApproved
	default:
		return StatusRejected
	}
}

func (r *BookReservation) Approve(librarianID uuid.UUID) error {
	return r.review(librarianID, true)
}

func (r *BookReservation) Reject(librarianID uuid.UUID) error {
	return r.review(librarianID, false)
}

func (r *BookReservation) review(librarianID uuid.UUID, approved bool) error {
	if r.IsReviewed {
		return ErrAlreadyReviewed
	}
	r.IsReviewed = true
	r.IsApproved = approved
	r.LibrarianID = &librarianID
	return nil
}

func (r *BookReservation) ToResponse() ReservationResponse {
	return ReservationResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		BookID:      r.BookID,
		LibrarianID: r.LibrarianID,
		Status:      r.Status(),
		CreatedAt:   r.CreatedAt,
	}
}
