package service

import (
	"context"
	"fmt"
	"html"
	"time"

	bookmodel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/reservation/model"
	"library-backend/internal/domains/reservation/repository"
	usermodel "library-backend/internal/domains/user/model"
	"library-backend/internal/infrastructure/email"
	"library-backend/internal/shared"
	"library-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	subjectRejected = "Rejected book reservation request"
	subjectApproved = "Approved book reservation request"
)

type ReservationService struct {
	repo  repository.RepositoryInterface
	tx    database.Transactor
	books BookStore
	users UserFinder
	mail  email.MailSender
	loc   *time.Location
}

// NewReservationService - Constructor with DI. loc is the zone dates are shown in.
func NewReservationService(
	repo repository.RepositoryInterface,
	tx database.Transactor,
	books BookStore,
	users UserFinder,
	mail email.MailSender,
	loc *time.Location,
) ServiceInterface {
	if loc == nil {
		loc = time.UTC
	}
	return &ReservationService{
		repo:  repo,
		tx:    tx,
		books: books,
		users: users,
		mail:  mail,
		loc:   loc,
	}
}

// =====================================================
// REQUEST
// =====================================================

func (s *ReservationService) AddReservation(ctx context.Context, userID, bookID uuid.UUID) (*model.ReservationResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrUnknownUser
	}

	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, model.ErrUnknownBook
	}
	if !book.IsAvailable {
		return nil, model.ErrBookUnavailable
	}
	if book.CurrentQuantity <= 0 {
		return nil, model.ErrBookOutOfStock
	}

	res := model.NewReservation(userID, bookID)
	if err := s.repo.Create(ctx, res); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	log.Info().
		Str("reservation_id", res.ID.String()).
		Str("user_id", userID.String()).
		Str("book_id", bookID.String()).
		Msg("book reservation requested")

	resp := res.ToResponse()
	return &resp, nil
}

// =====================================================
// READ
// =====================================================

func (s *ReservationService) GetPending(ctx context.Context, p shared.Pagination) (*shared.PagedResult[model.ReservationOutput], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rows, total, err := s.repo.ListPending(ctx, p.Page, p.PageSize)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, model.ErrNoPendingReservations
	}

	items := make([]model.ReservationOutput, 0, len(rows))
	for _, r := range rows {
		out, err := s.GenerateReservationOutput(ctx, r)
		if err != nil {
			return nil, err
		}
		items = append(items, *out)
	}

	return &shared.PagedResult[model.ReservationOutput]{
		Items:    items,
		Page:     p.Page,
		PageSize: p.PageSize,
		Total:    total,
	}, nil
}

// GetByID loads a pending reservation for review.
func (s *ReservationService) GetByID(ctx context.Context, id uuid.UUID) (*model.ConfirmOutput, error) {
	res, err := s.pending(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.GenerateConfirmOutput(ctx, res)
}

// =====================================================
// REVIEW
// =====================================================

// Reject closes the reservation without touching stock and notifies the reader.
func (s *ReservationService) Reject(ctx context.Context, id, librarianID uuid.UUID, message string) error {
	var requester *usermodel.User

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		res, err := s.pending(ctx, id)
		if err != nil {
			return err
		}

		if _, err := s.book(ctx, res.BookID); err != nil {
			return err
		}
		if err := s.requireLibrarian(ctx, librarianID); err != nil {
			return err
		}
		if requester, err = s.requester(ctx, res, librarianID); err != nil {
			return err
		}

		if err := res.Reject(librarianID); err != nil {
			return err
		}
		return s.repo.Update(ctx, res)
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("reservation_id", id.String()).
		Str("librarian_id", librarianID.String()).
		Msg("book reservation rejected")

	return s.notify(ctx, requester.Email, subjectRejected, message)
}

// Approve checks one copy out and closes the reservation. Book and
// reservation are written in the same transaction, both version checked.
func (s *ReservationService) Approve(ctx context.Context, id, librarianID uuid.UUID, message string) error {
	var requester *usermodel.User

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		res, err := s.pending(ctx, id)
		if err != nil {
			return err
		}

		book, err := s.book(ctx, res.BookID)
		if err != nil {
			return err
		}
		if !book.CanBeReserved() {
			return model.ErrBookUnavailable
		}

		if err := s.requireLibrarian(ctx, librarianID); err != nil {
			return err
		}
		if requester, err = s.requester(ctx, res, librarianID); err != nil {
			return err
		}

		if err := res.Approve(librarianID); err != nil {
			return err
		}
		if err := book.CheckOut(); err != nil {
			return err
		}

		if err := s.books.Update(ctx, book); err != nil {
			return err
		}
		return s.repo.Update(ctx, res)
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("reservation_id", id.String()).
		Str("librarian_id", librarianID.String()).
		Msg("book reservation approved")

	return s.notify(ctx, requester.Email, subjectApproved, message)
}

// =====================================================
// OUTPUT
// =====================================================

func (s *ReservationService) GenerateReservationOutput(ctx context.Context, r *model.BookReservation) (*model.ReservationOutput, error) {
	book, user, err := s.join(ctx, r)
	if err != nil {
		return nil, err
	}

	return &model.ReservationOutput{
		ID:         r.ID,
		BookTitle:  book.Title,
		UserName:   user.FullName(),
		Email:      user.Email,
		IsApproved: r.IsApproved,
		CreatedOn:  s.formatDate(r.CreatedAt),
	}, nil
}

func (s *ReservationService) GenerateConfirmOutput(ctx context.Context, r *model.BookReservation) (*model.ConfirmOutput, error) {
	book, user, err := s.join(ctx, r)
	if err != nil {
		return nil, err
	}

	return &model.ConfirmOutput{
		BookTitle:          book.Title,
		UserName:           user.FullName(),
		Quantity:           book.CurrentQuantity,
		IsAvailable:        book.IsAvailable,
		CreatedRequestDate: s.formatDate(r.CreatedAt),
		Message:            "",
	}, nil
}

// =====================================================
// HELPERS
// =====================================================

// pending loads a reservation that can still be reviewed.
func (s *ReservationService) pending(ctx context.Context, id uuid.UUID) (*model.BookReservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, model.ErrReservationNotFound
	}
	if !res.IsPending() {
		return nil, model.ErrAlreadyReviewed
	}
	return res, nil
}

func (s *ReservationService) book(ctx context.Context, id uuid.UUID) (*bookmodel.Book, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, model.ErrBookNotFound
	}
	return book, nil
}

func (s *ReservationService) requireLibrarian(ctx context.Context, id uuid.UUID) error {
	librarian, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if librarian == nil {
		return model.ErrLibrarianNotFound
	}
	return nil
}

// requester loads the reader behind the reservation and refuses self review.
func (s *ReservationService) requester(ctx context.Context, r *model.BookReservation, librarianID uuid.UUID) (*usermodel.User, error) {
	user, err := s.users.FindByID(ctx, r.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrRequesterNotFound
	}
	if user.ID == librarianID {
		return nil, model.ErrSelfReview
	}
	return user, nil
}

func (s *ReservationService) join(ctx context.Context, r *model.BookReservation) (*bookmodel.Book, *usermodel.User, error) {
	book, err := s.book(ctx, r.BookID)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.FindByID(ctx, r.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, model.ErrRequesterNotFound
	}
	return book, user, nil
}

func (s *ReservationService) formatDate(t time.Time) string {
	return t.UTC().In(s.loc).Format(model.DateLayout)
}

// notify runs after commit. A delivery failure is returned to the caller
// but does not undo the review.
func (s *ReservationService) notify(ctx context.Context, to, subject, message string) error {
	body := fmt.Sprintf("<p>%s</p>", html.EscapeString(message))
	if err := s.mail.SendEmail(ctx, to, subject, message, body); err != nil {
		log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("failed to send reservation email")
		return fmt.Errorf("send %q email: %w", subject, err)
	}
	return nil
}
