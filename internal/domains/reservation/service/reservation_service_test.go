package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
	_ "time/tzdata"

	bookmodel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/reservation/model"
	usermodel "library-backend/internal/domains/user/model"
	"library-backend/internal/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeReservationRepo struct {
	rows map[uuid.UUID]*model.BookReservation
}

func (r *fakeReservationRepo) Create(_ context.Context, res *model.BookReservation) error {
	cp := *res
	r.rows[res.ID] = &cp
	return nil
}

func (r *fakeReservationRepo) Update(_ context.Context, res *model.BookReservation) error {
	stored, ok := r.rows[res.ID]
	if !ok || stored.Version != res.Version {
		return model.ErrVersionConflict
	}
	res.Version++
	cp := *res
	r.rows[res.ID] = &cp
	return nil
}

func (r *fakeReservationRepo) GetByID(_ context.Context, id uuid.UUID) (*model.BookReservation, error) {
	res, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *res
	return &cp, nil
}

func (r *fakeReservationRepo) ListPending(_ context.Context, _, _ int) ([]*model.BookReservation, int64, error) {
	var out []*model.BookReservation
	for _, res := range r.rows {
		if res.IsPending() {
			cp := *res
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

type fakeBookStore struct {
	books map[uuid.UUID]*bookmodel.Book
}

func (s *fakeBookStore) GetByID(_ context.Context, id uuid.UUID) (*bookmodel.Book, error) {
	b, ok := s.books[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (s *fakeBookStore) Update(_ context.Context, b *bookmodel.Book) error {
	stored, ok := s.books[b.ID]
	if !ok || stored.Version != b.Version {
		return bookmodel.ErrVersionConflict
	}
	b.Version++
	cp := *b
	s.books[b.ID] = &cp
	return nil
}

type fakeUsers map[uuid.UUID]*usermodel.User

func (u fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*usermodel.User, error) {
	return u[id], nil
}

type mockMailSender struct {
	mock.Mock
}

func (m *mockMailSender) SendEmail(ctx context.Context, to, subject, plainBody, htmlBody string) error {
	args := m.Called(ctx, to, subject, plainBody, htmlBody)
	return args.Error(0)
}

type passThroughTx struct{}

func (passThroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type reservationFixture struct {
	svc       ServiceInterface
	repo      *fakeReservationRepo
	books     *fakeBookStore
	users     fakeUsers
	mail      *mockMailSender
	reader    *usermodel.User
	librarian *usermodel.User
}

func newReservationFixture(t *testing.T) *reservationFixture {
	t.Helper()

	sofia, err := time.LoadLocation("Europe/Sofia")
	require.NoError(t, err)

	reader := usermodel.NewReader("reader@example.com", "Maria", "Ivanova", "hash")
	librarian := usermodel.NewReader("librarian@example.com", "Petar", "Petrov", "hash")
	librarian.Role = shared.RoleLibrarian

	f := &reservationFixture{
		repo:      &fakeReservationRepo{rows: map[uuid.UUID]*model.BookReservation{}},
		books:     &fakeBookStore{books: map[uuid.UUID]*bookmodel.Book{}},
		users:     fakeUsers{reader.ID: reader, librarian.ID: librarian},
		mail:      new(mockMailSender),
		reader:    reader,
		librarian: librarian,
	}
	f.svc = NewReservationService(f.repo, passThroughTx{}, f.books, f.users, f.mail, sofia)
	return f
}

func (f *reservationFixture) addBook(total int) *bookmodel.Book {
	b := bookmodel.NewBook("Under the Yoke", nil, total, nil)
	f.books.books[b.ID] = b
	return b
}

func (f *reservationFixture) reserve(t *testing.T, bookID uuid.UUID) uuid.UUID {
	t.Helper()
	resp, err := f.svc.AddReservation(context.Background(), f.reader.ID, bookID)
	require.NoError(t, err)
	return resp.ID
}

func TestReservationService_AddReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending reservation", func(t *testing.T) {
		f := newReservationFixture(t)
		book := f.addBook(1)

		resp, err := f.svc.AddReservation(ctx, f.reader.ID, book.ID)
		require.NoError(t, err)

		assert.Equal(t, model.StatusPending, resp.Status)
		assert.Nil(t, resp.LibrarianID)
		assert.Len(t, f.repo.rows, 1)
		assert.Equal(t, 1, f.books.books[book.ID].CurrentQuantity)
	})

	t.Run("unknown user or book is a validation error", func(t *testing.T) {
		f := newReservationFixture(t)
		book := f.addBook(1)

		_, err := f.svc.AddReservation(ctx, uuid.New(), book.ID)
		assert.ErrorIs(t, err, model.ErrUnknownUser)
		assert.ErrorIs(t, err, shared.ErrValidation)

		_, err = f.svc.AddReservation(ctx, f.reader.ID, uuid.New())
		assert.ErrorIs(t, err, model.ErrUnknownBook)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("unavailable book", func(t *testing.T) {
		f := newReservationFixture(t)
		book := f.addBook(1)
		book.IsAvailable = false

		_, err := f.svc.AddReservation(ctx, f.reader.ID, book.ID)
		assert.ErrorIs(t, err, model.ErrBookUnavailable)
		assert.Empty(t, f.repo.rows)
	})
}

func TestReservationService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("takes one copy and closes the request", func(t *testing.T) {
		f := newReservationFixture(t)
		book := f.addBook(3)
		id := f.reserve(t, book.ID)
		f.mail.On("SendEmail", mock.Anything, f.reader.Email, subjectApproved, "Enjoy", "<p>Enjoy</p>").
			Return(nil).Once()

		require.NoError(t, f.svc.Approve(ctx, id, f.librarian.ID, "Enjoy"))

		stored := f.books.books[book.ID]
		assert.Equal(t, 3, stored.TotalQuantity)
		assert.Equal(t, 2, stored.CurrentQuantity)
		assert.True(t, stored.IsAvailable)

		res := f.repo.rows[id]
		assert.True(t, res.IsApproved)
		assert.True(t, res.IsReviewed)
		require.NotNil(t, res.LibrarianID)
		assert.Equal(t, f.librarian.ID, *res.LibrarianID)
		f.mail.AssertExpectations(t)
	})

	t.Run("two copies then out of stock", func(t *testing.T) {
		f := newReservationFixture(t)
		book := f.addBook(2)
		first := f.reserve(t, book.ID)
		second := f.reserve(t, book.ID)
		f.mail.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		require.NoError(t, f.svc.Approve(ctx, first, f.librarian.ID, "ok"))
		stored := f.books.books[book.ID]
		assert.Equal(t, 2, stored.TotalQuantity)
		assert.Equal(t, 1, stored.CurrentQuantity)
		assert.True(t, stored.IsAvailable)

		require.NoError(t, f.svc.Approve(ctx, second, f.librarian.ID, "ok"))
		stored = f.books.books[book.ID]
		assert.Equal(t, 2, stored.TotalQuantity)
		assert.Equal(t, 0, stored.CurrentQuantity)
		assert.False(t, stored.IsAvailable)

		_, err := f.svc.AddReservation(ctx, f.reader.ID, book.ID)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("second review is a terminal state error", func(t *testing.T) {
		f := newReservationFixture(t)
		book := f.addBook(5)
		id := f.reserve(t, book.ID)
		f.mail.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		require.NoError(t, f.svc.Approve(ctx, id, f.librarian.ID, ""))

		err := f.svc.Approve(ctx, id, f.librarian.ID, "")
		assert.ErrorIs(t, err, shared.ErrTerminalState)
		err = f.svc.Reject(ctx, id, f.librarian.ID, "")
		assert.ErrorIs(t, err, shared.ErrTerminalState)

		assert.Equal(t, 4, f.books.books[book.ID].CurrentQuantity)
		f.mail.AssertNumberOfCalls(t, "SendEmail", 1)
	})

	t.Run("librarian cannot approve own request", func(t *testing.T) {
		f := newReservationFixture(t)
		book := f.addBook(1)
		resp, err := f.svc.AddReservation(ctx, f.librarian.ID, book.ID)
		require.NoError(t, err)

		err = f.svc.Approve(ctx, resp.ID, f.librarian.ID, "")
		assert.ErrorIs(t, err, shared.ErrSelfReview)

		assert.True(t, f.repo.rows[resp.ID].IsPending())
		assert.Equal(t, 1, f.books.books[book.ID].CurrentQuantity)
		f.mail.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("book no longer available", func(t *testing.T) {
		f := newReservationFixture(t)
		book := f.addBook(1)
		id := f.reserve(t, book.ID)
		f.books.books[book.ID].CurrentQuantity = 0
		f.books.books[book.ID].IsAvailable = false

		err := f.svc.Approve(ctx, id, f.librarian.ID, "")
		assert.ErrorIs(t, err, model.ErrBookUnavailable)
		assert.True(t, f.repo.rows[id].IsPending())
	})

	t.Run("missing entities are not found", func(t *testing.T) {
		f := newReservationFixture(t)
		book := f.addBook(1)
		id := f.reserve(t, book.ID)

		err := f.svc.Approve(ctx, uuid.New(), f.librarian.ID, "")
		assert.ErrorIs(t, err, model.ErrReservationNotFound)

		err = f.svc.Approve(ctx, id, uuid.New(), "")
		assert.ErrorIs(t, err, model.ErrLibrarianNotFound)

		delete(f.books.books, book.ID)
		err = f.svc.Approve(ctx, id, f.librarian.ID, "")
		assert.ErrorIs(t, err, model.ErrBookNotFound)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("mail failure is reported after commit", func(t *testing.T) {
		f := newReservationFixture(t)
		book := f.addBook(1)
		id := f.reserve(t, book.ID)
		f.mail.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("smtp down")).Once()

		err := f.svc.Approve(ctx, id, f.librarian.ID, "")
		assert.Error(t, err)
		assert.False(t, f.repo.rows[id].IsPending())
		assert.Equal(t, 0, f.books.books[book.ID].CurrentQuantity)
	})
}

func TestReservationService_Reject(t *testing.T) {
	ctx := context.Background()

	t.Run("closes the request without touching stock", func(t *testing.T) {
		f := newReservationFixture(t)
		book := f.addBook(2)
		id := f.reserve(t, book.ID)
		f.mail.On("SendEmail", mock.Anything, f.reader.Email, subjectRejected, "<b>sorry</b>", "<p>&lt;b&gt;sorry&lt;/b&gt;</p>").
			Return(nil).Once()

		require.NoError(t, f.svc.Reject(ctx, id, f.librarian.ID, "<b>sorry</b>"))

		res := f.repo.rows[id]
		assert.True(t, res.IsReviewed)
		assert.False(t, res.IsApproved)
		assert.Equal(t, model.StatusRejected, res.Status())
		assert.Equal(t, 2, f.books.books[book.ID].CurrentQuantity)
		f.mail.AssertExpectations(t)
	})

	t.Run("librarian cannot reject own request", func(t *testing.T) {
		f := newReservationFixture(t)
		book := f.addBook(1)
		resp, err := f.svc.AddReservation(ctx, f.librarian.ID, book.ID)
		require.NoError(t, err)

		err = f.svc.Reject(ctx, resp.ID, f.librarian.ID, "")
		assert.ErrorIs(t, err, model.ErrSelfReview)
		assert.True(t, f.repo.rows[resp.ID].IsPending())
	})
}

func TestReservationService_Outputs(t *testing.T) {
	ctx := context.Background()

	t.Run("pending list is empty", func(t *testing.T) {
		f := newReservationFixture(t)

		_, err := f.svc.GetPending(ctx, shared.Pagination{Page: 1, PageSize: 10})
		assert.ErrorIs(t, err, model.ErrNoPendingReservations)
	})

	t.Run("pending list rejects invalid paging", func(t *testing.T) {
		f := newReservationFixture(t)
		book := f.addBook(1)
		f.reserve(t, book.ID)

		for _, p := range []shared.Pagination{{Page: 0, PageSize: 10}, {Page: 1, PageSize: 0}, {Page: 1, PageSize: 101}} {
			_, err := f.svc.GetPending(ctx, p)
			assert.ErrorIs(t, err, shared.ErrValidation, "%+v", p)
		}
	})

	t.Run("pending rows are rendered in the library time zone", func(t *testing.T) {
		f := newReservationFixture(t)
		book := f.addBook(1)
		id := f.reserve(t, book.ID)
		f.repo.rows[id].CreatedAt = time.Date(2024, 7, 1, 9, 5, 7, 0, time.UTC)

		page, err := f.svc.GetPending(ctx, shared.Pagination{Page: 1, PageSize: 10})
		require.NoError(t, err)

		require.Len(t, page.Items, 1)
		out := page.Items[0]
		assert.Equal(t, "Under the Yoke", out.BookTitle)
		assert.Equal(t, "Maria Ivanova", out.UserName)
		assert.Equal(t, "reader@example.com", out.Email)
		// EEST is UTC+3 in July.
		assert.Equal(t, "01/07/2024 12:05:07", out.CreatedOn)
		assert.EqualValues(t, 1, page.Total)
	})

	t.Run("confirm output shows current stock", func(t *testing.T) {
		f := newReservationFixture(t)
		book := f.addBook(4)
		id := f.reserve(t, book.ID)
		f.repo.rows[id].CreatedAt = time.Date(2024, 1, 15, 22, 30, 0, 0, time.UTC)

		out, err := f.svc.GetByID(ctx, id)
		require.NoError(t, err)

		assert.Equal(t, 4, out.Quantity)
		assert.True(t, out.IsAvailable)
		// EET is UTC+2 in January, which rolls the date over.
		assert.Equal(t, "16/01/2024 00:30:00", out.CreatedRequestDate)
		assert.Empty(t, out.Message)
	})

	t.Run("reviewed reservation cannot be opened for review", func(t *testing.T) {
		f := newReservationFixture(t)
		book := f.addBook(1)
		id := f.reserve(t, book.ID)
		f.repo.rows[id].IsReviewed = true

		_, err := f.svc.GetByID(ctx, id)
		assert.ErrorIs(t, err, model.ErrAlreadyReviewed)
	})
}
