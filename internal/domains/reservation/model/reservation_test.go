package model

import (
	"testing"

	"library-backend/internal/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookReservation_Review(t *testing.T) {
	librarian := uuid.New()

	t.Run("approve", func(t *testing.T) {
		r := NewReservation(uuid.New(), uuid.New())
		assert.Equal(t, StatusPending, r.Status())

		require.NoError(t, r.Approve(librarian))
		assert.Equal(t, StatusApproved, r.Status())
		assert.Equal(t, &librarian, r.LibrarianID)
	})

	t.Run("reject", func(t *testing.T) {
		r := NewReservation(uuid.New(), uuid.New())

		require.NoError(t, r.Reject(librarian))
		assert.Equal(t, StatusRejected, r.Status())
		assert.False(t, r.IsApproved)
	})

	t.Run("only once", func(t *testing.T) {
		r := NewReservation(uuid.New(), uuid.New())
		require.NoError(t, r.Reject(librarian))

		assert.ErrorIs(t, r.Approve(uuid.New()), shared.ErrTerminalState)
		assert.ErrorIs(t, r.Reject(uuid.New()), ErrAlreadyReviewed)
		assert.Equal(t, StatusRejected, r.Status())
		assert.Equal(t, librarian, *r.LibrarianID)
	})
}

func TestCreateReservationRequest_Validate(t *testing.T) {
	assert.NoError(t, CreateReservationRequest{BookID: uuid.NewString()}.Validate())
	assert.ErrorIs(t, CreateReservationRequest{BookID: "42"}.Validate(), shared.ErrValidation)
	assert.ErrorIs(t, CreateReservationRequest{}.Validate(), shared.ErrValidation)
}
