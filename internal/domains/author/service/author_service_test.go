package service

import (
	"context"
	"errors"
	"testing"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthorRepo struct {
	mock.Mock
}

func (m *mockAuthorRepo) Create(ctx context.Context, author *model.Author) error {
	args := m.Called(ctx, author)
	return args.Error(0)
}

func (m *mockAuthorRepo) Rename(ctx context.Context, id uuid.UUID, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *mockAuthorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockAuthorRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Author), args.Error(1)
}

func (m *mockAuthorRepo) FindByName(ctx context.Context, name string) (*model.Author, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Author), args.Error(1)
}

func (m *mockAuthorRepo) FindByNames(ctx context.Context, names []string) ([]*model.Author, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Author), args.Error(1)
}

func (m *mockAuthorRepo) NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockAuthorRepo) List(ctx context.Context, page, pageSize int) ([]*model.Author, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Author), args.Get(1).(int64), args.Error(2)
}

func (m *mockAuthorRepo) ListAll(ctx context.Context) ([]*model.Author, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Author), args.Error(1)
}

func (m *mockAuthorRepo) Search(ctx context.Context, name string, page, pageSize int) ([]*model.Author, int64, error) {
	args := m.Called(ctx, name, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Author), args.Get(1).(int64), args.Error(2)
}

type mockAuthorLinks struct {
	mock.Mock
}

func (m *mockAuthorLinks) LinkBook(ctx context.Context, bookID uuid.UUID, authorIDs []uuid.UUID) error {
	return m.Called(ctx, bookID, authorIDs).Error(0)
}

func (m *mockAuthorLinks) ReplaceForBook(ctx context.Context, bookID uuid.UUID, authorIDs []uuid.UUID) error {
	return m.Called(ctx, bookID, authorIDs).Error(0)
}

func (m *mockAuthorLinks) DeleteByBook(ctx context.Context, bookID uuid.UUID) error {
	return m.Called(ctx, bookID).Error(0)
}

func (m *mockAuthorLinks) CountBooks(ctx context.Context, authorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAuthorLinks) AuthorNamesByBook(ctx context.Context, bookID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockAuthorLinks) BookIDsByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, authorIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func TestAuthorService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("trims and stores the name", func(t *testing.T) {
		repo := new(mockAuthorRepo)
		svc := NewAuthorService(repo, new(mockAuthorLinks))

		repo.On("NameExists", ctx, "Ivan Vazov", uuid.Nil).Return(false, nil).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(a *model.Author) bool { return a.Name == "Ivan Vazov" })).
			Return(nil).Once()

		resp, err := svc.Create(ctx, model.AuthorRequest{Name: "  Ivan Vazov "})
		require.NoError(t, err)

		assert.Equal(t, "Ivan Vazov", resp.Name)
		assert.NotEqual(t, uuid.Nil, resp.ID)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate name is a conflict", func(t *testing.T) {
		repo := new(mockAuthorRepo)
		svc := NewAuthorService(repo, new(mockAuthorLinks))

		repo.On("NameExists", ctx, "Ivan Vazov", uuid.Nil).Return(true, nil).Once()

		_, err := svc.Create(ctx, model.AuthorRequest{Name: "Ivan Vazov"})
		assert.ErrorIs(t, err, model.ErrAuthorNameExists)
		assert.ErrorIs(t, err, shared.ErrConflict)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("blank name fails validation", func(t *testing.T) {
		repo := new(mockAuthorRepo)
		svc := NewAuthorService(repo, new(mockAuthorLinks))

		_, err := svc.Create(ctx, model.AuthorRequest{Name: "   "})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

func TestAuthorService_Update(t *testing.T) {
	ctx := context.Background()
	existing := model.NewAuthor("Old Name")

	t.Run("renames", func(t *testing.T) {
		repo := new(mockAuthorRepo)
		svc := NewAuthorService(repo, new(mockAuthorLinks))

		repo.On("GetByID", ctx, existing.ID).Return(existing, nil).Once()
		repo.On("NameExists", ctx, "New Name", existing.ID).Return(false, nil).Once()
		repo.On("Rename", ctx, existing.ID, "New Name").Return(nil).Once()

		resp, err := svc.Update(ctx, existing.ID, model.AuthorRequest{Name: "New Name"})
		require.NoError(t, err)
		assert.Equal(t, "New Name", resp.Name)
		repo.AssertExpectations(t)
	})

	t.Run("unknown author", func(t *testing.T) {
		repo := new(mockAuthorRepo)
		svc := NewAuthorService(repo, new(mockAuthorLinks))
		id := uuid.New()

		repo.On("GetByID", ctx, id).Return(nil, nil).Once()

		_, err := svc.Update(ctx, id, model.AuthorRequest{Name: "Anything"})
		assert.ErrorIs(t, err, model.ErrAuthorNotFound)
	})
}

func TestAuthorService_Delete(t *testing.T) {
	ctx := context.Background()
	author := model.NewAuthor("Elin Pelin")

	t.Run("refused while books are linked", func(t *testing.T) {
		repo := new(mockAuthorRepo)
		links := new(mockAuthorLinks)
		svc := NewAuthorService(repo, links)

		repo.On("GetByID", ctx, author.ID).Return(author, nil).Once()
		links.On("CountBooks", ctx, author.ID).Return(int64(2), nil).Once()

		err := svc.Delete(ctx, author.ID)
		assert.ErrorIs(t, err, model.ErrAuthorHasBooks)
		assert.ErrorIs(t, err, shared.ErrValidation)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes an unlinked author", func(t *testing.T) {
		repo := new(mockAuthorRepo)
		links := new(mockAuthorLinks)
		svc := NewAuthorService(repo, links)

		repo.On("GetByID", ctx, author.ID).Return(author, nil).Once()
		links.On("CountBooks", ctx, author.ID).Return(int64(0), nil).Once()
		repo.On("Delete", ctx, author.ID).Return(nil).Once()

		require.NoError(t, svc.Delete(ctx, author.ID))
		repo.AssertExpectations(t)
	})
}

func TestAuthorService_Lists(t *testing.T) {
	ctx := context.Background()
	p := shared.Pagination{Page: 2, PageSize: 5}

	t.Run("paged list", func(t *testing.T) {
		repo := new(mockAuthorRepo)
		svc := NewAuthorService(repo, new(mockAuthorLinks))
		authors := []*model.Author{model.NewAuthor("A"), model.NewAuthor("B")}

		repo.On("List", ctx, 2, 5).Return(authors, int64(7), nil).Once()

		res, err := svc.List(ctx, p)
		require.NoError(t, err)
		assert.Len(t, res.Items, 2)
		assert.EqualValues(t, 7, res.Total)
		assert.Equal(t, 2, res.Page)
	})

	t.Run("empty list is not found", func(t *testing.T) {
		repo := new(mockAuthorRepo)
		svc := NewAuthorService(repo, new(mockAuthorLinks))

		repo.On("List", ctx, 2, 5).Return(nil, int64(0), nil).Once()
		repo.On("ListAll", ctx).Return(nil, nil).Once()
		repo.On("Search", ctx, "zzz", 2, 5).Return(nil, int64(0), nil).Once()

		_, err := svc.List(ctx, p)
		assert.ErrorIs(t, err, model.ErrNoAuthors)
		_, err = svc.GetAll(ctx)
		assert.ErrorIs(t, err, model.ErrNoAuthors)
		_, err = svc.Search(ctx, " zzz ", p)
		assert.ErrorIs(t, err, model.ErrNoAuthors)
	})

	t.Run("repository failure is wrapped", func(t *testing.T) {
		repo := new(mockAuthorRepo)
		svc := NewAuthorService(repo, new(mockAuthorLinks))
		boom := errors.New("connection reset")

		repo.On("ListAll", ctx).Return(nil, boom).Once()

		_, err := svc.GetAll(ctx)
		assert.ErrorIs(t, err, boom)
	})
}

func TestAuthorService_ResolveNames(t *testing.T) {
	ctx := context.Background()
	vazov := model.NewAuthor("Ivan Vazov")
	pelin := model.NewAuthor("Elin Pelin")

	t.Run("keeps input order and drops duplicates", func(t *testing.T) {
		repo := new(mockAuthorRepo)
		svc := NewAuthorService(repo, new(mockAuthorLinks))

		repo.On("FindByNames", ctx, []string{"Elin Pelin", "Ivan Vazov"}).
			Return([]*model.Author{vazov, pelin}, nil).Once()

		ids, err := svc.ResolveNames(ctx, []string{" Elin Pelin", "Ivan Vazov", "Elin Pelin", ""})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{pelin.ID, vazov.ID}, ids)
	})

	t.Run("unknown name fails with the name", func(t *testing.T) {
		repo := new(mockAuthorRepo)
		svc := NewAuthorService(repo, new(mockAuthorLinks))

		repo.On("FindByNames", ctx, []string{"Ivan Vazov", "Nobody"}).
			Return([]*model.Author{vazov}, nil).Once()

		_, err := svc.ResolveNames(ctx, []string{"Ivan Vazov", "Nobody"})
		assert.ErrorIs(t, err, model.ErrAuthorNotFound)
		assert.Contains(t, err.Error(), `"Nobody"`)
	})

	t.Run("find skips unknown names", func(t *testing.T) {
		repo := new(mockAuthorRepo)
		svc := NewAuthorService(repo, new(mockAuthorLinks))

		repo.On("FindByNames", ctx, []string{"Ivan Vazov", "Nobody"}).
			Return([]*model.Author{vazov}, nil).Once()

		ids, err := svc.FindIDsByNames(ctx, []string{"Ivan Vazov", "Nobody"})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{vazov.ID}, ids)
	})
}

func TestAuthorsBooksService_ReplaceForBook(t *testing.T) {
	ctx := context.Background()
	bookID := uuid.New()
	authorIDs := []uuid.UUID{uuid.New()}

	repo := new(mockAuthorsBooksRepo)
	svc := NewAuthorsBooksService(repo)

	repo.On("DeleteByBook", ctx, bookID).Return(nil).Once()
	repo.On("AddLinks", ctx, bookID, authorIDs).Return(nil).Once()

	require.NoError(t, svc.ReplaceForBook(ctx, bookID, authorIDs))
	repo.AssertExpectations(t)
}

type mockAuthorsBooksRepo struct {
	mock.Mock
}

func (m *mockAuthorsBooksRepo) AddLinks(ctx context.Context, bookID uuid.UUID, authorIDs []uuid.UUID) error {
	return m.Called(ctx, bookID, authorIDs).Error(0)
}

func (m *mockAuthorsBooksRepo) DeleteByBook(ctx context.Context, bookID uuid.UUID) error {
	return m.Called(ctx, bookID).Error(0)
}

func (m *mockAuthorsBooksRepo) CountBooks(ctx context.Context, authorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAuthorsBooksRepo) AuthorNamesByBook(ctx context.Context, bookID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockAuthorsBooksRepo) BookIDsByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, authorIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}
