package service

import (
	"context"
	"fmt"

	"library-backend/internal/domains/author/repository"

	"github.com/google/uuid"
)

type AuthorsBooksService struct {
	repo repository.AuthorsBooksRepository
}

func NewAuthorsBooksService(repo repository.AuthorsBooksRepository) AuthorsBooksServiceInterface {
	return &AuthorsBooksService{repo: repo}
}

func (s *AuthorsBooksService) LinkBook(ctx context.Context, bookID uuid.UUID, authorIDs []uuid.UUID) error {
	if err := s.repo.AddLinks(ctx, bookID, authorIDs); err != nil {
		return fmt.Errorf("link authors to book %s: %w", bookID, err)
	}
	return nil
}

func (s *AuthorsBooksService) ReplaceForBook(ctx context.Context, bookID uuid.UUID, authorIDs []uuid.UUID) error {
	if err := s.DeleteByBook(ctx, bookID); err != nil {
		return err
	}
	return s.LinkBook(ctx, bookID, authorIDs)
}

func (s *AuthorsBooksService) DeleteByBook(ctx context.Context, bookID uuid.UUID) error {
	if err := s.repo.DeleteByBook(ctx, bookID); err != nil {
		return fmt.Errorf("unlink authors from book %s: %w", bookID, err)
	}
	return nil
}

func (s *AuthorsBooksService) CountBooks(ctx context.Context, authorID uuid.UUID) (int64, error) {
	n, err := s.repo.CountBooks(ctx, authorID)
	if err != nil {
		return 0, fmt.Errorf("count books of author %s: %w", authorID, err)
	}
	return n, nil
}

func (s *AuthorsBooksService) AuthorNamesByBook(ctx context.Context, bookID uuid.UUID) ([]string, error) {
	return s.repo.AuthorNamesByBook(ctx, bookID)
}

func (s *AuthorsBooksService) BookIDsByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.BookIDsByAuthors(ctx, authorIDs)
}
