package service

import (
	"context"
	"fmt"

	"library-backend/internal/domains/genre/repository"

	"github.com/google/uuid"
)

type GenresBooksService struct {
	repo repository.GenresBooksRepository
}

func NewGenresBooksService(repo repository.GenresBooksRepository) GenresBooksServiceInterface {
	return &GenresBooksService{repo: repo}
}

func (s *GenresBooksService) LinkBook(ctx context.Context, bookID uuid.UUID, genreIDs []uuid.UUID) error {
	if err := s.repo.AddLinks(ctx, bookID, genreIDs); err != nil {
		return fmt.Errorf("link genres to book %s: %w", bookID, err)
	}
	return nil
}

func (s *GenresBooksService) ReplaceForBook(ctx context.Context, bookID uuid.UUID, genreIDs []uuid.UUID) error {
	if err := s.DeleteByBook(ctx, bookID); err != nil {
		return err
	}
	return s.LinkBook(ctx, bookID, genreIDs)
}

func (s *GenresBooksService) DeleteByBook(ctx context.Context, bookID uuid.UUID) error {
	if err := s.repo.DeleteByBook(ctx, bookID); err != nil {
		return fmt.Errorf("unlink genres from book %s: %w", bookID, err)
	}
	return nil
}

func (s *GenresBooksService) CountBooks(ctx context.Context, genreID uuid.UUID) (int64, error) {
	n, err := s.repo.CountBooks(ctx, genreID)
	if err != nil {
		return 0, fmt.Errorf("count books of genre %s: %w", genreID, err)
	}
	return n, nil
}

func (s *GenresBooksService) GenreNamesByBook(ctx context.Context, bookID uuid.UUID) ([]string, error) {
	return s.repo.GenreNamesByBook(ctx, bookID)
}

func (s *GenresBooksService) BookIDsByGenres(ctx context.Context, genreIDs []uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.BookIDsByGenres(ctx, genreIDs)
}
