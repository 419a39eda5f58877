package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"library-backend/internal/domains/genre/model"
	"library-backend/internal/domains/genre/repository"
	"library-backend/internal/shared"
	"library-backend/pkg/cache"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const genresCountKey = "genres:count"

type GenreService struct {
	repo     repository.RepositoryInterface
	links    GenresBooksServiceInterface
	cache    cache.Cache
	countTTL time.Duration
}

func NewGenreService(
	repo repository.RepositoryInterface,
	links GenresBooksServiceInterface,
	cache cache.Cache,
	countTTL time.Duration,
) ServiceInterface {
	return &GenreService{repo: repo, links: links, cache: cache, countTTL: countTTL}
}

func (s *GenreService) Create(ctx context.Context, req model.GenreRequest) (*model.GenreResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.NameExists(ctx, req.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrGenreNameExists
	}

	genre := model.NewGenre(req.Name)
	if err := s.repo.Create(ctx, genre); err != nil {
		return nil, fmt.Errorf("create genre: %w", err)
	}

	s.invalidateCount(ctx)
	log.Info().Str("genre_id", genre.ID.String()).Str("name", genre.Name).Msg("genre created")
	resp := genre.ToResponse()
	return &resp, nil
}

func (s *GenreService) Update(ctx context.Context, id uuid.UUID, req model.GenreRequest) (*model.GenreResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	genre, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.NameExists(ctx, req.Name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrGenreNameExists
	}

	if err := s.repo.Rename(ctx, id, req.Name); err != nil {
		return nil, fmt.Errorf("update genre: %w", err)
	}

	genre.Name = req.Name
	resp := genre.ToResponse()
	return &resp, nil
}

func (s *GenreService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.mustGet(ctx, id); err != nil {
		return err
	}

	count, err := s.links.CountBooks(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return model.ErrGenreHasBooks
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete genre: %w", err)
	}

	s.invalidateCount(ctx)
	log.Info().Str("genre_id", id.String()).Msg("genre deleted")
	return nil
}

func (s *GenreService) GetByID(ctx context.Context, id uuid.UUID) (*model.GenreResponse, error) {
	genre, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := genre.ToResponse()
	return &resp, nil
}

func (s *GenreService) List(ctx context.Context, p shared.Pagination) (*shared.PagedResult[model.GenreResponse], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	genres, total, err := s.repo.List(ctx, p.Page, p.PageSize)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	if total == 0 {
		return nil, model.ErrNoGenres
	}

	return &shared.PagedResult[model.GenreResponse]{
		Items:    model.ToResponses(genres),
		Page:     p.Page,
		PageSize: p.PageSize,
		Total:    total,
	}, nil
}

func (s *GenreService) GetAll(ctx context.Context) ([]model.GenreResponse, error) {
	genres, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	if len(genres) == 0 {
		return nil, model.ErrNoGenres
	}
	return model.ToResponses(genres), nil
}

func (s *GenreService) Search(ctx context.Context, name string, p shared.Pagination) (*shared.PagedResult[model.GenreResponse], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	genres, total, err := s.repo.Search(ctx, strings.TrimSpace(name), p.Page, p.PageSize)
	if err != nil {
		return nil, fmt.Errorf("search genres: %w", err)
	}
	if total == 0 {
		return nil, model.ErrNoGenres
	}

	return &shared.PagedResult[model.GenreResponse]{
		Items:    model.ToResponses(genres),
		Page:     p.Page,
		PageSize: p.PageSize,
		Total:    total,
	}, nil
}

func (s *GenreService) GetBooksCount(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, err := s.mustGet(ctx, id); err != nil {
		return 0, err
	}
	return s.links.CountBooks(ctx, id)
}

func (s *GenreService) CountAll(ctx context.Context) (int64, error) {
	var count int64
	found, err := s.cache.Get(ctx, genresCountKey, &count)
	if err != nil {
		log.Warn().Err(err).Msg("genre count cache read failed")
	}
	if found {
		return count, nil
	}

	count, err = s.repo.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("count genres: %w", err)
	}

	if err := s.cache.Set(ctx, genresCountKey, count, s.countTTL); err != nil {
		log.Warn().Err(err).Msg("genre count cache write failed")
	}
	return count, nil
}

func (s *GenreService) invalidateCount(ctx context.Context) {
	if err := s.cache.Delete(ctx, genresCountKey); err != nil {
		log.Warn().Err(err).Msg("genre count cache invalidation failed")
	}
}

func (s *GenreService) ResolveNames(ctx context.Context, names []string) ([]uuid.UUID, error) {
	wanted := normalizeNames(names)

	genres, err := s.repo.FindByNames(ctx, wanted)
	if err != nil {
		return nil, fmt.Errorf("resolve genres: %w", err)
	}

	byName := make(map[string]uuid.UUID, len(genres))
	for _, a := range genres {
		byName[a.Name] = a.ID
	}

	ids := make([]uuid.UUID, 0, len(wanted))
	for _, name := range wanted {
		id, ok := byName[name]
		if !ok {
			return nil, model.UnknownGenreError(name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *GenreService) FindIDsByNames(ctx context.Context, names []string) ([]uuid.UUID, error) {
	genres, err := s.repo.FindByNames(ctx, normalizeNames(names))
	if err != nil {
		return nil, fmt.Errorf("find genres: %w", err)
	}

	ids := make([]uuid.UUID, len(genres))
	for i, a := range genres {
		ids[i] = a.ID
	}
	return ids, nil
}

func (s *GenreService) mustGet(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	genre, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get genre: %w", err)
	}
	if genre == nil {
		return nil, model.ErrGenreNotFound
	}
	return genre, nil
}

// normalizeNames trims, drops blanks and de-duplicates while keeping order.
func normalizeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
