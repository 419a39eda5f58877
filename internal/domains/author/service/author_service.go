package service

import (
	"context"
	"fmt"
	"strings"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/domains/author/repository"
	"library-backend/internal/shared"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type AuthorService struct {
	repo  repository.RepositoryInterface
	links AuthorsBooksServiceInterface
}

func NewAuthorService(repo repository.RepositoryInterface, links AuthorsBooksServiceInterface) ServiceInterface {
	return &AuthorService{repo: repo, links: links}
}

func (s *AuthorService) Create(ctx context.Context, req model.AuthorRequest) (*model.AuthorResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.NameExists(ctx, req.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrAuthorNameExists
	}

	author := model.NewAuthor(req.Name)
	if err := s.repo.Create(ctx, author); err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}

	log.Info().Str("author_id", author.ID.String()).Str("name", author.Name).Msg("author created")
	resp := author.ToResponse()
	return &resp, nil
}

func (s *AuthorService) Update(ctx context.Context, id uuid.UUID, req model.AuthorRequest) (*model.AuthorResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	author, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.NameExists(ctx, req.Name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrAuthorNameExists
	}

	if err := s.repo.Rename(ctx, id, req.Name); err != nil {
		return nil, fmt.Errorf("update author: %w", err)
	}

	author.Name = req.Name
	resp := author.ToResponse()
	return &resp, nil
}

func (s *AuthorService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.mustGet(ctx, id); err != nil {
		return err
	}

	count, err := s.links.CountBooks(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return model.ErrAuthorHasBooks
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete author: %w", err)
	}

	log.Info().Str("author_id", id.String()).Msg("author deleted")
	return nil
}

func (s *AuthorService) GetByID(ctx context.Context, id uuid.UUID) (*model.AuthorResponse, error) {
	author, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := author.ToResponse()
	return &resp, nil
}

func (s *AuthorService) List(ctx context.Context, p shared.Pagination) (*shared.PagedResult[model.AuthorResponse], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	authors, total, err := s.repo.List(ctx, p.Page, p.PageSize)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	if total == 0 {
		return nil, model.ErrNoAuthors
	}

	return &shared.PagedResult[model.AuthorResponse]{
		Items:    model.ToResponses(authors),
		Page:     p.Page,
		PageSize: p.PageSize,
		Total:    total,
	}, nil
}

func (s *AuthorService) GetAll(ctx context.Context) ([]model.AuthorResponse, error) {
	authors, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	if len(authors) == 0 {
		return nil, model.ErrNoAuthors
	}
	return model.ToResponses(authors), nil
}

func (s *AuthorService) Search(ctx context.Context, name string, p shared.Pagination) (*shared.PagedResult[model.AuthorResponse], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	authors, total, err := s.repo.Search(ctx, strings.TrimSpace(name), p.Page, p.PageSize)
	if err != nil {
		return nil, fmt.Errorf("search authors: %w", err)
	}
	if total == 0 {
		return nil, model.ErrNoAuthors
	}

	return &shared.PagedResult[model.AuthorResponse]{
		Items:    model.ToResponses(authors),
		Page:     p.Page,
		PageSize: p.PageSize,
		Total:    total,
	}, nil
}

func (s *AuthorService) GetBooksCount(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, err := s.mustGet(ctx, id); err != nil {
		return 0, err
	}
	return s.links.CountBooks(ctx, id)
}

func (s *AuthorService) ResolveNames(ctx context.Context, names []string) ([]uuid.UUID, error) {
	wanted := normalizeNames(names)

	authors, err := s.repo.FindByNames(ctx, wanted)
	if err != nil {
		return nil, fmt.Errorf("resolve authors: %w", err)
	}

	byName := make(map[string]uuid.UUID, len(authors))
	for _, a := range authors {
		byName[a.Name] = a.ID
	}

	ids := make([]uuid.UUID, 0, len(wanted))
	for _, name := range wanted {
		id, ok := byName[name]
		if !ok {
			return nil, model.UnknownAuthorError(name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *AuthorService) FindIDsByNames(ctx context.Context, names []string) ([]uuid.UUID, error) {
	authors, err := s.repo.FindByNames(ctx, normalizeNames(names))
	if err != nil {
		return nil, fmt.Errorf("find authors: %w", err)
	}

	ids := make([]uuid.UUID, len(authors))
	for i, a := range authors {
		ids[i] = a.ID
	}
	return ids, nil
}

func (s *AuthorService) mustGet(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	author, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get author: %w", err)
	}
	if author == nil {
		return nil, model.ErrAuthorNotFound
	}
	return author, nil
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
