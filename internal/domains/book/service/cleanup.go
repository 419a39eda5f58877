package service

import (
	"context"
	"fmt"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/infrastructure/storage"

	"github.com/rs/zerolog/log"
)

// CleanupOrphanCovers deletes every blob no book points at.
// Individual delete failures are logged and retried on the next run.
func (s *BookService) CleanupOrphanCovers(ctx context.Context) (*model.CleanupReport, error) {
	names, err := s.blobs.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list covers: %w", err)
	}

	addresses, err := s.repo.CoverAddresses(ctx)
	if err != nil {
		return nil, err
	}

	referenced := make(map[string]struct{}, len(addresses))
	for _, addr := range addresses {
		name, err := storage.ObjectNameFromURL(addr)
		if err != nil {
			log.Warn().Err(err).Str("url", addr).Msg("book has an unparseable cover address")
			continue
		}
		referenced[name] = struct{}{}
	}

	report := &model.CleanupReport{Scanned: len(names)}
	for _, name := range names {
		if _, ok := referenced[name]; ok {
			continue
		}
		if err := s.blobs.Delete(ctx, name); err != nil {
			log.Warn().Err(err).Str("object", name).Msg("failed to delete orphan cover")
			continue
		}
		report.Deleted = append(report.Deleted, name)
	}

	return report, nil
}
