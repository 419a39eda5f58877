package job

import (
	"context"
	"time"

	"library-backend/internal/domains/book/service"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// CleanupCoversHandler removes cover blobs no book references anymore.
type CleanupCoversHandler struct {
	books service.ServiceInterface
}

func NewCleanupCoversHandler(books service.ServiceInterface) *CleanupCoversHandler {
	return &CleanupCoversHandler{books: books}
}

func (h *CleanupCoversHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	start := time.Now()

	report, err := h.books.CleanupOrphanCovers(ctx)
	if err != nil {
		log.Error().Err(err).Str("task", task.Type()).Msg("orphan cover cleanup failed")
		return err
	}

	log.Info().
		Str("task", task.Type()).
		Int("scanned", report.Scanned).
		Int("deleted", len(report.Deleted)).
		Dur("took", time.Since(start)).
		Msg("orphan cover cleanup finished")
	return nil
}
