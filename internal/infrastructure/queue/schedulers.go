package queue

import (
	"fmt"
	"time"

	"library-backend/internal/config"
	"library-backend/internal/shared"
	"library-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	cfg       config.QueueConfig
}

func NewScheduler(redis asynq.RedisConnOpt, cfg config.QueueConfig) *Scheduler {
	scheduler := asynq.NewScheduler(redis, &asynq.SchedulerOpts{
		Location: time.UTC,
		LogLevel: asynq.InfoLevel,
	})

	return &Scheduler{scheduler: scheduler, cfg: cfg}
}

// RegisterJobs registers every periodic task of the library.
func (s *Scheduler) RegisterJobs() error {
	return s.registerCleanupOrphanCoversJob()
}

// ================================================
// Cleanup orphan covers (daily, COVER_CLEANUP_CRON)
// ================================================
func (s *Scheduler) registerCleanupOrphanCoversJob() error {
	task := asynq.NewTask(shared.TypeCleanupOrphanCover, nil)

	entryID, err := s.scheduler.Register(
		s.cfg.CoverCleanupCron,
		task,
		asynq.Queue("low"),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register CleanupOrphanCovers job", err)
		return fmt.Errorf("register %s: %w", shared.TypeCleanupOrphanCover, err)
	}

	logger.Info("Registered scheduled job", map[string]interface{}{
		"task":     shared.TypeCleanupOrphanCover,
		"cron":     s.cfg.CoverCleanupCron,
		"entry_id": entryID,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
