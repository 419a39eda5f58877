package main

import (
	bookJob "library-backend/internal/domains/book/job"
	emailJob "library-backend/internal/infrastructure/email/job"
	"library-backend/internal/shared"
	"library-backend/pkg/container"

	"github.com/hibiken/asynq"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	sendEmail     *emailJob.SendEmailHandler
	cleanupCovers *bookJob.CleanupCoversHandler
}

// initializeHandlers creates all job handlers. Emails are delivered over
// SMTP here, the api only enqueues them.
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		sendEmail:     emailJob.NewSendEmailHandler(c.SMTP),
		cleanupCovers: bookJob.NewCleanupCoversHandler(c.BookService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSendEmail, h.sendEmail.ProcessTask)
	mux.HandleFunc(shared.TypeCleanupOrphanCover, h.cleanupCovers.ProcessTask)
}
