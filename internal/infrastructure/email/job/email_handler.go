package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"library-backend/internal/infrastructure/email"
	"library-backend/internal/shared"
)

// SendEmailHandler delivers queued email tasks through a MailSender (SMTP in the worker).
type SendEmailHandler struct {
	sender email.MailSender
}

func NewSendEmailHandler(sender email.MailSender) *SendEmailHandler {
	return &SendEmailHandler{sender: sender}
}

func (h *SendEmailHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.SendEmailPayload
	if err := jsoniter.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal SendEmail payload")
		// A broken payload will never succeed, do not retry it.
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	if payload.To == "" {
		return fmt.Errorf("email task without recipient: %w", asynq.SkipRetry)
	}

	if err := h.sender.SendEmail(ctx, payload.To, payload.Subject, payload.PlainBody, payload.HTMLBody); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
