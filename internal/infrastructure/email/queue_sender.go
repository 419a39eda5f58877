package email

import (
	"context"
	"fmt"
	"time"

	"library-backend/internal/shared"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"
)

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueuedSender hands messages to the worker instead of talking SMTP in the request.
// The returned error only covers enqueueing.
type QueuedSender struct {
	client Enqueuer
}

func NewQueuedSender(client Enqueuer) *QueuedSender {
	return &QueuedSender{client: client}
}

func (s *QueuedSender) SendEmail(ctx context.Context, to, subject, plainBody, htmlBody string) error {
	payload, err := jsoniter.Marshal(shared.SendEmailPayload{
		To:        to,
		Subject:   subject,
		PlainBody: plainBody,
		HTMLBody:  htmlBody,
	})
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeSendEmail, payload,
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
		asynq.Queue("critical"),
	)
	if _, err := s.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue email to %s: %w", to, err)
	}
	return nil
}
