package email

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"library-backend/internal/config"
	"library-backend/internal/shared"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	msg, err := buildMessage("Library", "noreply@library.local", "reader@example.com",
		"Approved book reservation request", "Enjoy", "<p>Enjoy</p>")
	require.NoError(t, err)

	raw := string(msg)
	assert.Contains(t, raw, "From: Library <noreply@library.local>\r\n")
	assert.Contains(t, raw, "To: reader@example.com\r\n")
	assert.Contains(t, raw, "Subject: Approved book reservation request\r\n")
	assert.Contains(t, raw, "Content-Type: multipart/alternative; boundary=")
	assert.Contains(t, raw, "text/plain; charset=UTF-8")
	assert.Contains(t, raw, "<p>Enjoy</p>")
}

func TestBuildMessage_SkipsEmptyParts(t *testing.T) {
	msg, err := buildMessage("Library", "noreply@library.local", "reader@example.com", "Hi", "plain only", "")
	require.NoError(t, err)

	assert.NotContains(t, string(msg), "text/html")
}

func TestBuildMessage_EncodesNonASCIISubject(t *testing.T) {
	msg, err := buildMessage("Библиотека", "noreply@library.local", "reader@example.com", "Одобрена заявка", "x", "")
	require.NoError(t, err)

	headers := strings.SplitN(string(msg), "\r\n\r\n", 2)[0]
	assert.Contains(t, headers, "=?utf-8?q?")
	assert.NotContains(t, headers, "Одобрена")
}

func TestSMTPSender_SendEmail(t *testing.T) {
	s := NewSMTPSender(config.SMTPConfig{Host: "mail.local", Port: 2525, From: "noreply@library.local", FromName: "Library"})

	var gotAddr, gotFrom string
	var gotTo []string
	s.send = func(addr string, _ smtp.Auth, from string, to []string, _ []byte) error {
		gotAddr, gotFrom, gotTo = addr, from, to
		return nil
	}

	require.NoError(t, s.SendEmail(context.Background(), "reader@example.com", "Hi", "x", ""))
	assert.Equal(t, "mail.local:2525", gotAddr)
	assert.Equal(t, "noreply@library.local", gotFrom)
	assert.Equal(t, []string{"reader@example.com"}, gotTo)

	s.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("421 busy") }
	assert.Error(t, s.SendEmail(context.Background(), "reader@example.com", "Hi", "x", ""))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.SendEmail(ctx, "reader@example.com", "Hi", "x", ""), context.Canceled)
}

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asynq.TaskInfo), args.Error(1)
}

func TestQueuedSender_SendEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("enqueues an email task", func(t *testing.T) {
		client := new(mockEnqueuer)
		sender := NewQueuedSender(client)

		var task *asynq.Task
		client.On("EnqueueContext", ctx, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { task = args.Get(1).(*asynq.Task) }).
			Return(&asynq.TaskInfo{ID: "1"}, nil).Once()

		require.NoError(t, sender.SendEmail(ctx, "reader@example.com", "Reset password", "plain", "<p>html</p>"))

		require.NotNil(t, task)
		assert.Equal(t, shared.TypeSendEmail, task.Type())

		var payload shared.SendEmailPayload
		require.NoError(t, jsoniter.Unmarshal(task.Payload(), &payload))
		assert.Equal(t, shared.SendEmailPayload{
			To:        "reader@example.com",
			Subject:   "Reset password",
			PlainBody: "plain",
			HTMLBody:  "<p>html</p>",
		}, payload)
	})

	t.Run("enqueue failure is returned", func(t *testing.T) {
		client := new(mockEnqueuer)
		sender := NewQueuedSender(client)

		client.On("EnqueueContext", ctx, mock.Anything, mock.Anything).
			Return(nil, errors.New("redis down")).Once()

		err := sender.SendEmail(ctx, "reader@example.com", "x", "y", "")
		assert.ErrorContains(t, err, "redis down")
	})
}
