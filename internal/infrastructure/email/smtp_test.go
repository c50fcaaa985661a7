package email

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/helpdesk-ai/helpdesk/internal/application/ticket/usecases"
	"github.com/helpdesk-ai/helpdesk/internal/shared/config"
	"github.com/helpdesk-ai/helpdesk/internal/shared/logger"
)

type mockSender struct {
	DialAndSendFunc func(m ...*gomail.Message) error
	sent            []*gomail.Message
}

func (s *mockSender) DialAndSend(m ...*gomail.Message) error {
	s.sent = append(s.sent, m...)
	if s.DialAndSendFunc != nil {
		return s.DialAndSendFunc(m...)
	}
	return nil
}

func discardLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testConfig() SMTPConfig {
	return SMTPConfig{
		Host:        "localhost",
		Port:        1025,
		FromAddress: "helpdesk@example.com",
		FromName:    "Helpdesk",
		To:          []string{"oncall@example.com"},
		Priorities:  []string{"High", "critical"},
		BaseURL:     "https://helpdesk.example.com",
	}
}

func strPtr(s string) *string { return &s }

func TestEscalationMailer_ShouldEscalate(t *testing.T) {
	mailer := newEscalationMailer(testConfig(), &mockSender{}, discardLogger())

	tests := []struct {
		name   string
		notice usecases.EscalationNotice
		want   bool
	}{
		{
			name:   "configured priority",
			notice: usecases.EscalationNotice{Priority: "high", ResolutionStatus: "generated"},
			want:   true,
		},
		{
			name:   "priority match ignores case",
			notice: usecases.EscalationNotice{Priority: "CRITICAL", ResolutionStatus: "generated"},
			want:   true,
		},
		{
			name:   "low priority with resolution",
			notice: usecases.EscalationNotice{Priority: "low", ResolutionStatus: "generated"},
			want:   false,
		},
		{
			name:   "failed resolution always escalates",
			notice: usecases.EscalationNotice{Priority: "low", ResolutionStatus: "failed"},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mailer.ShouldEscalate(tt.notice))
		})
	}
}

func TestEscalationMailer_NotifyEscalation(t *testing.T) {
	t.Run("sends one message with ticket details", func(t *testing.T) {
		s := &mockSender{}
		mailer := newEscalationMailer(testConfig(), s, discardLogger())

		err := mailer.NotifyEscalation(context.Background(), usecases.EscalationNotice{
			TicketID:         "42",
			Source:           "text",
			Subject:          "Server <down>",
			Body:             "Production API returns 502",
			TicketType:       "software",
			Priority:         "high",
			Resolution:       strPtr("1. Restart the service."),
			ResolutionStatus: "generated",
		})
		require.NoError(t, err)
		require.Len(t, s.sent, 1)

		msg := s.sent[0]
		assert.Equal(t, []string{"[HIGH] text ticket #42: Server <down>"}, msg.GetHeader("Subject"))
		assert.Equal(t, []string{"oncall@example.com"}, msg.GetHeader("To"))

		var buf bytes.Buffer
		_, err = msg.WriteTo(&buf)
		require.NoError(t, err)
		raw := buf.String()
		assert.Contains(t, raw, "Restart the service.")
		assert.Contains(t, raw, "Subject: Server <down>")
	})

	t.Run("skips tickets that do not escalate", func(t *testing.T) {
		s := &mockSender{}
		mailer := newEscalationMailer(testConfig(), s, discardLogger())

		err := mailer.NotifyEscalation(context.Background(), usecases.EscalationNotice{
			Priority:         "low",
			ResolutionStatus: "generated",
		})
		require.NoError(t, err)
		assert.Empty(t, s.sent)
	})

	t.Run("send failure is returned", func(t *testing.T) {
		s := &mockSender{DialAndSendFunc: func(m ...*gomail.Message) error {
			return errors.New("dial tcp: connection refused")
		}}
		mailer := newEscalationMailer(testConfig(), s, discardLogger())

		err := mailer.NotifyEscalation(context.Background(), usecases.EscalationNotice{
			TicketID:         "7",
			Priority:         "low",
			ResolutionStatus: "failed",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send escalation email")
	})

	t.Run("cancelled context", func(t *testing.T) {
		s := &mockSender{}
		mailer := newEscalationMailer(testConfig(), s, discardLogger())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := mailer.NotifyEscalation(ctx, usecases.EscalationNotice{Priority: "high"})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, s.sent)
	})
}

func TestNewFromConfig(t *testing.T) {
	assert.Nil(t, NewFromConfig(config.NotifyConfig{Enabled: false, To: []string{"a@example.com"}}, "", discardLogger()))
	assert.Nil(t, NewFromConfig(config.NotifyConfig{Enabled: true}, "", discardLogger()))
	assert.NotNil(t, NewFromConfig(config.NotifyConfig{Enabled: true, To: []string{"a@example.com"}}, "", discardLogger()))
}
