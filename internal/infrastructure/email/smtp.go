package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/helpdesk-ai/helpdesk/internal/application/ticket/usecases"
	vo "github.com/helpdesk-ai/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-ai/helpdesk/internal/shared/config"
	"github.com/helpdesk-ai/helpdesk/internal/shared/logger"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	To          []string
	// Priorities that always escalate. Failed resolutions escalate regardless.
	Priorities []string
	BaseURL    string
}

// sender is satisfied by *gomail.Dialer.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EscalationMailer e-mails the helpdesk inbox about tickets that need a human.
type EscalationMailer struct {
	config     SMTPConfig
	sender     sender
	priorities map[string]struct{}
	logger     logger.Interface
}

func NewEscalationMailer(config SMTPConfig, log logger.Interface) *EscalationMailer {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	return newEscalationMailer(config, dialer, log)
}

func newEscalationMailer(config SMTPConfig, s sender, log logger.Interface) *EscalationMailer {
	priorities := make(map[string]struct{}, len(config.Priorities))
	for _, p := range config.Priorities {
		priorities[strings.ToLower(strings.TrimSpace(p))] = struct{}{}
	}

	return &EscalationMailer{
		config:     config,
		sender:     s,
		priorities: priorities,
		logger:     log,
	}
}

// NewFromConfig returns nil when notifications are disabled or have no
// recipients. Callers must keep that nil untyped.
func NewFromConfig(cfg config.NotifyConfig, baseURL string, log logger.Interface) *EscalationMailer {
	if !cfg.Enabled {
		return nil
	}
	if len(cfg.To) == 0 {
		log.Warnw("escalation notifications enabled without recipients, disabling")
		return nil
	}

	return NewEscalationMailer(SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
		To:          cfg.To,
		Priorities:  cfg.Priorities,
		BaseURL:     baseURL,
	}, log)
}

// ShouldEscalate reports whether a notice is worth an e-mail.
func (s *EscalationMailer) ShouldEscalate(notice usecases.EscalationNotice) bool {
	if notice.ResolutionStatus == vo.ResolutionFailed.String() {
		return true
	}
	_, ok := s.priorities[strings.ToLower(notice.Priority)]
	return ok
}

func (s *EscalationMailer) NotifyEscalation(ctx context.Context, notice usecases.EscalationNotice) error {
	if !s.ShouldEscalate(notice) {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	subject := fmt.Sprintf("[%s] %s ticket #%s: %s",
		strings.ToUpper(notice.Priority), notice.Source, notice.TicketID, notice.Subject)

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", s.config.To...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody(notice, s.config.BaseURL))
	m.AddAlternative("text/html", htmlBody(notice, s.config.BaseURL))

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send escalation email: %w", err)
	}

	s.logger.Infow("escalation email sent",
		"ticket_id", notice.TicketID,
		"source", notice.Source,
		"priority", notice.Priority)

	return nil
}

func resolutionText(notice usecases.EscalationNotice) string {
	if notice.ResolutionStatus == vo.ResolutionFailed.String() {
		return "No resolution could be generated. Please handle this ticket manually."
	}
	if notice.Resolution == nil {
		return ""
	}
	return *notice.Resolution
}

func plainBody(notice usecases.EscalationNotice, baseURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ticket #%s (%s)\n", notice.TicketID, notice.Source)
	fmt.Fprintf(&b, "Category: %s\nPriority: %s\n\n", notice.TicketType, notice.Priority)
	fmt.Fprintf(&b, "Subject: %s\n\n%s\n\n", notice.Subject, notice.Body)
	fmt.Fprintf(&b, "Suggested resolution:\n%s\n", resolutionText(notice))
	if baseURL != "" {
		fmt.Fprintf(&b, "\nAll tickets: %s/api/tickets/all?source=%s\n", baseURL, notice.Source)
	}
	return b.String()
}

func htmlBody(notice usecases.EscalationNotice, baseURL string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, "<h2>Ticket #%s (%s)</h2>", html.EscapeString(notice.TicketID), html.EscapeString(notice.Source))
	fmt.Fprintf(&b, "<p><strong>Category:</strong> %s<br><strong>Priority:</strong> %s</p>",
		html.EscapeString(notice.TicketType), html.EscapeString(notice.Priority))
	fmt.Fprintf(&b, "<h3>%s</h3><p>%s</p>", html.EscapeString(notice.Subject), html.EscapeString(notice.Body))
	fmt.Fprintf(&b, "<h3>Suggested resolution</h3><pre>%s</pre>", html.EscapeString(resolutionText(notice)))
	if baseURL != "" {
		link := fmt.Sprintf("%s/api/tickets/all?source=%s", baseURL, notice.Source)
		fmt.Fprintf(&b, `<p><a href="%s">All tickets</a></p>`, html.EscapeString(link))
	}
	b.WriteString("</body></html>")
	return b.String()
}
