package usecases

import (
	"context"
	"time"

	"github.com/helpdesk-ai/helpdesk/internal/application/ticket/dto"
	"github.com/helpdesk-ai/helpdesk/internal/shared/goroutine"
	"github.com/helpdesk-ai/helpdesk/internal/shared/logger"
)

const escalationTimeout = 30 * time.Second

// EscalationNotice describes a stored ticket for the helpdesk inbox.
type EscalationNotice struct {
	TicketID         string
	Source           string
	Subject          string
	Body             string
	TicketType       string
	Priority         string
	Resolution       *string
	ResolutionStatus string
}

func newEscalationNotice(s *dto.SubmissionDTO) EscalationNotice {
	return EscalationNotice{
		TicketID:         s.ID,
		Source:           s.Source,
		Subject:          s.Subject,
		Body:             s.Body,
		TicketType:       s.TicketType,
		Priority:         s.Priority,
		Resolution:       s.Resolution,
		ResolutionStatus: s.ResolutionStatus,
	}
}

// dispatchEscalation hands the notice to the notifier in the background. The
// submission has already succeeded, so failures are only logged.
func dispatchEscalation(ctx context.Context, notifier EscalationNotifier, log logger.Interface, s *dto.SubmissionDTO) {
	if notifier == nil {
		return
	}

	notice := newEscalationNotice(s)
	bgCtx := context.WithoutCancel(ctx)
	goroutine.SafeGo(log, "escalation-notify", func() {
		notifyCtx, cancel := context.WithTimeout(bgCtx, escalationTimeout)
		defer cancel()

		if err := notifier.NotifyEscalation(notifyCtx, notice); err != nil {
			log.Warnw("failed to send escalation notice",
				"ticket_id", notice.TicketID,
				"source", notice.Source,
				"error", err,
			)
		}
	})
}
