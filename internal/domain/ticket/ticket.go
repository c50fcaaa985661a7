package ticket

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/helpdesk-ai/helpdesk/internal/domain/ticket/valueobjects"
)

// Ticket is a typed-in ticket kept in the relational store.
type Ticket struct {
	id               uint
	subject          string
	body             string
	ticketType       string
	priority         string
	resolution       *string
	resolutionStatus vo.ResolutionStatus
	adminSolution    *string
	createdAt        time.Time
}

func NewTicket(
	subject string,
	body string,
	classification Classification,
	resolution *string,
	resolutionStatus vo.ResolutionStatus,
	adminSolution *string,
) (*Ticket, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, fmt.Errorf("subject is required")
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("body is required")
	}
	if classification.Category == "" || classification.Priority == "" {
		return nil, fmt.Errorf("classification is incomplete")
	}
	if !resolutionStatus.IsValid() {
		return nil, fmt.Errorf("invalid resolution status")
	}

	return &Ticket{
		subject:          subject,
		body:             body,
		ticketType:       classification.Category,
		priority:         classification.Priority,
		resolution:       resolution,
		resolutionStatus: resolutionStatus,
		adminSolution:    NormalizeAdminSolution(adminSolution),
		createdAt:        time.Now().UTC(),
	}, nil
}

func ReconstructTicket(
	id uint,
	subject string,
	body string,
	ticketType string,
	priority string,
	resolution *string,
	resolutionStatus vo.ResolutionStatus,
	adminSolution *string,
	createdAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !resolutionStatus.IsValid() {
		// Rows written before the status column existed.
		resolutionStatus = inferResolutionStatus(resolution)
	}

	return &Ticket{
		id:               id,
		subject:          subject,
		body:             body,
		ticketType:       ticketType,
		priority:         priority,
		resolution:       resolution,
		resolutionStatus: resolutionStatus,
		adminSolution:    adminSolution,
		createdAt:        createdAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) Subject() string                       { return t.subject }
func (t *Ticket) Body() string                          { return t.body }
func (t *Ticket) TicketType() string                    { return t.ticketType }
func (t *Ticket) Priority() string                      { return t.priority }
func (t *Ticket) Resolution() *string                   { return t.resolution }
func (t *Ticket) ResolutionStatus() vo.ResolutionStatus { return t.resolutionStatus }
func (t *Ticket) AdminSolution() *string                { return t.adminSolution }
func (t *Ticket) CreatedAt() time.Time                  { return t.createdAt }

// SetCreatedAt adopts the timestamp assigned by the store on insert.
func (t *Ticket) SetCreatedAt(ts time.Time) {
	if !ts.IsZero() {
		t.createdAt = ts
	}
}

// NormalizeAdminSolution maps a missing or blank operator note to nil so
// that "no note" is never stored as an empty string.
func NormalizeAdminSolution(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}

func inferResolutionStatus(resolution *string) vo.ResolutionStatus {
	if resolution == nil || strings.HasPrefix(*resolution, ResolutionErrorPrefix) {
		return vo.ResolutionFailed
	}
	return vo.ResolutionGenerated
}
