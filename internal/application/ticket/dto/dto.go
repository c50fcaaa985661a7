package dto

import (
	"strconv"
	"time"

	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	vo "github.com/helpdesk-ai/helpdesk/internal/domain/ticket/valueobjects"
)

// SubmissionDTO is returned for a newly stored ticket. For image tickets Body
// is the combined body the classifier saw.
type SubmissionDTO struct {
	ID               string    `json:"id"`
	Source           string    `json:"source"`
	Subject          string    `json:"subject"`
	Body             string    `json:"body"`
	ExtractedText    *string   `json:"extracted_text,omitempty"`
	TicketType       string    `json:"ticket_type"`
	Priority         string    `json:"priority"`
	Resolution       *string   `json:"resolution"`
	ResolutionStatus string    `json:"resolution_status"`
	AdminSolution    *string   `json:"admin_solution"`
	CreatedAt        time.Time `json:"created_at"`
}

type TicketListItemDTO struct {
	ID               string  `json:"id"`
	Source           string  `json:"source"`
	Subject          string  `json:"subject"`
	Body             string  `json:"body"`
	ExtractedText    *string `json:"extracted_text,omitempty"`
	TicketType       string  `json:"ticket_type"`
	Priority         string  `json:"priority"`
	Resolution       *string `json:"resolution"`
	ResolutionHTML   *string `json:"resolution_html,omitempty"`
	ResolutionStatus string  `json:"resolution_status"`
	AdminSolution    *string `json:"admin_solution"`
	ImageURL         *string `json:"image_url,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

// TicketListDTO is the merged listing. Total always equals the number of
// items returned on this page across both stores.
type TicketListDTO struct {
	TextTickets []*TicketListItemDTO `json:"text_tickets"`
	OcrTickets  []*TicketListItemDTO `json:"ocr_tickets"`
	Total       int                  `json:"total"`
	TextTotal   int64                `json:"text_total"`
	OcrTotal    int64                `json:"ocr_total"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"page_size"`
}

func ToTicketSubmissionDTO(t *ticket.Ticket) *SubmissionDTO {
	if t == nil {
		return nil
	}

	return &SubmissionDTO{
		ID:               strconv.FormatUint(uint64(t.ID()), 10),
		Source:           vo.SourceText.String(),
		Subject:          t.Subject(),
		Body:             t.Body(),
		TicketType:       t.TicketType(),
		Priority:         t.Priority(),
		Resolution:       t.Resolution(),
		ResolutionStatus: t.ResolutionStatus().String(),
		AdminSolution:    t.AdminSolution(),
		CreatedAt:        t.CreatedAt(),
	}
}

func ToOcrTicketSubmissionDTO(t *ticket.OcrTicket) *SubmissionDTO {
	if t == nil {
		return nil
	}

	extracted := t.ExtractedText()
	return &SubmissionDTO{
		ID:               t.ID(),
		Source:           vo.SourceImage.String(),
		Subject:          t.Subject(),
		Body:             t.FullBody(),
		ExtractedText:    &extracted,
		TicketType:       t.TicketType(),
		Priority:         t.Priority(),
		Resolution:       t.Resolution(),
		ResolutionStatus: t.ResolutionStatus().String(),
		AdminSolution:    t.AdminSolution(),
		CreatedAt:        t.Timestamp(),
	}
}

// ToTicketListItemDTO converts a store summary. The caller fills in the
// rendered resolution and image URL.
func ToTicketListItemDTO(s *ticket.Summary) *TicketListItemDTO {
	if s == nil {
		return nil
	}

	item := &TicketListItemDTO{
		ID:               s.ID,
		Source:           s.Source.String(),
		Subject:          s.Subject,
		Body:             s.Body,
		TicketType:       s.TicketType,
		Priority:         s.Priority,
		Resolution:       s.Resolution,
		ResolutionStatus: s.ResolutionStatus.String(),
		AdminSolution:    s.AdminSolution,
		CreatedAt:        s.CreatedAt.UTC().Format(time.RFC3339),
	}
	if s.Source == vo.SourceImage {
		extracted := s.ExtractedText
		item.ExtractedText = &extracted
	}
	return item
}
