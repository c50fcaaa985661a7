package ticket

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/helpdesk-ai/helpdesk/internal/domain/ticket/valueobjects"
)

// Image is an uploaded screenshot kept inline with its ticket.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// OcrTicket is an image-derived ticket kept in the document store.
type OcrTicket struct {
	id               string
	subject          string
	originalBody     string
	extractedText    string
	fullBody         string
	ticketType       string
	priority         string
	resolution       *string
	resolutionStatus vo.ResolutionStatus
	adminSolution    *string
	image            Image
	timestamp        time.Time
}

// ComposeFullBody joins the typed body and the recognized text with a single
// space. The separator is kept even when nothing was recognized.
func ComposeFullBody(originalBody, extractedText string) string {
	return originalBody + " " + extractedText
}

func NewOcrTicket(
	subject string,
	originalBody string,
	extractedText string,
	classification Classification,
	resolution *string,
	resolutionStatus vo.ResolutionStatus,
	adminSolution *string,
	image Image,
) (*OcrTicket, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, fmt.Errorf("subject is required")
	}
	if strings.TrimSpace(originalBody) == "" {
		return nil, fmt.Errorf("body is required")
	}
	if classification.Category == "" || classification.Priority == "" {
		return nil, fmt.Errorf("classification is incomplete")
	}
	if !resolutionStatus.IsValid() {
		return nil, fmt.Errorf("invalid resolution status")
	}
	if len(image.Data) == 0 {
		return nil, fmt.Errorf("image is required")
	}

	return &OcrTicket{
		subject:          subject,
		originalBody:     originalBody,
		extractedText:    extractedText,
		fullBody:         ComposeFullBody(originalBody, extractedText),
		ticketType:       classification.Category,
		priority:         classification.Priority,
		resolution:       resolution,
		resolutionStatus: resolutionStatus,
		adminSolution:    NormalizeAdminSolution(adminSolution),
		image:            image,
		timestamp:        time.Now().UTC(),
	}, nil
}

// ReconstructOcrTicket rebuilds a stored document. The image may be absent
// when the caller projected it away.
func ReconstructOcrTicket(
	id string,
	subject string,
	originalBody string,
	extractedText string,
	fullBody string,
	ticketType string,
	priority string,
	resolution *string,
	resolutionStatus vo.ResolutionStatus,
	adminSolution *string,
	image Image,
	timestamp time.Time,
) (*OcrTicket, error) {
	if id == "" {
		return nil, fmt.Errorf("ocr ticket ID cannot be empty")
	}
	if !resolutionStatus.IsValid() {
		resolutionStatus = inferResolutionStatus(resolution)
	}

	return &OcrTicket{
		id:               id,
		subject:          subject,
		originalBody:     originalBody,
		extractedText:    extractedText,
		fullBody:         fullBody,
		ticketType:       ticketType,
		priority:         priority,
		resolution:       resolution,
		resolutionStatus: resolutionStatus,
		adminSolution:    adminSolution,
		image:            image,
		timestamp:        timestamp,
	}, nil
}

func (t *OcrTicket) ID() string {
	return t.id
}

func (t *OcrTicket) SetID(id string) error {
	if t.id != "" {
		return fmt.Errorf("ocr ticket ID already set")
	}
	if id == "" {
		return fmt.Errorf("ocr ticket ID cannot be empty")
	}
	t.id = id
	return nil
}

func (t *OcrTicket) Subject() string {
	return t.subject
}

func (t *OcrTicket) OriginalBody() string {
	return t.originalBody
}

func (t *OcrTicket) ExtractedText() string {
	return t.extractedText
}

func (t *OcrTicket) FullBody() string {
	return t.fullBody
}

func (t *OcrTicket) TicketType() string {
	return t.ticketType
}

func (t *OcrTicket) Priority() string {
	return t.priority
}

func (t *OcrTicket) Resolution() *string {
	return t.resolution
}

func (t *OcrTicket) ResolutionStatus() vo.ResolutionStatus {
	return t.resolutionStatus
}

func (t *OcrTicket) AdminSolution() *string {
	return t.adminSolution
}

func (t *OcrTicket) Image() Image {
	return t.image
}

func (t *OcrTicket) Timestamp() time.Time {
	return t.timestamp
}
