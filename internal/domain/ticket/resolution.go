package ticket

import (
	vo "github.com/helpdesk-ai/helpdesk/internal/domain/ticket/valueobjects"
)

// ResolutionErrorPrefix starts every stand-in text stored for a failed generation.
const ResolutionErrorPrefix = "Error: Failed to generate resolution due to API error: "

// ResolutionRequest carries the ticket fields the generator sees.
type ResolutionRequest struct {
	Subject    string
	Body       string
	TicketType string
	Priority   string
}

// Resolution is the outcome of one generation attempt. A failed attempt is a
// value, not an error: the ticket is stored either way.
type Resolution struct {
	status        vo.ResolutionStatus
	text          string
	failureReason string
}

func GeneratedResolution(text string) Resolution {
	return Resolution{status: vo.ResolutionGenerated, text: text}
}

func FailedResolution(reason string) Resolution {
	return Resolution{status: vo.ResolutionFailed, failureReason: reason}
}

func (r Resolution) Status() vo.ResolutionStatus {
	return r.status
}

func (r Resolution) Text() string {
	return r.text
}

func (r Resolution) FailureReason() string {
	return r.failureReason
}

func (r Resolution) IsGenerated() bool {
	return r.status == vo.ResolutionGenerated
}

// Stored returns the text to persist. A failed resolution becomes the
// deterministic sentinel text, or nil when storeNull is set.
func (r Resolution) Stored(storeNull bool) *string {
	if r.IsGenerated() {
		text := r.text
		return &text
	}
	if storeNull {
		return nil
	}
	text := ResolutionErrorPrefix + r.failureReason
	return &text
}
