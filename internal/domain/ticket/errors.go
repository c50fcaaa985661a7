package ticket

import "errors"

// Adapter failures. Infrastructure wraps these with context; the
// application layer maps them to client-facing errors with errors.Is.
var (
	ErrImageDecode      = errors.New("image could not be decoded")
	ErrOCREngine        = errors.New("ocr engine failure")
	ErrInference        = errors.New("model inference failure")
	ErrModelUnavailable = errors.New("model artifacts unavailable")
	ErrTicketNotFound   = errors.New("ticket not found")
)
