package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType = "Content-Type"
	HeaderXRequestID  = "X-Request-ID"

	// Content Types
	ContentTypeJSON        = "application/json"
	ContentTypeOctetStream = "application/octet-stream"

	// Context keys
	ContextKeyRequestID = "request_id"

	// Database table and collection names
	TableTickets    = "tickets"
	TableOcrTickets = "ocr_tickets"

	// Multipart form fields for image submission
	FormFieldImage         = "image"
	FormFieldSubject       = "subject"
	FormFieldBody          = "body"
	FormFieldAdminSolution = "admin_solution"
)
