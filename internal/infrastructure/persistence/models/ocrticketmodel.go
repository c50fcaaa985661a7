package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/datatypes"
)

// OcrTicketFields are the ticket fields of an image-derived ticket, shared by
// both document store backends.
type OcrTicketFields struct {
	Subject          string  `json:"subject" bson:"subject"`
	OriginalBody     string  `json:"original_body" bson:"original_body"`
	ExtractedText    string  `json:"extracted_text" bson:"extracted_text"`
	FullBody         string  `json:"full_body" bson:"full_body"`
	TicketType       string  `json:"ticket_type" bson:"ticket_type"`
	Priority         string  `json:"priority" bson:"priority"`
	Resolution       *string `json:"resolution" bson:"resolution"`
	ResolutionStatus string  `json:"resolution_status" bson:"resolution_status"`
	AdminSolution    *string `json:"admin_solution" bson:"admin_solution"`
	ImageFilename    string  `json:"image_filename" bson:"image_filename"`
}

// OcrTicketDocument is the Mongo representation. The image is stored inline
// as binary.
type OcrTicketDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	OcrTicketFields  `bson:",inline"`
	ImageContentType string    `bson:"image_content_type"`
	ImageBytes       []byte    `bson:"image_bytes,omitempty"`
	Timestamp        time.Time `bson:"timestamp"`
}

// OcrTicketModel is the relational fallback for the document store: the
// ticket fields live in one JSON column next to the raw image.
type OcrTicketModel struct {
	ID               string                              `gorm:"primaryKey;size:36"`
	Document         datatypes.JSONType[OcrTicketFields] `gorm:"not null"`
	ImageContentType string                              `gorm:"size:100"`
	ImageBytes       []byte                              `gorm:"not null"`
	Timestamp        time.Time                           `gorm:"not null;index"`
}

func (OcrTicketModel) TableName() string {
	return "ocr_tickets"
}
