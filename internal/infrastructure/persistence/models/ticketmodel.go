package models

import "time"

// TicketModel is a typed-in ticket row. Resolution is NULL when generation
// failed and the null failure mode is configured.
type TicketModel struct {
	ID               uint      `gorm:"primaryKey"`
	Subject          string    `gorm:"type:text;not null"`
	Body             string    `gorm:"type:text;not null"`
	TicketType       string    `gorm:"size:100;not null"`
	Priority         string    `gorm:"size:50;not null;index"`
	Resolution       *string   `gorm:"type:text"`
	ResolutionStatus string    `gorm:"size:16"`
	AdminSolution    *string   `gorm:"type:text"`
	CreatedAt        time.Time `gorm:"autoCreateTime;not null;index"`
}

func (TicketModel) TableName() string {
	return "tickets"
}

// TicketSummaryColumns are the columns read for listings.
var TicketSummaryColumns = []string{
	"id", "subject", "body", "ticket_type", "priority",
	"resolution", "resolution_status", "admin_solution", "created_at",
}
