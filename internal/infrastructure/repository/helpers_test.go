package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	vo "github.com/helpdesk-ai/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.TicketModel{}, &models.OcrTicketModel{}))
	return db
}

func strPtr(s string) *string {
	return &s
}

func newTestTicket(t *testing.T, subject string) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(
		subject,
		"My printer shows offline",
		ticket.Classification{Category: "hardware", Priority: "medium"},
		strPtr("1. Power cycle the printer."),
		vo.ResolutionGenerated,
		nil,
	)
	require.NoError(t, err)
	return tk
}

func newTestOcrTicket(t *testing.T, subject string) *ticket.OcrTicket {
	t.Helper()
	tk, err := ticket.NewOcrTicket(
		subject,
		"see screenshot",
		"ERROR 0x80070005",
		ticket.Classification{Category: "software", Priority: "high"},
		strPtr("1. Run the installer as administrator."),
		vo.ResolutionGenerated,
		strPtr("escalated to desktop team"),
		ticket.Image{Filename: "error.png", ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G', 1, 2, 3}},
	)
	require.NoError(t, err)
	return tk
}
