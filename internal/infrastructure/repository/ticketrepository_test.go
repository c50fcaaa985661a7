package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	vo "github.com/helpdesk-ai/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/persistence/models"
	"github.com/helpdesk-ai/helpdesk/internal/shared/db"
)

func TestTicketRepository_Save(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	t.Run("assigns monotonic ids", func(t *testing.T) {
		first := newTestTicket(t, "Printer not working")
		second := newTestTicket(t, "Printer still not working")

		require.NoError(t, repo.Save(ctx, first))
		require.NoError(t, repo.Save(ctx, second))

		assert.NotZero(t, first.ID())
		assert.Greater(t, second.ID(), first.ID())
		assert.False(t, first.CreatedAt().IsZero())
	})

	t.Run("persists every column", func(t *testing.T) {
		tk, err := ticket.NewTicket(
			"VPN down",
			"Cannot connect since morning",
			ticket.Classification{Category: "network", Priority: "high"},
			nil,
			vo.ResolutionFailed,
			strPtr("reset the token"),
		)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, tk))

		var row models.TicketModel
		require.NoError(t, gdb.First(&row, tk.ID()).Error)
		assert.Equal(t, "VPN down", row.Subject)
		assert.Equal(t, "Cannot connect since morning", row.Body)
		assert.Equal(t, "network", row.TicketType)
		assert.Equal(t, "high", row.Priority)
		assert.Nil(t, row.Resolution)
		assert.Equal(t, "failed", row.ResolutionStatus)
		require.NotNil(t, row.AdminSolution)
		assert.Equal(t, "reset the token", *row.AdminSolution)
	})

	t.Run("uses transaction from context", func(t *testing.T) {
		var before int64
		require.NoError(t, gdb.Model(&models.TicketModel{}).Count(&before).Error)

		tx := gdb.Begin()
		require.NoError(t, repo.Save(db.WithTx(ctx, tx), newTestTicket(t, "rolled back")))
		require.NoError(t, tx.Rollback().Error)

		var after int64
		require.NoError(t, gdb.Model(&models.TicketModel{}).Count(&after).Error)
		assert.Equal(t, before, after)
	})
}

func TestTicketRepository_ListSummaries(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		row := &models.TicketModel{
			Subject:          fmt.Sprintf("ticket %d", i),
			Body:             "body",
			TicketType:       "software",
			Priority:         "low",
			Resolution:       strPtr("steps"),
			ResolutionStatus: "generated",
			CreatedAt:        base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, gdb.Create(row).Error)
	}
	// Legacy row without a status column value and with the sentinel text.
	legacy := &models.TicketModel{
		Subject:    "legacy",
		Body:       "body",
		TicketType: "software",
		Priority:   "low",
		Resolution: strPtr(ticket.ResolutionErrorPrefix + "timeout"),
		CreatedAt:  base.Add(-time.Hour),
	}
	require.NoError(t, gdb.Create(legacy).Error)

	assert.Equal(t, vo.SourceText, repo.Source())

	t.Run("newest first with total", func(t *testing.T) {
		items, total, err := repo.ListSummaries(ctx, ticket.PageRequest{Offset: 0, Limit: 2})
		require.NoError(t, err)

		assert.Equal(t, int64(6), total)
		require.Len(t, items, 2)
		assert.Equal(t, "ticket 4", items[0].Subject)
		assert.Equal(t, "ticket 3", items[1].Subject)
		assert.Equal(t, vo.SourceText, items[0].Source)
		assert.Equal(t, vo.ResolutionGenerated, items[0].ResolutionStatus)
	})

	t.Run("offset window", func(t *testing.T) {
		items, _, err := repo.ListSummaries(ctx, ticket.PageRequest{Offset: 4, Limit: 10})
		require.NoError(t, err)

		require.Len(t, items, 2)
		assert.Equal(t, "ticket 0", items[0].Subject)
		assert.Equal(t, "legacy", items[1].Subject)
		assert.Equal(t, vo.ResolutionFailed, items[1].ResolutionStatus)
		assert.Equal(t, fmt.Sprint(legacy.ID), items[1].ID)
	})

	t.Run("past the end is empty", func(t *testing.T) {
		items, total, err := repo.ListSummaries(ctx, ticket.PageRequest{Offset: 50, Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Equal(t, int64(6), total)
	})
}
