package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	vo "github.com/helpdesk-ai/helpdesk/internal/domain/ticket/valueobjects"
)

func TestSQLOcrTicketRepository_SaveAndGetImage(t *testing.T) {
	repo := NewSQLOcrTicketRepository(setupTestDB(t))
	ctx := context.Background()

	tk := newTestOcrTicket(t, "Installer error")
	require.NoError(t, repo.Save(ctx, tk))

	_, err := uuid.Parse(tk.ID())
	require.NoError(t, err)

	t.Run("image round trips byte for byte", func(t *testing.T) {
		image, err := repo.GetImage(ctx, tk.ID())
		require.NoError(t, err)
		assert.Equal(t, tk.Image().Data, image.Data)
		assert.Equal(t, "image/png", image.ContentType)
		assert.Equal(t, "error.png", image.Filename)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.GetImage(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ticket.ErrTicketNotFound)
	})
}

func TestSQLOcrTicketRepository_ListSummaries(t *testing.T) {
	repo := NewSQLOcrTicketRepository(setupTestDB(t))
	ctx := context.Background()

	var saved []*ticket.OcrTicket
	for i := 0; i < 3; i++ {
		tk := newTestOcrTicket(t, fmt.Sprintf("screenshot %d", i))
		require.NoError(t, repo.Save(ctx, tk))
		saved = append(saved, tk)
	}

	assert.Equal(t, vo.SourceImage, repo.Source())

	items, total, err := repo.ListSummaries(ctx, ticket.PageRequest{Offset: 0, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(3), total)
	require.Len(t, items, 3)

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
		assert.Equal(t, vo.SourceImage, item.Source)
		assert.Equal(t, "see screenshot ERROR 0x80070005", item.Body)
		assert.Equal(t, "ERROR 0x80070005", item.ExtractedText)
		assert.Equal(t, "error.png", item.ImageFilename)
		assert.Equal(t, "high", item.Priority)
		require.NotNil(t, item.AdminSolution)
		assert.Equal(t, "escalated to desktop team", *item.AdminSolution)
	}
	for _, tk := range saved {
		assert.Contains(t, ids, tk.ID())
	}

	page, _, err := repo.ListSummaries(ctx, ticket.PageRequest{Offset: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page, 1)
}
