package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/helpdesk-ai/helpdesk/internal/application/ticket/dto"
	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	vo "github.com/helpdesk-ai/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-ai/helpdesk/internal/shared/errors"
	"github.com/helpdesk-ai/helpdesk/internal/shared/logger"
	"github.com/helpdesk-ai/helpdesk/internal/shared/utils"
)

// ImagePathFormat is the route an image ticket's upload is served from.
const ImagePathFormat = "/api/ocr/tickets/%s/image"

type ListTicketsQuery struct {
	Page     int
	PageSize int
	// Source limits the listing to one store when set.
	Source string
}

// ListTicketsUseCase merges the newest tickets of both stores into one
// source-tagged view. Each store is paged independently.
type ListTicketsUseCase struct {
	readers  map[vo.Source]ticket.SourceReader
	renderer HTMLRenderer
	baseURL  string
	logger   logger.Interface
}

func NewListTicketsUseCase(
	textReader ticket.SourceReader,
	ocrReader ticket.SourceReader,
	renderer HTMLRenderer,
	baseURL string,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		readers: map[vo.Source]ticket.SourceReader{
			vo.SourceText:  textReader,
			vo.SourceImage: ocrReader,
		},
		renderer: renderer,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*dto.TicketListDTO, error) {
	pagination := utils.ValidatePagination(query.Page, query.PageSize)

	uc.logger.Infow("executing list tickets use case",
		"page", pagination.Page,
		"page_size", pagination.PageSize,
		"source", query.Source,
	)

	var only vo.Source
	if query.Source != "" {
		source, err := vo.NewSource(query.Source)
		if err != nil {
			return nil, errors.NewValidationError("source must be one of [text image]")
		}
		only = source
	}

	page := ticket.PageRequest{Offset: pagination.Offset(), Limit: pagination.PageSize}
	result := &dto.TicketListDTO{
		TextTickets: []*dto.TicketListItemDTO{},
		OcrTickets:  []*dto.TicketListItemDTO{},
		Page:        pagination.Page,
		PageSize:    pagination.PageSize,
	}

	if only == "" || only == vo.SourceText {
		items, total, err := uc.listSource(ctx, vo.SourceText, page)
		if err != nil {
			return nil, err
		}
		result.TextTickets = items
		result.TextTotal = total
	}

	if only == "" || only == vo.SourceImage {
		items, total, err := uc.listSource(ctx, vo.SourceImage, page)
		if err != nil {
			return nil, err
		}
		result.OcrTickets = items
		result.OcrTotal = total
	}

	result.Total = len(result.TextTickets) + len(result.OcrTickets)

	uc.logger.Infow("tickets listed successfully",
		"text_count", len(result.TextTickets),
		"ocr_count", len(result.OcrTickets),
		"text_total", result.TextTotal,
		"ocr_total", result.OcrTotal,
	)

	return result, nil
}

func (uc *ListTicketsUseCase) listSource(ctx context.Context, source vo.Source, page ticket.PageRequest) ([]*dto.TicketListItemDTO, int64, error) {
	reader, ok := uc.readers[source]
	if !ok || reader == nil {
		return []*dto.TicketListItemDTO{}, 0, nil
	}

	summaries, total, err := reader.ListSummaries(ctx, page)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "source", source, "error", err)
		return nil, 0, errors.NewStorageError("failed to list tickets", source.String())
	}

	items := make([]*dto.TicketListItemDTO, 0, len(summaries))
	for _, summary := range summaries {
		if summary == nil {
			continue
		}
		summary.Source = source

		item := dto.ToTicketListItemDTO(summary)
		item.ResolutionHTML = uc.renderResolution(summary)
		if source == vo.SourceImage {
			url := uc.baseURL + fmt.Sprintf(ImagePathFormat, summary.ID)
			item.ImageURL = &url
		}
		items = append(items, item)
	}

	return items, total, nil
}

func (uc *ListTicketsUseCase) renderResolution(s *ticket.Summary) *string {
	if uc.renderer == nil || s.Resolution == nil || s.ResolutionStatus != vo.ResolutionGenerated {
		return nil
	}

	html, err := uc.renderer.ToHTMLSanitized(*s.Resolution)
	if err != nil {
		uc.logger.Warnw("failed to render resolution", "ticket_id", s.ID, "error", err)
		return nil
	}
	return &html
}
