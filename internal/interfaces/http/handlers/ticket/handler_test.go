package ticket

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-ai/helpdesk/internal/application/ticket/dto"
	"github.com/helpdesk-ai/helpdesk/internal/application/ticket/usecases"
	ticketdomain "github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	"github.com/helpdesk-ai/helpdesk/internal/interfaces/http/handlers/testutil"
	"github.com/helpdesk-ai/helpdesk/internal/shared/constants"
	"github.com/helpdesk-ai/helpdesk/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockSubmitTicketUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.SubmitTicketCommand) (*dto.SubmissionDTO, error)
	lastCmd     *usecases.SubmitTicketCommand
}

func (m *mockSubmitTicketUC) Execute(ctx context.Context, cmd usecases.SubmitTicketCommand) (*dto.SubmissionDTO, error) {
	m.lastCmd = &cmd
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return nil, nil
}

type mockSubmitImageTicketUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.SubmitImageTicketCommand) (*dto.SubmissionDTO, error)
	lastCmd     *usecases.SubmitImageTicketCommand
}

func (m *mockSubmitImageTicketUC) Execute(ctx context.Context, cmd usecases.SubmitImageTicketCommand) (*dto.SubmissionDTO, error) {
	m.lastCmd = &cmd
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return nil, nil
}

type mockListTicketsUC struct {
	ExecuteFunc func(ctx context.Context, query usecases.ListTicketsQuery) (*dto.TicketListDTO, error)
	lastQuery   *usecases.ListTicketsQuery
}

func (m *mockListTicketsUC) Execute(ctx context.Context, query usecases.ListTicketsQuery) (*dto.TicketListDTO, error) {
	m.lastQuery = &query
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, query)
	}
	return &dto.TicketListDTO{}, nil
}

type mockGetTicketImageUC struct {
	ExecuteFunc func(ctx context.Context, query usecases.GetTicketImageQuery) (*ticketdomain.Image, error)
}

func (m *mockGetTicketImageUC) Execute(ctx context.Context, query usecases.GetTicketImageQuery) (*ticketdomain.Image, error) {
	return m.ExecuteFunc(ctx, query)
}

// =====================================================================
// Helpers
// =====================================================================

type testDeps struct {
	submitUC      *mockSubmitTicketUC
	submitImageUC *mockSubmitImageTicketUC
	listUC        *mockListTicketsUC
	imageUC       *mockGetTicketImageUC
}

func newTestHandler(maxImageBytes int64) (*TicketHandler, *testDeps) {
	deps := &testDeps{
		submitUC:      &mockSubmitTicketUC{},
		submitImageUC: &mockSubmitImageTicketUC{},
		listUC:        &mockListTicketsUC{},
		imageUC:       &mockGetTicketImageUC{},
	}
	h := NewTicketHandler(
		deps.submitUC,
		deps.submitImageUC,
		deps.listUC,
		deps.imageUC,
		maxImageBytes,
		testutil.NewMockLogger(),
	)
	return h, deps
}

func strPtr(s string) *string { return &s }

func sampleSubmission() *dto.SubmissionDTO {
	return &dto.SubmissionDTO{
		ID:               "1",
		Source:           "text",
		Subject:          "VPN down",
		Body:             "Cannot connect since morning",
		TicketType:       "Incident",
		Priority:         "high",
		Resolution:       strPtr("Restart the VPN client."),
		ResolutionStatus: "generated",
		CreatedAt:        time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

// pngHeader is enough for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

// =====================================================================
// SubmitTicket
// =====================================================================

func TestTicketHandler_SubmitTicket(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		execErr    error
		wantStatus int
		wantType   string
		wantCalled bool
	}{
		{
			name:       "created",
			body:       map[string]any{"subject": "VPN down", "body": "Cannot connect since morning"},
			wantStatus: http.StatusCreated,
			wantCalled: true,
		},
		{
			name:       "missing subject",
			body:       map[string]any{"body": "Cannot connect"},
			wantStatus: http.StatusBadRequest,
			wantType:   string(errors.ErrorTypeValidation),
		},
		{
			name:       "empty body",
			body:       map[string]any{"subject": "VPN down", "body": ""},
			wantStatus: http.StatusBadRequest,
			wantType:   string(errors.ErrorTypeValidation),
		},
		{
			name:       "classifier failure",
			body:       map[string]any{"subject": "VPN down", "body": "Cannot connect"},
			execErr:    errors.NewModelInferenceError("classification failed"),
			wantStatus: http.StatusInternalServerError,
			wantType:   string(errors.ErrorTypeModelInference),
			wantCalled: true,
		},
		{
			name:       "storage failure",
			body:       map[string]any{"subject": "VPN down", "body": "Cannot connect"},
			execErr:    errors.NewStorageError("failed to store ticket"),
			wantStatus: http.StatusInternalServerError,
			wantType:   string(errors.ErrorTypeStorage),
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler(0)
			deps.submitUC.ExecuteFunc = func(_ context.Context, _ usecases.SubmitTicketCommand) (*dto.SubmissionDTO, error) {
				if tt.execErr != nil {
					return nil, tt.execErr
				}
				return sampleSubmission(), nil
			}

			c, w := testutil.NewTestContext(http.MethodPost, "/api/tickets/submit", tt.body)
			h.SubmitTicket(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCalled, deps.submitUC.lastCmd != nil)

			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			if tt.wantType != "" {
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.wantType, resp.Error.Type)
				return
			}

			assert.True(t, resp.Success)
			var data dto.SubmissionDTO
			require.NoError(t, json.Unmarshal(resp.Data, &data))
			assert.Equal(t, "Incident", data.TicketType)
			assert.Equal(t, "high", data.Priority)
			assert.Equal(t, "generated", data.ResolutionStatus)
		})
	}
}

func TestTicketHandler_SubmitTicket_AdminSolution(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want *string
	}{
		{name: "absent", body: map[string]any{"subject": "s", "body": "b"}, want: nil},
		{name: "blank", body: map[string]any{"subject": "s", "body": "b", "admin_solution": "  "}, want: nil},
		{name: "present", body: map[string]any{"subject": "s", "body": "b", "admin_solution": "Reset token"}, want: strPtr("Reset token")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler(0)
			deps.submitUC.ExecuteFunc = func(_ context.Context, _ usecases.SubmitTicketCommand) (*dto.SubmissionDTO, error) {
				return sampleSubmission(), nil
			}

			c, _ := testutil.NewTestContext(http.MethodPost, "/api/tickets/submit", tt.body)
			h.SubmitTicket(c)

			require.NotNil(t, deps.submitUC.lastCmd)
			assert.Equal(t, tt.want, deps.submitUC.lastCmd.AdminSolution)
		})
	}
}

func TestTicketHandler_SubmitTicket_MalformedJSON(t *testing.T) {
	h, deps := newTestHandler(0)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/tickets/submit", nil)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.Body = io.NopCloser(strings.NewReader(`{"subject":`))

	h.SubmitTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, deps.submitUC.lastCmd)
}

// =====================================================================
// SubmitImageTicket
// =====================================================================

func TestTicketHandler_SubmitImageTicket(t *testing.T) {
	fields := map[string]string{
		constants.FormFieldSubject: "Login error",
		constants.FormFieldBody:    "See attached screenshot",
	}

	t.Run("created", func(t *testing.T) {
		h, deps := newTestHandler(1024)
		deps.submitImageUC.ExecuteFunc = func(_ context.Context, cmd usecases.SubmitImageTicketCommand) (*dto.SubmissionDTO, error) {
			result := sampleSubmission()
			result.ID = "665f1c2e8a1b2c3d4e5f6a7b"
			result.Source = "image"
			result.Body = cmd.Body + "\n\nExtracted from image:\nERROR 401"
			return result, nil
		}

		c, w := testutil.NewMultipartContext(http.MethodPost, "/api/ocr/submit-image", fields, &testutil.FormFile{
			Field:    constants.FormFieldImage,
			Filename: "screen.png",
			Data:     pngHeader,
		})
		h.SubmitImageTicket(c)

		require.Equal(t, http.StatusCreated, w.Code)
		cmd := deps.submitImageUC.lastCmd
		require.NotNil(t, cmd)
		assert.Equal(t, "Login error", cmd.Subject)
		assert.Equal(t, "See attached screenshot", cmd.Body)
		assert.Nil(t, cmd.AdminSolution)
		assert.Equal(t, "screen.png", cmd.Image.Filename)
		assert.Equal(t, "image/png", cmd.Image.ContentType)
		assert.Equal(t, pngHeader, cmd.Image.Data)
	})

	t.Run("declared content type is kept", func(t *testing.T) {
		h, deps := newTestHandler(1024)
		deps.submitImageUC.ExecuteFunc = func(_ context.Context, _ usecases.SubmitImageTicketCommand) (*dto.SubmissionDTO, error) {
			return sampleSubmission(), nil
		}

		withSolution := map[string]string{constants.FormFieldAdminSolution: "Clear cookies"}
		for k, v := range fields {
			withSolution[k] = v
		}
		c, w := testutil.NewMultipartContext(http.MethodPost, "/api/ocr/submit-image", withSolution, &testutil.FormFile{
			Field:       constants.FormFieldImage,
			Filename:    "screen.jpg",
			ContentType: "image/jpeg",
			Data:        []byte{0xff, 0xd8, 0xff, 0xe0},
		})
		h.SubmitImageTicket(c)

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, deps.submitImageUC.lastCmd)
		assert.Equal(t, "image/jpeg", deps.submitImageUC.lastCmd.Image.ContentType)
		assert.Equal(t, strPtr("Clear cookies"), deps.submitImageUC.lastCmd.AdminSolution)
	})

	t.Run("missing image", func(t *testing.T) {
		h, deps := newTestHandler(1024)

		c, w := testutil.NewMultipartContext(http.MethodPost, "/api/ocr/submit-image", fields, nil)
		h.SubmitImageTicket(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, deps.submitImageUC.lastCmd)
	})

	t.Run("missing subject", func(t *testing.T) {
		h, deps := newTestHandler(1024)

		c, w := testutil.NewMultipartContext(http.MethodPost, "/api/ocr/submit-image",
			map[string]string{constants.FormFieldBody: "body"},
			&testutil.FormFile{Field: constants.FormFieldImage, Filename: "a.png", Data: pngHeader},
		)
		h.SubmitImageTicket(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, string(errors.ErrorTypeValidation), resp.Error.Type)
		assert.Nil(t, deps.submitImageUC.lastCmd)
	})

	t.Run("image over limit", func(t *testing.T) {
		h, deps := newTestHandler(8)

		c, w := testutil.NewMultipartContext(http.MethodPost, "/api/ocr/submit-image", fields, &testutil.FormFile{
			Field:    constants.FormFieldImage,
			Filename: "big.png",
			Data:     bytes.Repeat([]byte{1}, 64),
		})
		h.SubmitImageTicket(c)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, string(errors.ErrorTypeTooLarge), resp.Error.Type)
		assert.Nil(t, deps.submitImageUC.lastCmd)
	})

	t.Run("unreadable image", func(t *testing.T) {
		h, deps := newTestHandler(1024)
		deps.submitImageUC.ExecuteFunc = func(_ context.Context, _ usecases.SubmitImageTicketCommand) (*dto.SubmissionDTO, error) {
			return nil, errors.NewOCRDecodeError("invalid image")
		}

		c, w := testutil.NewMultipartContext(http.MethodPost, "/api/ocr/submit-image", fields, &testutil.FormFile{
			Field:    constants.FormFieldImage,
			Filename: "notes.txt",
			Data:     []byte("not an image"),
		})
		h.SubmitImageTicket(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, string(errors.ErrorTypeOCRDecode), resp.Error.Type)
	})
}

// =====================================================================
// ListTickets
// =====================================================================

func TestTicketHandler_ListTickets(t *testing.T) {
	tests := []struct {
		name         string
		query        map[string]string
		wantPage     int
		wantPageSize int
		wantSource   string
	}{
		{name: "defaults", query: nil, wantPage: constants.DefaultPage, wantPageSize: constants.DefaultPageSize},
		{name: "explicit", query: map[string]string{"page": "2", "page_size": "5", "source": "image"}, wantPage: 2, wantPageSize: 5, wantSource: "image"},
		{name: "oversized page size", query: map[string]string{"page_size": "1000"}, wantPage: 1, wantPageSize: constants.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler(0)
			deps.listUC.ExecuteFunc = func(_ context.Context, q usecases.ListTicketsQuery) (*dto.TicketListDTO, error) {
				return &dto.TicketListDTO{
					TextTickets: []*dto.TicketListItemDTO{{ID: "1", Source: "text"}},
					OcrTickets:  []*dto.TicketListItemDTO{},
					Total:       1,
					Page:        q.Page,
					PageSize:    q.PageSize,
				}, nil
			}

			c, w := testutil.NewTestContext(http.MethodGet, "/api/tickets/all", nil)
			if tt.query != nil {
				testutil.SetQueryParams(c, tt.query)
			}
			h.ListTickets(c)

			require.Equal(t, http.StatusOK, w.Code)
			require.NotNil(t, deps.listUC.lastQuery)
			assert.Equal(t, tt.wantPage, deps.listUC.lastQuery.Page)
			assert.Equal(t, tt.wantPageSize, deps.listUC.lastQuery.PageSize)
			assert.Equal(t, tt.wantSource, deps.listUC.lastQuery.Source)

			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			var data dto.TicketListDTO
			require.NoError(t, json.Unmarshal(resp.Data, &data))
			assert.Equal(t, 1, data.Total)
			assert.Len(t, data.TextTickets, 1)
			assert.NotNil(t, data.OcrTickets)
		})
	}
}

func TestTicketHandler_ListTickets_Error(t *testing.T) {
	h, deps := newTestHandler(0)
	deps.listUC.ExecuteFunc = func(_ context.Context, _ usecases.ListTicketsQuery) (*dto.TicketListDTO, error) {
		return nil, errors.NewValidationError("invalid source", "source must be one of text, image")
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/tickets/all", nil)
	testutil.SetQueryParams(c, map[string]string{"source": "fax"})
	h.ListTickets(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// GetTicketImage
// =====================================================================

func TestTicketHandler_GetTicketImage(t *testing.T) {
	t.Run("returns stored bytes", func(t *testing.T) {
		h, deps := newTestHandler(0)
		deps.imageUC.ExecuteFunc = func(_ context.Context, q usecases.GetTicketImageQuery) (*ticketdomain.Image, error) {
			assert.Equal(t, "abc", q.TicketID)
			return &ticketdomain.Image{Filename: "screen.png", ContentType: "image/png", Data: pngHeader}, nil
		}

		c, w := testutil.NewTestContext(http.MethodGet, "/api/ocr/tickets/abc/image", nil)
		testutil.SetURLParam(c, "id", "abc")
		h.GetTicketImage(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "screen.png")
		assert.Equal(t, pngHeader, w.Body.Bytes())
	})

	t.Run("missing content type", func(t *testing.T) {
		h, deps := newTestHandler(0)
		deps.imageUC.ExecuteFunc = func(_ context.Context, _ usecases.GetTicketImageQuery) (*ticketdomain.Image, error) {
			return &ticketdomain.Image{Data: []byte{1, 2, 3}}, nil
		}

		c, w := testutil.NewTestContext(http.MethodGet, "/api/ocr/tickets/abc/image", nil)
		testutil.SetURLParam(c, "id", "abc")
		h.GetTicketImage(c)

		assert.Equal(t, constants.ContentTypeOctetStream, w.Header().Get("Content-Type"))
	})

	t.Run("not found", func(t *testing.T) {
		h, deps := newTestHandler(0)
		deps.imageUC.ExecuteFunc = func(_ context.Context, _ usecases.GetTicketImageQuery) (*ticketdomain.Image, error) {
			return nil, errors.NewNotFoundError("ticket not found")
		}

		c, w := testutil.NewTestContext(http.MethodGet, "/api/ocr/tickets/nope/image", nil)
		testutil.SetURLParam(c, "id", "nope")
		h.GetTicketImage(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
