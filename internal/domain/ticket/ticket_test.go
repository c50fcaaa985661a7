package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/helpdesk-ai/helpdesk/internal/domain/ticket/valueobjects"
)

func strPtr(s string) *string {
	return &s
}

func validClassification() Classification {
	return Classification{Category: "software", Priority: "high"}
}

func TestNewTicket(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		body    string
		cls     Classification
		status  vo.ResolutionStatus
		wantErr string
	}{
		{name: "valid", subject: "VPN down", body: "Cannot connect", cls: validClassification(), status: vo.ResolutionGenerated},
		{name: "blank subject", subject: "   ", body: "Cannot connect", cls: validClassification(), status: vo.ResolutionGenerated, wantErr: "subject is required"},
		{name: "empty body", subject: "VPN down", body: "", cls: validClassification(), status: vo.ResolutionGenerated, wantErr: "body is required"},
		{name: "missing priority", subject: "VPN down", body: "x", cls: Classification{Category: "software"}, status: vo.ResolutionGenerated, wantErr: "classification is incomplete"},
		{name: "bad status", subject: "VPN down", body: "x", cls: validClassification(), status: "unknown", wantErr: "invalid resolution status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk, err := NewTicket(tt.subject, tt.body, tt.cls, strPtr("Restart the client"), tt.status, nil)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.subject, tk.Subject())
			assert.Equal(t, "software", tk.TicketType())
			assert.Equal(t, "high", tk.Priority())
			assert.Zero(t, tk.ID())
			assert.False(t, tk.CreatedAt().IsZero())
		})
	}
}

func TestNewTicket_AdminSolution(t *testing.T) {
	tests := []struct {
		name  string
		input *string
		want  *string
	}{
		{name: "absent stays nil", input: nil, want: nil},
		{name: "empty becomes nil", input: strPtr(""), want: nil},
		{name: "whitespace becomes nil", input: strPtr("  \n"), want: nil},
		{name: "value kept", input: strPtr("Reset the token"), want: strPtr("Reset the token")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk, err := NewTicket("s", "b", validClassification(), nil, vo.ResolutionFailed, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tk.AdminSolution())
		})
	}
}

func TestTicket_SetID(t *testing.T) {
	tk, err := NewTicket("s", "b", validClassification(), nil, vo.ResolutionFailed, nil)
	require.NoError(t, err)

	assert.Error(t, tk.SetID(0))
	require.NoError(t, tk.SetID(5))
	assert.Equal(t, uint(5), tk.ID())
	assert.Error(t, tk.SetID(6))
}

func TestReconstructTicket_InfersLegacyStatus(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	ok, err := ReconstructTicket(1, "s", "b", "software", "low", strPtr("Reboot"), "", nil, created)
	require.NoError(t, err)
	assert.Equal(t, vo.ResolutionGenerated, ok.ResolutionStatus())

	failed, err := ReconstructTicket(2, "s", "b", "software", "low", strPtr(ResolutionErrorPrefix+"timeout"), "", nil, created)
	require.NoError(t, err)
	assert.Equal(t, vo.ResolutionFailed, failed.ResolutionStatus())

	_, err = ReconstructTicket(0, "s", "b", "software", "low", nil, vo.ResolutionFailed, nil, created)
	assert.Error(t, err)
}

func TestResolution_Stored(t *testing.T) {
	generated := GeneratedResolution("1. Restart the router")
	require.NotNil(t, generated.Stored(true))
	assert.Equal(t, "1. Restart the router", *generated.Stored(false))
	assert.Equal(t, vo.ResolutionGenerated, generated.Status())

	failed := FailedResolution("status 503")
	assert.Nil(t, failed.Stored(true))
	stored := failed.Stored(false)
	require.NotNil(t, stored)
	assert.Equal(t, "Error: Failed to generate resolution due to API error: status 503", *stored)
	assert.Equal(t, vo.ResolutionFailed, failed.Status())
	assert.False(t, failed.IsGenerated())
}

func TestNewOcrTicket(t *testing.T) {
	img := Image{Filename: "shot.png", ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}

	tk, err := NewOcrTicket("Printer", "It jams", "PAPER JAM E04", validClassification(), strPtr("Open tray 2"), vo.ResolutionGenerated, strPtr(""), img)
	require.NoError(t, err)
	assert.Equal(t, "It jams PAPER JAM E04", tk.FullBody())
	assert.Equal(t, tk.OriginalBody()+" "+tk.ExtractedText(), tk.FullBody())
	assert.Nil(t, tk.AdminSolution())
	assert.Equal(t, img, tk.Image())

	empty, err := NewOcrTicket("Printer", "It jams", "", validClassification(), nil, vo.ResolutionFailed, nil, img)
	require.NoError(t, err)
	assert.Equal(t, "It jams ", empty.FullBody())

	_, err = NewOcrTicket("Printer", "It jams", "", validClassification(), nil, vo.ResolutionFailed, nil, Image{})
	assert.Error(t, err)
}

func TestNewClassification(t *testing.T) {
	cls, err := NewClassification(" hardware ", "medium")
	require.NoError(t, err)
	assert.Equal(t, Classification{Category: "hardware", Priority: "medium"}, cls)

	_, err = NewClassification("", "medium")
	assert.Error(t, err)
	_, err = NewClassification("hardware", " ")
	assert.Error(t, err)
}
