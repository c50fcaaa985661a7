package genai

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
)

func TestPrompt_Render(t *testing.T) {
	out := DefaultPrompt().Render(ticket.ResolutionRequest{
		Subject:    "VPN down",
		Body:       "Cannot connect since 9am",
		TicketType: "software",
		Priority:   "high",
	})

	assert.True(t, strings.HasPrefix(out, "You are a professional IT support assistant."))
	assert.Contains(t, out, "Type: software\n")
	assert.Contains(t, out, "Priority: high\n")
	assert.Contains(t, out, "Subject: VPN down\n")
	assert.Contains(t, out, "Description:\nCannot connect since 9am\n")
	assert.Contains(t, out, "1. Begin with a short acknowledgment.\n")
	assert.Contains(t, out, "5. If it cannot be resolved without expert help")
	assert.True(t, strings.HasSuffix(out, "Now, write the resolution:\n"))
}

func TestLoadPrompt(t *testing.T) {
	def, err := LoadPrompt("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPrompt(), def)

	path := filepath.Join(t.TempDir(), "prompt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
system: You are a terse assistant.
instructions:
  - Answer in one sentence.
`), 0o600))

	p, err := LoadPrompt(path)
	require.NoError(t, err)
	assert.Equal(t, "You are a terse assistant.", p.System)
	assert.Equal(t, []string{"Answer in one sentence."}, p.Instructions)
	assert.Equal(t, DefaultPrompt().Role, p.Role)
	assert.Equal(t, DefaultPrompt().Closing, p.Closing)

	_, err = LoadPrompt(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("instructions: [unclosed"), 0o600))
	_, err = LoadPrompt(bad)
	assert.Error(t, err)
}
