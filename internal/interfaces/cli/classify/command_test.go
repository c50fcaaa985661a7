package classify

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T) string {
	t.Helper()

	modelDir, err := filepath.Abs("../../../infrastructure/classifier/testdata/priority")
	require.NoError(t, err)

	content := `
logger:
  level: error
database:
  driver: sqlite
  dsn: "file::memory:"
document_store:
  driver: sql
classifier:
  model_dir: "` + filepath.ToSlash(modelDir) + `"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestClassifyCommand(t *testing.T) {
	color.NoColor = true
	configFile := writeConfig(t)

	tests := []struct {
		name         string
		subject      string
		body         string
		wantPriority string
	}{
		{name: "outage", subject: "Server outage", body: "Production server is unreachable", wantPriority: "high"},
		{name: "printer", subject: "Printer", body: "The printer on floor 2 jams", wantPriority: "low"},
		{name: "unknown terms", subject: "Question", body: "How do I change my wallpaper?", wantPriority: "medium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewCommand()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetArgs([]string{"--config", configFile, "--subject", tt.subject, "--body", tt.body})

			require.NoError(t, cmd.Execute())

			assert.Equal(t, "ticket_type: software\npriority:    "+tt.wantPriority+"\n", out.String())
		})
	}
}

func TestClassifyCommand_RequiresFlags(t *testing.T) {
	cmd := NewCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", writeConfig(t), "--subject", "VPN"})

	err := cmd.Execute()

	assert.ErrorContains(t, err, `required flag(s) "body" not set`)
}

func TestClassifyCommand_MissingArtifacts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logger:
  level: error
database:
  driver: sqlite
  dsn: "file::memory:"
document_store:
  driver: sql
classifier:
  model_dir: "`+filepath.ToSlash(t.TempDir())+`"
`), 0o600))

	cmd := NewCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path, "--subject", "VPN", "--body", "down"})

	err := cmd.Execute()

	assert.ErrorContains(t, err, "failed to load classifier")
}
