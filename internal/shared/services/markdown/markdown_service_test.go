package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownService_ToHTMLSanitized(t *testing.T) {
	svc := NewMarkdownService()

	tests := []struct {
		name       string
		input      string
		contains   []string
		notContain []string
	}{
		{
			name:     "numbered steps",
			input:    "1. Restart the VPN client\n2. Re-enter your credentials",
			contains: []string{"<ol>", "<li>Restart the VPN client</li>"},
		},
		{
			name:     "bold warning",
			input:    "**Back up your files** before reinstalling.",
			contains: []string{"<strong>Back up your files</strong>"},
		},
		{
			name:       "script is stripped",
			input:      "Try this <script>alert('x')</script> fix",
			contains:   []string{"Try this"},
			notContain: []string{"<script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := svc.ToHTMLSanitized(tt.input)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notContain {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}
