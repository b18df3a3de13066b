package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTMLSanitized(t *testing.T) {
	svc := NewMarkdownService()

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "emphasis and lists",
			input:    "Leak under **sink**\n\n- valve\n- pipe",
			contains: []string{"<strong>sink</strong>", "<li>valve</li>"},
		},
		{
			name:     "hard line breaks",
			input:    "first line\nsecond line",
			contains: []string{"<br />"},
		},
		{
			name:     "script stripped",
			input:    "hello <script>alert(1)</script>",
			excludes: []string{"<script", "alert(1)</script>"},
		},
		{
			name:     "external links are nofollow",
			input:    "[manual](https://example.com/manual.pdf)",
			contains: []string{`href="https://example.com/manual.pdf"`, `rel="nofollow`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := svc.ToHTMLSanitized(tt.input)
			require.NoError(t, err)
			for _, c := range tt.contains {
				assert.Contains(t, out, c)
			}
			for _, e := range tt.excludes {
				assert.NotContains(t, out, e)
			}
		})
	}
}
