package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "empty",
			input:    "",
			contains: []string{""},
		},
		{
			name:     "paragraphs",
			input:    "High-end furniture projects are great to dream about.\r\n\r\nBut unless you have room for them...",
			contains: []string{"<p>High-end furniture projects are great to dream about.</p>", "<p>But unless"},
		},
		{
			name:     "materials list",
			input:    "* 1/2 x 3/4 inch parting strip\n* 1 x 2 common pine\n",
			contains: []string{"<ul>", "<li>1/2 x 3/4 inch parting strip</li>", "<li>1 x 2 common pine</li>"},
		},
		{
			name:     "emphasis",
			input:    "**bold** and _italic_",
			contains: []string{"<strong>bold</strong>", "<em>italic</em>"},
		},
		{
			name:     "raw html is not rendered",
			input:    "hello <script>alert('xss')</script>",
			excludes: []string{"<script"},
		},
		{
			name:     "links are made safe",
			input:    "see https://example.com",
			contains: []string{`href="https://example.com"`, `target="_blank"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := RenderMarkdown(tt.input)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}
