package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		absent   []string
	}{
		{
			name:     "heading gets an id",
			input:    "## Our Plan",
			contains: []string{`<h2 id="our-plan">Our Plan</h2>`},
		},
		{
			name:     "emphasis",
			input:    "a **bold** move",
			contains: []string{"<strong>bold</strong>"},
		},
		{
			name:     "gfm table",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "gfm autolink",
			input:    "see https://example.com today",
			contains: []string{`<a href="https://example.com">`},
		},
		{
			name:     "raw html is omitted",
			input:    "before\n\n<script>alert(1)</script>\n\nafter",
			contains: []string{"before", "after"},
			absent:   []string{"<script>"},
		},
		{
			name:   "inline html is omitted",
			input:  `click <a href="javascript:alert(1)">here</a>`,
			absent: []string{"javascript:"},
		},
		{
			name:     "fenced code is highlighted",
			input:    "```go\nfunc main() {}\n```",
			contains: []string{"<pre", "func"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.input)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(got, bad) {
					t.Errorf("output should not contain %q:\n%s", bad, got)
				}
			}
		})
	}
}

func TestRender(t *testing.T) {
	got, err := Render("plain *text*")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(got), "<em>text</em>") {
		t.Errorf("Render() = %q", got)
	}
}
