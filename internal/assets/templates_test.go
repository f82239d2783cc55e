package assets

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEntry struct {
	Word          string
	Meaning       string
	Explanation   string
	Example       string
	Pronunciation string
}

type testData struct {
	Title        string
	Entries      []testEntry
	EmptyMessage string
	ExampleLabel string
}

func TestParseWordListTemplate(t *testing.T) {
	data := testData{
		Title:        "Words",
		Entries:      []testEntry{{Word: "apple", Meaning: "fruit", Example: "An apple a day."}},
		EmptyMessage: "no words",
		ExampleLabel: "Example:",
	}

	tests := []struct {
		name                 string
		templatePath         func(t *testing.T) string
		wantTemplateName     string
		wantTemplateContents string
	}{
		{
			name: "uses filesystem template when available",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "custom.md.go.tmpl")
				content := `{{ escape .Title }}: {{ range .Entries }}{{ .Word }}={{ .Meaning }}{{ end }}`
				require.NoError(t, os.WriteFile(templatePath, []byte(content), 0644))
				return templatePath
			},
			wantTemplateName:     "custom.md.go.tmpl",
			wantTemplateContents: "Words: apple=fruit",
		},
		{
			name:                 "uses embedded template when no path is given",
			templatePath:         func(t *testing.T) string { return "" },
			wantTemplateName:     "word-list.md.go.tmpl",
			wantTemplateContents: "# Words\n\n## apple\n\nfruit\n\n**Example:** \"An apple a day.\"\n\n",
		},
		{
			name:                 "uses embedded template when file doesn't exist",
			templatePath:         func(t *testing.T) string { return "/non/existent/invalid.md.go.tmpl" },
			wantTemplateName:     "word-list.md.go.tmpl",
			wantTemplateContents: "# Words\n\n## apple\n\nfruit\n\n**Example:** \"An apple a day.\"\n\n",
		},
		{
			name: "uses embedded template when filesystem template is invalid",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "invalid.md.go.tmpl")
				require.NoError(t, os.WriteFile(templatePath, []byte(`Bad: {{ .Unclosed`), 0644))
				return templatePath
			},
			wantTemplateName:     "word-list.md.go.tmpl",
			wantTemplateContents: "# Words\n\n## apple\n\nfruit\n\n**Example:** \"An apple a day.\"\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := ParseWordListTemplate(tt.templatePath(t))
			require.NoError(t, err)
			assert.Equal(t, tt.wantTemplateName, tmpl.Name())

			var buf bytes.Buffer
			require.NoError(t, tmpl.Execute(&buf, data))
			assert.Equal(t, tt.wantTemplateContents, buf.String())
		})
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text", input: "ябълка", want: "ябълка"},
		{name: "emphasis", input: "*_x_*", want: `\*\_x\_\*`},
		{name: "heading and link", input: "# [a]", want: `\# \[a\]`},
		{name: "backslash first", input: `\*`, want: `\\\*`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeMarkdown(tt.input))
		})
	}
}
