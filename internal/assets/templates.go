// Package assets provides the embedded templates used for exports.
package assets

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed templates/word-list.md.go.tmpl
var fallbackWordListTemplate string

const wordListTemplateName = "word-list.md.go.tmpl"

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
	"[", `\[`,
	"]", `\]`,
)

// EscapeMarkdown escapes the characters with a meaning in inline markdown.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// ParseWordListTemplate parses the template at templatePath, or the embedded
// one when templatePath is empty, missing or invalid.
func ParseWordListTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, wordListTemplateName, fallbackWordListTemplate)
}

func parseTemplateWithFallback(templatePath string, fallbackName string, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join":   strings.Join,
		"escape": EscapeMarkdown,
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a template, using the embedded one",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		} else {
			slog.Default().Warn("template not found, using the embedded one",
				slog.String("templatePath", templatePath),
			)
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
