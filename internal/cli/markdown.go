package cli

import (
	"fmt"
	"io"
	"text/template"

	"github.com/at-ishikawa/rechnik/internal/dictionary"
)

type markdownDocument struct {
	Title        string
	Entries      []dictionary.Entry
	EmptyMessage string
	ExampleLabel string
}

// WriteMarkdown renders the entries with tmpl, usually the template returned
// by assets.ParseWordListTemplate.
func WriteMarkdown(w io.Writer, tmpl *template.Template, title string, entries []dictionary.Entry) error {
	doc := markdownDocument{
		Title:        title,
		Entries:      entries,
		EmptyMessage: MessageNoEntries,
		ExampleLabel: labelExample,
	}
	if err := tmpl.Execute(w, doc); err != nil {
		return fmt.Errorf("tmpl.Execute > %w", err)
	}
	return nil
}
