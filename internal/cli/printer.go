package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/rechnik/internal/dictionary"
)

const (
	MessageNoEntries = "Няма думи за показване."
	MessageNoResults = "Няма намерени резултати."
	labelExample     = "Пример:"
)

// Format selects how entries are printed.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var (
	_          pflag.Value = (*Format)(nil)
	allFormats             = []Format{FormatText, FormatJSON}
)

// Set implements pflag.Value.
func (f *Format) Set(value string) error {
	for _, format := range allFormats {
		if value == string(format) {
			*f = format
			return nil
		}
	}
	return fmt.Errorf("invalid format %q, possible values are %v", value, allFormats)
}

// String implements pflag.Value.
func (f *Format) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Type implements pflag.Value.
func (f *Format) Type() string {
	return "Format"
}

// EntryPrinter writes dictionary entries to a terminal.
type EntryPrinter struct {
	writer io.Writer
	format Format

	bold    *color.Color
	italic  *color.Color
	faint   *color.Color
	meaning *color.Color
	label   *color.Color
}

func NewEntryPrinter(writer io.Writer, format Format) *EntryPrinter {
	return &EntryPrinter{
		writer:  writer,
		format:  format,
		bold:    color.New(color.Bold),
		italic:  color.New(color.Italic),
		faint:   color.New(color.Faint),
		meaning: color.New(color.FgGreen),
		label:   color.New(color.FgCyan, color.Bold),
	}
}

// PrintEntry prints one entry, or the no-entries message when ok is false.
func (p *EntryPrinter) PrintEntry(entry dictionary.Entry, ok bool) error {
	if p.format == FormatJSON {
		if !ok {
			return p.encode(nil)
		}
		return p.encode(entry)
	}
	if !ok {
		return p.println(MessageNoEntries)
	}
	return p.printText(entry)
}

// PrintEntries prints entries in order. emptyMessage is printed instead of
// the list when there are none, unless it is empty.
func (p *EntryPrinter) PrintEntries(entries []dictionary.Entry, emptyMessage string) error {
	if p.format == FormatJSON {
		return p.encode(entries)
	}
	if len(entries) == 0 {
		if emptyMessage == "" {
			return nil
		}
		return p.println(emptyMessage)
	}
	for i, entry := range entries {
		if i > 0 {
			if err := p.println(""); err != nil {
				return err
			}
		}
		if err := p.printText(entry); err != nil {
			return err
		}
	}
	return nil
}

func (p *EntryPrinter) printText(entry dictionary.Entry) error {
	if _, err := p.bold.Fprint(p.writer, entry.Word); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	if entry.Pronunciation != "" {
		if _, err := p.faint.Fprintf(p.writer, " [%s]", entry.Pronunciation); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
	}
	if err := p.println(""); err != nil {
		return err
	}

	if _, err := p.meaning.Fprintf(p.writer, "  %s\n", entry.Meaning); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	if entry.Explanation != "" {
		if _, err := fmt.Fprintf(p.writer, "  %s\n", p.italic.Sprint(entry.Explanation)); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
	}
	if entry.Example != "" {
		if _, err := fmt.Fprintf(p.writer, "  %s %q\n", p.label.Sprint(labelExample), entry.Example); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
	}
	return nil
}

func (p *EntryPrinter) println(message string) error {
	if _, err := fmt.Fprintln(p.writer, message); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}

func (p *EntryPrinter) encode(value any) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("json.Encode > %w", err)
	}
	return nil
}
