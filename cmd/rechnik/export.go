package main

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/rechnik/internal/assets"
	"github.com/at-ishikawa/rechnik/internal/cli"
	"github.com/at-ishikawa/rechnik/internal/pdf"
	"github.com/at-ishikawa/rechnik/internal/preference"
)

func newExportCommand() *cobra.Command {
	var (
		output       string
		title        string
		codepage     string
		templatePath string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the whole word list to a PDF file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			ctx := cmd.Context()
			store, err := loadDictionary(ctx, cfg)
			if err != nil {
				return fmt.Errorf("loadDictionary > %w", err)
			}

			tmpl, err := assets.ParseWordListTemplate(templatePath)
			if err != nil {
				return fmt.Errorf("assets.ParseWordListTemplate > %w", err)
			}
			var markdown bytes.Buffer
			if err := cli.WriteMarkdown(&markdown, tmpl, title, store.ListAll()); err != nil {
				return fmt.Errorf("cli.WriteMarkdown > %w", err)
			}

			opts := pdf.Options{Codepage: codepage}
			repo, closeRepo, err := preference.Open(ctx, cfg)
			if err != nil {
				slog.Default().Warn("failed to open the preferences, using the light theme", "error", err)
			} else {
				defer closeRepo()
				theme, err := repo.Theme(ctx)
				if err != nil {
					slog.Default().Warn("failed to read the theme, using the light theme", "error", err)
				} else if theme == preference.ThemeDark {
					opts.Dark = true
				}
			}

			path, err := pdf.ConvertMarkdownToPDF(markdown.Bytes(), output, opts)
			if err != nil {
				return fmt.Errorf("pdf.ConvertMarkdownToPDF > %w", err)
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", store.Snapshot().Len(), path); err != nil {
				return fmt.Errorf("failed to write to stdout: %w", err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "words.pdf", "path of the PDF file")
	flags.StringVar(&title, "title", "Речник", "title of the document")
	flags.StringVar(&templatePath, "template", "", "markdown template used instead of the embedded one")
	flags.StringVar(&codepage, "codepage", "", "codepage used to render non-Latin text with the core fonts, e.g. cp1251")
	return cmd
}
