// Package pdf renders markdown documents to PDF files.
package pdf

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"
)

// Options configures the rendered document.
type Options struct {
	// Codepage translates UTF-8 text for the core fonts, e.g. "cp1251" for
	// Cyrillic. Empty keeps the renderer's default.
	Codepage string
	// Dark renders with the dark theme instead of the light one.
	Dark bool
}

// ConvertMarkdownToPDF writes markdown to the PDF file at pdfPath and
// returns its absolute path.
func ConvertMarkdownToPDF(markdown []byte, pdfPath string, opts Options) (string, error) {
	if !strings.HasSuffix(pdfPath, ".pdf") {
		return "", fmt.Errorf("output file must have .pdf extension: %s", pdfPath)
	}

	var renderOptions []mdtopdf.RenderOption
	if opts.Codepage != "" {
		renderOptions = append(renderOptions, mdtopdf.WithUnicodeTranslator(opts.Codepage))
	}

	theme := mdtopdf.LIGHT
	if opts.Dark {
		theme = mdtopdf.DARK
	}
	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", renderOptions, theme)
	if err := renderer.Process(markdown); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}
