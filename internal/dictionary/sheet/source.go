// Package sheet fetches the published word list from a spreadsheet export
// or a local file.
package sheet

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/at-ishikawa/rechnik/internal/config"
	"github.com/at-ishikawa/rechnik/internal/dictionary"
)

// HTTPSource downloads the word list with a single GET request.
type HTTPSource struct {
	client *resty.Client
	url    string
	format dictionary.Format
}

var _ dictionary.Source = (*HTTPSource)(nil)

// NewHTTPSource creates an HTTPSource. A zero timeout leaves the request
// bounded only by the caller's context.
func NewHTTPSource(rawURL string, format dictionary.Format, timeout time.Duration) *HTTPSource {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPSource{
		client: client,
		url:    rawURL,
		format: format,
	}
}

func (s *HTTPSource) Close() error {
	return s.client.Close()
}

// Fetch implements dictionary.Source.
func (s *HTTPSource) Fetch(ctx context.Context) (dictionary.Payload, error) {
	res, err := s.client.R().
		SetContext(ctx).
		Get(s.url)
	if err != nil {
		return dictionary.Payload{}, fmt.Errorf("client.R.Get(%s) > %w", s.url, err)
	}
	if res.StatusCode() != http.StatusOK {
		return dictionary.Payload{}, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), truncate(res.String(), 200))
	}

	format := s.format
	if format == dictionary.FormatAuto {
		format = formatFromContentType(res.Header().Get("Content-Type"))
	}
	return dictionary.Payload{
		Format: format,
		Body:   []byte(res.String()),
	}, nil
}

// FileSource reads an exported word list from disk.
type FileSource struct {
	path   string
	format dictionary.Format
}

var _ dictionary.Source = (*FileSource)(nil)

func NewFileSource(path string, format dictionary.Format) *FileSource {
	return &FileSource{
		path:   path,
		format: format,
	}
}

// Fetch implements dictionary.Source.
func (s *FileSource) Fetch(ctx context.Context) (dictionary.Payload, error) {
	if err := ctx.Err(); err != nil {
		return dictionary.Payload{}, err
	}
	contents, err := os.ReadFile(s.path)
	if err != nil {
		return dictionary.Payload{}, fmt.Errorf("os.ReadFile(%s) > %w", s.path, err)
	}

	format := s.format
	if format == dictionary.FormatAuto {
		format = formatFromExtension(s.path)
	}
	return dictionary.Payload{
		Format: format,
		Body:   contents,
	}, nil
}

// New picks a source for location: http and https URLs are downloaded,
// file URLs and plain paths are read from disk.
func New(location string, format dictionary.Format, timeout time.Duration) (dictionary.Source, error) {
	if location == "" {
		return nil, fmt.Errorf("source location is empty")
	}
	parsed, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("url.Parse(%s) > %w", location, err)
	}

	switch parsed.Scheme {
	case "http", "https":
		return NewHTTPSource(location, format, timeout), nil
	case "file":
		return NewFileSource(filepath.FromSlash(parsed.Path), format), nil
	case "":
		return NewFileSource(location, format), nil
	default:
		return nil, fmt.Errorf("unsupported source scheme %q", parsed.Scheme)
	}
}

// NewFromConfig creates the source described by the source section of the
// configuration.
func NewFromConfig(cfg config.SourceConfig) (dictionary.Source, error) {
	format, err := dictionary.ParseFormat(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("dictionary.ParseFormat > %w", err)
	}
	return New(cfg.URL, format, cfg.Timeout())
}

func formatFromContentType(contentType string) dictionary.Format {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return dictionary.FormatAuto
	}
	switch mediaType {
	case "application/json":
		return dictionary.FormatJSON
	case "text/tab-separated-values":
		return dictionary.FormatTSV
	default:
		return dictionary.FormatAuto
	}
}

func formatFromExtension(path string) dictionary.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return dictionary.FormatJSON
	case ".tsv", ".txt":
		return dictionary.FormatTSV
	default:
		return dictionary.FormatAuto
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
