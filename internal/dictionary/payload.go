package dictionary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

//go:generate mockgen -source=payload.go -destination=../mocks/dictionary/mock_source.go -package=mock_dictionary

// Source retrieves the raw word list in one round trip.
type Source interface {
	Fetch(ctx context.Context) (Payload, error)
}

// Format is the shape of a raw payload.
type Format string

const (
	FormatAuto Format = "auto"
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
)

var allFormats = []Format{FormatAuto, FormatTSV, FormatJSON}

// ParseFormat accepts "auto", "tsv" or "json"; an empty string means auto.
func ParseFormat(value string) (Format, error) {
	if value == "" {
		return FormatAuto, nil
	}
	for _, f := range allFormats {
		if strings.EqualFold(value, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown payload format %q, possible values are %v", value, allFormats)
}

// Payload is the undecoded body of a source response.
type Payload struct {
	Format Format
	Body   []byte
}

var (
	errEmptyPayload = errors.New("payload is empty")
	errNotTabular   = errors.New("payload has rows but no tab-separated columns")
	errNullPayload  = errors.New("payload is null, want an array of records")
)

// Rows decodes the payload into unfiltered entries.
// Tab-separated text loses its first line as a header; JSON arrays are used as is.
func (p Payload) Rows() ([]Entry, error) {
	body := bytes.TrimSpace(p.Body)
	if len(body) == 0 {
		return nil, errEmptyPayload
	}

	format := p.Format
	if format == "" || format == FormatAuto {
		format = detectFormat(body)
	}
	switch format {
	case FormatJSON:
		return decodeJSON(body)
	case FormatTSV:
		return decodeTSV(string(body))
	default:
		return nil, fmt.Errorf("unknown payload format %q", format)
	}
}

func detectFormat(body []byte) Format {
	if body[0] == '[' || body[0] == '{' {
		return FormatJSON
	}
	return FormatTSV
}

// decodeTSV drops the header line. A body with data lines but no tab at all
// is not a word list, e.g. an HTML error page.
func decodeTSV(body string) ([]Entry, error) {
	lines := strings.Split(body, "\n")
	if len(lines) > 1 && !strings.Contains(body, "\t") {
		return nil, errNotTabular
	}
	rows := make([]Entry, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rows = append(rows, ParseRow(line))
	}
	return rows, nil
}

func decodeJSON(body []byte) ([]Entry, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var records []map[string]any
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("json.Decode > %w", err)
	}
	if records == nil {
		return nil, errNullPayload
	}
	rows := make([]Entry, 0, len(records))
	for _, record := range records {
		rows = append(rows, ParseRecord(record))
	}
	return rows, nil
}
