// Package dictionary ingests a word list from a tabular source and serves
// read-only queries over the parsed, locale-sorted entries.
package dictionary

import (
	"fmt"
	"slices"
	"strings"
)

// Entry is one dictionary record.
// Optional fields are empty when the source row does not provide them.
type Entry struct {
	Word          string `json:"word" yaml:"word"`
	Meaning       string `json:"meaning" yaml:"meaning"`
	Explanation   string `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	Example       string `json:"example,omitempty" yaml:"example,omitempty"`
	Pronunciation string `json:"pronunciation,omitempty" yaml:"pronunciation,omitempty"`
}

// Valid reports whether the entry carries both a word and a meaning.
func (e Entry) Valid() bool {
	return e.Word != "" && e.Meaning != ""
}

// fields returns the entry's values in column order.
func (e Entry) fields() []string {
	return []string{e.Word, e.Meaning, e.Explanation, e.Example, e.Pronunciation}
}

// Column identifies one mapped field of an Entry.
type Column string

const (
	ColumnWord          Column = "word"
	ColumnMeaning       Column = "meaning"
	ColumnExplanation   Column = "explanation"
	ColumnExample       Column = "example"
	ColumnPronunciation Column = "pronunciation"
)

// Columns is the positional layout of a delimited row.
var Columns = []Column{
	ColumnWord,
	ColumnMeaning,
	ColumnExplanation,
	ColumnExample,
	ColumnPronunciation,
}

// NormalizeCell trims surrounding whitespace and then removes one pair of
// enclosing double quotes.
func NormalizeCell(raw string) string {
	cell := strings.TrimSpace(raw)
	if len(cell) >= 2 && strings.HasPrefix(cell, `"`) && strings.HasSuffix(cell, `"`) {
		cell = cell[1 : len(cell)-1]
	}
	return cell
}

// ParseRow maps one tab-separated line onto an Entry by position.
// Missing trailing columns are left empty and extra columns are ignored.
func ParseRow(line string) Entry {
	cells := strings.Split(line, "\t")
	values := make(map[Column]string, len(Columns))
	for i, column := range Columns {
		if i < len(cells) {
			values[column] = NormalizeCell(cells[i])
		}
	}
	return fromColumns(values)
}

// ParseRecord maps one keyed record onto an Entry.
// Keys match case-insensitively, so both "Word" and "word" fill the word field.
func ParseRecord(record map[string]any) Entry {
	values := make(map[Column]string, len(Columns))
	for _, column := range Columns {
		value, ok := record[string(column)]
		if !ok {
			value, ok = lookupFold(record, string(column))
		}
		if ok {
			values[column] = NormalizeCell(cellText(value))
		}
	}
	return fromColumns(values)
}

// lookupFold finds a key equal to name under case folding.
// Ties are broken by byte order so the result does not depend on map iteration.
func lookupFold(record map[string]any, name string) (any, bool) {
	var matches []string
	for key := range record {
		if strings.EqualFold(strings.TrimSpace(key), name) {
			matches = append(matches, key)
		}
	}
	if len(matches) == 0 {
		return nil, false
	}
	slices.Sort(matches)
	return record[matches[0]], true
}

func cellText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func fromColumns(values map[Column]string) Entry {
	return Entry{
		Word:          values[ColumnWord],
		Meaning:       values[ColumnMeaning],
		Explanation:   values[ColumnExplanation],
		Example:       values[ColumnExample],
		Pronunciation: values[ColumnPronunciation],
	}
}
