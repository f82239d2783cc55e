package dictionary

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// foldText upper-cases before folding so that letters whose upper case is
// shared, such as dotless ı and i, compare equal.
func foldText(fold cases.Caser, s string) string {
	return fold.String(strings.ToUpper(s))
}

// Snapshot is an immutable, sorted set of entries produced by one ingestion.
type Snapshot struct {
	entries []Entry
	// folded holds the case-folded non-empty fields of each entry
	folded      [][]string
	randomIndex func(n int) int
}

// Len returns the number of entries.
func (s *Snapshot) Len() int {
	return len(s.entries)
}

// RandomEntry returns a uniformly chosen entry, or false if there is none.
func (s *Snapshot) RandomEntry() (Entry, bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[s.randomIndex(len(s.entries))], true
}

// Search returns the entries with any field containing query, ignoring case.
// An empty or blank query matches nothing. Results keep the snapshot order.
func (s *Snapshot) Search(query string) []Entry {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Entry{}
	}
	needle := foldText(cases.Fold(), query)

	results := make([]Entry, 0)
	for i, values := range s.folded {
		for _, value := range values {
			if strings.Contains(value, needle) {
				results = append(results, s.entries[i])
				break
			}
		}
	}
	return results
}

// ListAll returns a copy of every entry in order.
func (s *Snapshot) ListAll() []Entry {
	if len(s.entries) == 0 {
		return []Entry{}
	}
	return slices.Clone(s.entries)
}
