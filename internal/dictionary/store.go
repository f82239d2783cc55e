package dictionary

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLanguage is the collation language of the bundled word list.
var DefaultLanguage = language.Bulgarian

// Store holds the current snapshot of the dictionary.
// Each successful ingestion publishes a complete new snapshot; readers see
// either the previous snapshot or the new one, never a mix.
type Store struct {
	language    language.Tag
	randomIndex func(n int) int
	logger      *slog.Logger

	current atomic.Pointer[Snapshot]
}

// Option configures a Store.
type Option func(*Store)

// WithLanguage sets the collation used to order entries by word.
func WithLanguage(tag language.Tag) Option {
	return func(s *Store) {
		s.language = tag
	}
}

// WithRandomIndex replaces the source of random indexes. fn must return a
// value in [0, n).
func WithRandomIndex(fn func(n int) int) Option {
	return func(s *Store) {
		s.randomIndex = fn
	}
}

// WithLogger sets the logger used to report ingestion results.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore returns an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		language:    DefaultLanguage,
		randomIndex: rand.IntN,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.current.Store(s.newSnapshot(nil))
	return s
}

// Language returns the collation language of the store.
func (s *Store) Language() language.Tag {
	return s.language
}

// Report summarizes one ingestion pass.
type Report struct {
	Rows     int           `json:"rows"`
	Accepted int           `json:"accepted"`
	Dropped  int           `json:"dropped"`
	Duration time.Duration `json:"duration"`
}

// Ingest fetches a payload from source and replaces the store's contents
// with its valid entries. On error the previous snapshot is kept.
func (s *Store) Ingest(ctx context.Context, source Source) (Report, error) {
	started := time.Now()
	payload, err := source.Fetch(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch the dictionary", "error", err)
		return Report{}, &IngestError{Kind: SourceUnavailable, Err: fmt.Errorf("source.Fetch > %w", err)}
	}

	report, err := s.IngestPayload(payload)
	report.Duration = time.Since(started)
	return report, err
}

// IngestPayload parses an already retrieved payload and publishes it.
func (s *Store) IngestPayload(payload Payload) (Report, error) {
	started := time.Now()
	rows, err := payload.Rows()
	if err != nil {
		s.logger.Warn("failed to parse the dictionary payload", "error", err, "format", payload.Format)
		return Report{}, &IngestError{Kind: MalformedPayload, Err: err}
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		if row.Valid() {
			entries = append(entries, row)
		}
	}
	collator := collate.New(s.language)
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return collator.CompareString(a.Word, b.Word)
	})

	s.current.Store(s.newSnapshot(entries))

	report := Report{
		Rows:     len(rows),
		Accepted: len(entries),
		Dropped:  len(rows) - len(entries),
		Duration: time.Since(started),
	}
	s.logger.Info("dictionary ingested",
		"rows", report.Rows,
		"accepted", report.Accepted,
		"dropped", report.Dropped,
		"language", s.language.String())
	return report, nil
}

// Snapshot returns the currently published snapshot.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// RandomEntry picks an entry from the current snapshot.
func (s *Store) RandomEntry() (Entry, bool) {
	return s.Snapshot().RandomEntry()
}

// Search filters the current snapshot. See Snapshot.Search.
func (s *Store) Search(query string) []Entry {
	return s.Snapshot().Search(query)
}

// ListAll returns every entry of the current snapshot in order.
func (s *Store) ListAll() []Entry {
	return s.Snapshot().ListAll()
}

func (s *Store) newSnapshot(entries []Entry) *Snapshot {
	fold := cases.Fold()
	folded := make([][]string, len(entries))
	for i, entry := range entries {
		values := make([]string, 0, len(Columns))
		for _, value := range entry.fields() {
			if value != "" {
				values = append(values, foldText(fold, value))
			}
		}
		folded[i] = values
	}
	return &Snapshot{
		entries:     entries,
		folded:      folded,
		randomIndex: s.randomIndex,
	}
}
