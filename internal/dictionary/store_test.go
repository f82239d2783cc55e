package dictionary_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/at-ishikawa/rechnik/internal/dictionary"
	mock_dictionary "github.com/at-ishikawa/rechnik/internal/mocks/dictionary"
)

const examplePayload = "word\tmeaning\texplanation\texample\tpronunciation\n" +
	"apple\tfruit\t\t\t\n" +
	"\tmissing-word\t\t\t\n" +
	"banana\tfruit2\t\t\t\n"

func newTestStore(opts ...dictionary.Option) *dictionary.Store {
	opts = append([]dictionary.Option{
		dictionary.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	return dictionary.NewStore(opts...)
}

func tsv(body string) dictionary.Payload {
	return dictionary.Payload{Format: dictionary.FormatTSV, Body: []byte(body)}
}

func TestStore_Ingest(t *testing.T) {
	tests := []struct {
		name          string
		payload       dictionary.Payload
		fetchErr      error
		want          []dictionary.Entry
		wantReport    dictionary.Report
		wantErrKind   *dictionary.IngestError
		wantUnchanged bool
	}{
		{
			name:    "drops invalid rows and sorts",
			payload: tsv(examplePayload),
			want: []dictionary.Entry{
				{Word: "apple", Meaning: "fruit"},
				{Word: "banana", Meaning: "fruit2"},
			},
			wantReport: dictionary.Report{Rows: 3, Accepted: 2, Dropped: 1},
		},
		{
			name: "json records",
			payload: dictionary.Payload{
				Format: dictionary.FormatJSON,
				Body:   []byte(`[{"Word":"круша","Meaning":"плод"},{"Word":"","Meaning":"празно"},{"Word":"ябълка","Meaning":"плод"},{"Word":"агне","Meaning":"животно"}]`),
			},
			want: []dictionary.Entry{
				{Word: "агне", Meaning: "животно"},
				{Word: "круша", Meaning: "плод"},
				{Word: "ябълка", Meaning: "плод"},
			},
			wantReport: dictionary.Report{Rows: 4, Accepted: 3, Dropped: 1},
		},
		{
			name: "keeps duplicates in source order",
			payload: tsv("h\n" +
				"дума\tпърво\n" +
				"дума\tвторо\n"),
			want: []dictionary.Entry{
				{Word: "дума", Meaning: "първо"},
				{Word: "дума", Meaning: "второ"},
			},
			wantReport: dictionary.Report{Rows: 2, Accepted: 2},
		},
		{
			name:          "transport failure",
			fetchErr:      errors.New("connection refused"),
			wantErrKind:   dictionary.ErrSourceUnavailable,
			wantUnchanged: true,
		},
		{
			name:          "empty payload",
			payload:       tsv(""),
			wantErrKind:   dictionary.ErrMalformedPayload,
			wantUnchanged: true,
		},
		{
			name:          "garbage json",
			payload:       dictionary.Payload{Format: dictionary.FormatJSON, Body: []byte("<html>")},
			wantErrKind:   dictionary.ErrMalformedPayload,
			wantUnchanged: true,
		},
		{
			name:          "json null",
			payload:       dictionary.Payload{Format: dictionary.FormatJSON, Body: []byte("null")},
			wantErrKind:   dictionary.ErrMalformedPayload,
			wantUnchanged: true,
		},
		{
			name:          "html error page",
			payload:       dictionary.Payload{Format: dictionary.FormatAuto, Body: []byte("<html>\n<body>error</body>\n</html>")},
			wantErrKind:   dictionary.ErrMalformedPayload,
			wantUnchanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := newTestStore()

			previous := mock_dictionary.NewMockSource(ctrl)
			previous.EXPECT().Fetch(gomock.Any()).Return(tsv("h\nстаро\tзначение\n"), nil)
			_, err := store.Ingest(context.Background(), previous)
			require.NoError(t, err)
			before := store.ListAll()

			source := mock_dictionary.NewMockSource(ctrl)
			source.EXPECT().Fetch(gomock.Any()).Return(tt.payload, tt.fetchErr)

			report, err := store.Ingest(context.Background(), source)
			if tt.wantErrKind != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrKind)
				var ingestErr *dictionary.IngestError
				require.ErrorAs(t, err, &ingestErr)
				assert.Equal(t, tt.wantErrKind.Kind, ingestErr.Kind)
				if tt.wantUnchanged {
					assert.Equal(t, before, store.ListAll())
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, store.ListAll())
			assert.Equal(t, tt.wantReport.Rows, report.Rows)
			assert.Equal(t, tt.wantReport.Accepted, report.Accepted)
			assert.Equal(t, tt.wantReport.Dropped, report.Dropped)
		})
	}
}

func TestStore_Ingest_FirstFailureLeavesStoreEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mock_dictionary.NewMockSource(ctrl)
	source.EXPECT().Fetch(gomock.Any()).Return(dictionary.Payload{}, errors.New("dial tcp: i/o timeout"))

	store := newTestStore()
	_, err := store.Ingest(context.Background(), source)
	assert.ErrorIs(t, err, dictionary.ErrSourceUnavailable)
	assert.NotErrorIs(t, err, dictionary.ErrMalformedPayload)

	assert.Empty(t, store.ListAll())
	_, ok := store.RandomEntry()
	assert.False(t, ok)
}

func TestStore_Ingest_LocaleCollation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "cyrillic ignores case for ordering",
			body: "word\tmeaning\n" +
				"ябълка\tплод\n" +
				"Банан\tплод\n" +
				"агне\tживотно\n" +
				"етър\tвещество\n",
			want: []string{"агне", "Банан", "етър", "ябълка"},
		},
		{
			name: "accented latin sorts with its base letter",
			body: "word\tmeaning\n" +
				"etre\tto be\n" +
				"été\tsummer\n" +
				"apple\tfruit\n",
			want: []string{"apple", "été", "etre"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(dictionary.WithLanguage(language.Bulgarian))
			_, err := store.IngestPayload(tsv(tt.body))
			require.NoError(t, err)

			words := make([]string, 0)
			for _, entry := range store.ListAll() {
				words = append(words, entry.Word)
			}
			assert.Equal(t, tt.want, words)

			codepoint := slices.Clone(words)
			slices.Sort(codepoint)
			assert.NotEqual(t, codepoint, words, "collation must differ from a byte order sort")

			collator := collate.New(language.Bulgarian)
			resorted := slices.Clone(words)
			slices.SortStableFunc(resorted, collator.CompareString)
			assert.Equal(t, words, resorted, "sorting the listing again is a no-op")
		})
	}
}

func TestStore_Ingest_Deterministic(t *testing.T) {
	first := newTestStore()
	second := newTestStore()

	_, err := first.IngestPayload(tsv(examplePayload))
	require.NoError(t, err)
	_, err = second.IngestPayload(tsv(examplePayload))
	require.NoError(t, err)

	assert.Equal(t, first.ListAll(), second.ListAll())
}

func TestStore_Ingest_ReplacesWholesale(t *testing.T) {
	store := newTestStore()
	_, err := store.IngestPayload(tsv(examplePayload))
	require.NoError(t, err)
	old := store.Snapshot()

	_, err = store.IngestPayload(tsv("h\ncherry\tfruit3\n"))
	require.NoError(t, err)

	assert.Equal(t, []dictionary.Entry{{Word: "cherry", Meaning: "fruit3"}}, store.ListAll())
	assert.Equal(t, 2, old.Len(), "a published snapshot never changes")
}

func TestStore_Ingest_SizeNeverExceedsRows(t *testing.T) {
	bodies := []string{
		examplePayload,
		"h\na\tb\n\n\n",
		"h\n\t\t\t\n",
		"h\nx\ty\nz\tw\n",
	}
	for _, body := range bodies {
		store := newTestStore()
		report, err := store.IngestPayload(tsv(body))
		require.NoError(t, err)

		assert.LessOrEqual(t, len(store.ListAll()), report.Rows)
		if report.Dropped > 0 {
			assert.Less(t, len(store.ListAll()), report.Rows)
		}
		for _, entry := range store.ListAll() {
			assert.True(t, entry.Valid())
		}
	}
}

func TestStore_Example(t *testing.T) {
	store := newTestStore()
	_, err := store.IngestPayload(tsv(examplePayload))
	require.NoError(t, err)

	want := []dictionary.Entry{
		{Word: "apple", Meaning: "fruit"},
		{Word: "banana", Meaning: "fruit2"},
	}
	assert.Equal(t, want, store.ListAll())
	assert.Equal(t, want, store.Search("fruit"))
	assert.Empty(t, store.Search("zzz"))
	assert.NotNil(t, store.Search("zzz"))
}
