package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		value   string
		want    Format
		wantErr bool
	}{
		{value: "", want: FormatAuto},
		{value: "auto", want: FormatAuto},
		{value: "TSV", want: FormatTSV},
		{value: "json", want: FormatJSON},
		{value: "csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseFormat(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPayload_Rows(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		want    []Entry
		wantErr bool
	}{
		{
			name: "tsv skips the header row",
			payload: Payload{
				Format: FormatTSV,
				Body:   []byte("word\tmeaning\texplanation\texample\tpronunciation\napple\tfruit\t\t\t\n\tmissing-word\t\t\t\n"),
			},
			want: []Entry{
				{Word: "apple", Meaning: "fruit"},
				{Meaning: "missing-word"},
			},
		},
		{
			name: "tsv with windows line endings",
			payload: Payload{
				Format: FormatTSV,
				Body:   []byte("word\tmeaning\r\nябълка\tплод\r\n"),
			},
			want: []Entry{{Word: "ябълка", Meaning: "плод"}},
		},
		{
			name:    "tsv header only",
			payload: Payload{Format: FormatTSV, Body: []byte("word\tmeaning\n")},
			want:    []Entry{},
		},
		{
			name:    "json has no header",
			payload: Payload{Format: FormatJSON, Body: []byte(`[{"word":"apple","meaning":"fruit"},{"Word":"banana","Meaning":"fruit2"}]`)},
			want: []Entry{
				{Word: "apple", Meaning: "fruit"},
				{Word: "banana", Meaning: "fruit2"},
			},
		},
		{
			name:    "auto detects json",
			payload: Payload{Format: FormatAuto, Body: []byte(" \n[{\"word\":\"apple\",\"meaning\":\"fruit\"}]")},
			want:    []Entry{{Word: "apple", Meaning: "fruit"}},
		},
		{
			name:    "auto falls back to tsv",
			payload: Payload{Body: []byte("word\tmeaning\napple\tfruit")},
			want:    []Entry{{Word: "apple", Meaning: "fruit"}},
		},
		{
			name:    "empty body",
			payload: Payload{Format: FormatTSV, Body: []byte("")},
			wantErr: true,
		},
		{
			name:    "blank body",
			payload: Payload{Format: FormatAuto, Body: []byte(" \n\t\n")},
			wantErr: true,
		},
		{
			name:    "broken json",
			payload: Payload{Format: FormatJSON, Body: []byte(`[{"word":`)},
			wantErr: true,
		},
		{
			name:    "json object instead of array",
			payload: Payload{Format: FormatAuto, Body: []byte(`{"word":"apple"}`)},
			wantErr: true,
		},
		{
			name:    "json null",
			payload: Payload{Format: FormatJSON, Body: []byte("null")},
			wantErr: true,
		},
		{
			name:    "json empty array",
			payload: Payload{Format: FormatJSON, Body: []byte("[]")},
			want:    []Entry{},
		},
		{
			name:    "html page without tabs",
			payload: Payload{Format: FormatAuto, Body: []byte("<html>\n<body>error</body>\n</html>")},
			wantErr: true,
		},
		{
			name:    "tsv header without tabs only",
			payload: Payload{Format: FormatTSV, Body: []byte("word\n")},
			want:    []Entry{},
		},
		{
			name:    "unknown format",
			payload: Payload{Format: Format("xml"), Body: []byte("<a/>")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.payload.Rows()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
