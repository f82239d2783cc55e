package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func defaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Format: "auto",
		},
		Dictionary: DictionaryConfig{
			Locale: "bg",
		},
		Server: ServerConfig{
			Port: 8080,
			CORS: CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		},
		Preferences: PreferencesConfig{
			Backend: PreferencesBackendYAML,
			File:    filepath.Join("data", "preferences.yml"),
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     3306,
			Database: "local",
			Username: "user",
		},
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		wantErr           bool
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name: "valid config file with custom values",
			configContent: `source:
  url: https://docs.google.com/spreadsheets/d/e/abc/pub?output=tsv
  format: tsv
  timeout_seconds: 10
dictionary:
  locale: bg-BG
suggestion:
  form_url: https://docs.google.com/forms/d/e/abc/viewform
server:
  port: 9090
preferences:
  backend: database
`,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Source = SourceConfig{
					URL:            "https://docs.google.com/spreadsheets/d/e/abc/pub?output=tsv",
					Format:         "tsv",
					TimeoutSeconds: 10,
				}
				cfg.Dictionary.Locale = "bg-BG"
				cfg.Suggestion.FormURL = "https://docs.google.com/forms/d/e/abc/viewform"
				cfg.Server.Port = 9090
				cfg.Preferences.Backend = PreferencesBackendDatabase
				return cfg
			},
		},
		{
			name:          "no config file uses defaults",
			configContent: "",
			want:          defaultConfig,
		},
		{
			name: "environment overrides the source url",
			configContent: `source:
  url: words.tsv
`,
			env: map[string]string{
				"RECHNIK_SOURCE_URL": "https://example.com/pub?output=tsv",
				"DB_PASSWORD":        "secret",
			},
			useExplicitPath: true,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Source.URL = "https://example.com/pub?output=tsv"
				cfg.Database.Password = "secret"
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `source:
  url: words.tsv
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "unknown payload format",
			configContent: `source:
  format: csv
`,
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"invalid configuration",
				"format must be one of [auto tsv json]",
			},
		},
		{
			name: "invalid locale",
			configContent: `dictionary:
  locale: "not a locale!"
`,
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"dictionary.locale must be a BCP 47 language tag",
			},
		},
		{
			name: "yaml preferences need a file",
			configContent: `preferences:
  backend: yaml
  file: ""
`,
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"file is a required field",
			},
		},
		{
			name: "invalid form url",
			configContent: `suggestion:
  form_url: not a url
`,
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"form_url must be a valid URL",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("RECHNIK_SOURCE_URL", "")
			t.Setenv("RECHNIK_FORM_URL", "")
			t.Setenv("DB_PASSWORD", "")
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "rechnik.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			} else {
				if tt.configContent != "" {
					require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644))
				}
				t.Chdir(tempDir)
			}

			got, err := Load(configPath)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestSourceConfig_Timeout(t *testing.T) {
	assert.Equal(t, time.Duration(0), SourceConfig{}.Timeout())
	assert.Equal(t, 15*time.Second, SourceConfig{TimeoutSeconds: 15}.Timeout())
}

func TestDictionaryConfig_LanguageTag(t *testing.T) {
	assert.Equal(t, language.Bulgarian, DictionaryConfig{Locale: "bg"}.LanguageTag())
	assert.Equal(t, language.MustParse("en-US"), DictionaryConfig{Locale: "en-US"}.LanguageTag())
}
