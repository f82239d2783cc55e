package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

type Config struct {
	Source      SourceConfig      `mapstructure:"source"`
	Dictionary  DictionaryConfig  `mapstructure:"dictionary"`
	Suggestion  SuggestionConfig  `mapstructure:"suggestion"`
	Server      ServerConfig      `mapstructure:"server"`
	Preferences PreferencesConfig `mapstructure:"preferences"`
	Database    DatabaseConfig    `mapstructure:"database"`
}

// SourceConfig points at the published word list.
// URL is either an http(s) URL, a file:// URL or a local path.
type SourceConfig struct {
	URL            string `mapstructure:"url"`
	Format         string `mapstructure:"format" validate:"oneof=auto tsv json"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=0"`
}

func (c SourceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type DictionaryConfig struct {
	Locale string `mapstructure:"locale" validate:"required,bcp47"`
}

// LanguageTag returns the collation language for the word list.
func (c DictionaryConfig) LanguageTag() language.Tag {
	return language.Make(c.Locale)
}

type SuggestionConfig struct {
	FormURL string `mapstructure:"form_url" validate:"omitempty,url"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

const (
	PreferencesBackendYAML     = "yaml"
	PreferencesBackendDatabase = "database"
)

type PreferencesConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=yaml database"`
	File    string `mapstructure:"file" validate:"required_if=Backend yaml"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/rechnik")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("source.url", "")
	v.SetDefault("source.format", "auto")
	v.SetDefault("source.timeout_seconds", 0)
	v.SetDefault("dictionary.locale", "bg")
	v.SetDefault("suggestion.form_url", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("preferences.backend", PreferencesBackendYAML)
	v.SetDefault("preferences.file", filepath.Join("data", "preferences.yml"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "local")
	v.SetDefault("database.username", "user")

	// The sheet URL is often kept out of the config file
	if err := v.BindEnv("source.url", "RECHNIK_SOURCE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind RECHNIK_SOURCE_URL environment variable: %w", err)
	}
	if err := v.BindEnv("suggestion.form_url", "RECHNIK_FORM_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind RECHNIK_FORM_URL environment variable: %w", err)
	}
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// Load reads the configuration from configFile, or from the default
// locations when it is empty.
func Load(configFile string) (*Config, error) {
	loader, err := NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}
