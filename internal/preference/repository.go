// Package preference persists the display theme chosen by the user.
package preference

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"gopkg.in/yaml.v3"
)

//go:generate mockgen -source=repository.go -destination=../mocks/preference/mock_repository.go -package=mock_preference

// ThemeKey is the name under which the theme is stored.
const ThemeKey = "theme"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used until a theme has been saved.
const DefaultTheme = ThemeLight

// ParseTheme accepts "dark" or "light".
func ParseTheme(value string) (Theme, error) {
	switch Theme(value) {
	case ThemeLight, ThemeDark:
		return Theme(value), nil
	default:
		return "", fmt.Errorf("invalid theme %q, possible values are %v", value, []Theme{ThemeLight, ThemeDark})
	}
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Repository stores display preferences.
type Repository interface {
	Theme(ctx context.Context) (Theme, error)
	SetTheme(ctx context.Context, theme Theme) error
}

// Toggle switches the saved theme and returns the new value.
func Toggle(ctx context.Context, repo Repository) (Theme, error) {
	current, err := repo.Theme(ctx)
	if err != nil {
		return "", fmt.Errorf("repo.Theme > %w", err)
	}
	next := current.Opposite()
	if err := repo.SetTheme(ctx, next); err != nil {
		return "", fmt.Errorf("repo.SetTheme(%s) > %w", next, err)
	}
	return next, nil
}

// YAMLRepository keeps preferences in a small YAML file.
type YAMLRepository struct {
	path string
}

// NewYAMLRepository creates a YAMLRepository for the file at path.
func NewYAMLRepository(path string) *YAMLRepository {
	return &YAMLRepository{path: path}
}

type yamlPreferences struct {
	Theme Theme `yaml:"theme,omitempty"`
}

// Theme returns the saved theme or DefaultTheme when nothing was saved.
func (r *YAMLRepository) Theme(ctx context.Context) (Theme, error) {
	prefs, err := r.read()
	if err != nil {
		return "", err
	}
	if prefs.Theme == "" {
		return DefaultTheme, nil
	}
	theme, err := ParseTheme(string(prefs.Theme))
	if err != nil {
		return "", fmt.Errorf("file %s > %w", r.path, err)
	}
	return theme, nil
}

// SetTheme saves theme, creating the file and its directory if needed.
func (r *YAMLRepository) SetTheme(ctx context.Context, theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	prefs, err := r.read()
	if err != nil {
		return err
	}
	prefs.Theme = theme

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}
	return r.replace(dir, prefs)
}

// replace writes prefs to a temporary file in dir and renames it over the
// preferences file, so a failed write keeps the previous contents.
func (r *YAMLRepository) replace(dir string, prefs yamlPreferences) error {
	file, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*")
	if err != nil {
		return fmt.Errorf("os.CreateTemp(%s) > %w", dir, err)
	}
	tmpPath := file.Name()
	defer func() {
		_ = file.Close()
		_ = os.Remove(tmpPath)
	}()

	if err := yaml.NewEncoder(file).Encode(prefs); err != nil {
		return fmt.Errorf("yaml.NewEncoder().Encode() > %w", err)
	}
	if err := file.Chmod(0644); err != nil {
		return fmt.Errorf("file.Chmod(%s) > %w", tmpPath, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("file.Close(%s) > %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		return fmt.Errorf("os.Rename(%s, %s) > %w", tmpPath, r.path, err)
	}
	return nil
}

func (r *YAMLRepository) read() (yamlPreferences, error) {
	var prefs yamlPreferences
	file, err := os.Open(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("os.Open(%s) > %w", r.path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(&prefs); err != nil && !errors.Is(err, io.EOF) {
		return prefs, fmt.Errorf("yaml.NewDecoder().Decode() > %w", err)
	}
	return prefs, nil
}

// DBRepository keeps preferences in the preferences table.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Theme returns the saved theme or DefaultTheme when no row exists.
func (r *DBRepository) Theme(ctx context.Context) (Theme, error) {
	var value string
	err := r.db.GetContext(ctx, &value, "SELECT value FROM preferences WHERE name = ?", ThemeKey)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultTheme, nil
	}
	if err != nil {
		return "", fmt.Errorf("db.GetContext(preference %s) > %w", ThemeKey, err)
	}
	return ParseTheme(value)
}

// SetTheme upserts the theme row.
func (r *DBRepository) SetTheme(ctx context.Context, theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO preferences (name, value) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value)`,
		ThemeKey, string(theme))
	if err != nil {
		return fmt.Errorf("db.ExecContext(upsert preference %s) > %w", ThemeKey, err)
	}
	return nil
}
