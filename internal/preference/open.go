package preference

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/rechnik/internal/config"
	"github.com/at-ishikawa/rechnik/internal/database"
)

// Open returns the repository selected by preferences.backend and a function
// releasing its resources.
func Open(ctx context.Context, cfg *config.Config) (Repository, func(), error) {
	switch cfg.Preferences.Backend {
	case config.PreferencesBackendDatabase:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Open > %w", err)
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				slog.Default().Warn("failed to close the database", "error", err)
			}
		}
		if err := database.Migrate(ctx, db); err != nil {
			closeDB()
			return nil, nil, fmt.Errorf("database.Migrate > %w", err)
		}
		return NewDBRepository(db), closeDB, nil
	case config.PreferencesBackendYAML, "":
		return NewYAMLRepository(cfg.Preferences.File), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown preferences backend %q", cfg.Preferences.Backend)
	}
}
