package main

import (
	"context"
	"fmt"
	"io"

	"github.com/at-ishikawa/rechnik/internal/config"
	"github.com/at-ishikawa/rechnik/internal/dictionary"
	"github.com/at-ishikawa/rechnik/internal/dictionary/sheet"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// loadDictionary ingests the configured source into a new store.
func loadDictionary(ctx context.Context, cfg *config.Config) (*dictionary.Store, error) {
	source, err := sheet.NewFromConfig(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("sheet.NewFromConfig > %w", err)
	}
	if closer, ok := source.(io.Closer); ok {
		defer func() {
			_ = closer.Close()
		}()
	}

	store := dictionary.NewStore(dictionary.WithLanguage(cfg.Dictionary.LanguageTag()))
	if _, err := store.Ingest(ctx, source); err != nil {
		return nil, fmt.Errorf("store.Ingest > %w", err)
	}
	return store, nil
}
