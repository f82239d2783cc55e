package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/rechnik/internal/bootstrap"
	"github.com/at-ishikawa/rechnik/internal/config"
	"github.com/at-ishikawa/rechnik/internal/dictionary"
	"github.com/at-ishikawa/rechnik/internal/dictionary/sheet"
	"github.com/at-ishikawa/rechnik/internal/metrics"
	"github.com/at-ishikawa/rechnik/internal/preference"
	"github.com/at-ishikawa/rechnik/internal/server"
)

var (
	configFile string
	envFile    string
	debugMode  bool
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rechnik-server",
		Short:         "Dictionary HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return run(cmd.Context())
		},
	}
	flags := rootCmd.Flags()
	flags.StringVar(&configFile, "config", "", "config file path")
	flags.StringVar(&envFile, "env-file", ".env", "file with environment variables loaded before the configuration")
	flags.BoolVar(&debugMode, "debug", false, "enable debug logging")
	return rootCmd
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})))
}

func run(ctx context.Context) error {
	app := bootstrap.New(bootstrap.DefaultShutdownTimeout)

	if err := loadEnv(envFile); err != nil {
		return fmt.Errorf("loadEnv > %w", err)
	}
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	source, err := sheet.NewFromConfig(cfg.Source)
	if err != nil {
		return fmt.Errorf("sheet.NewFromConfig > %w", err)
	}
	if closer, ok := source.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				slog.Error("failed to close the source", "error", err)
			}
		}()
	}

	preferences, closePreferences, err := preference.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("preference.Open > %w", err)
	}
	defer closePreferences()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	store := dictionary.NewStore(dictionary.WithLanguage(cfg.Dictionary.LanguageTag()))
	srv := server.New(cfg, store, source, preferences, metrics.New(registry))
	if _, err := srv.Reload(ctx); err != nil {
		// keep serving; POST /api/reload can recover
		slog.Error("failed to load the dictionary, serving an empty one", "error", err)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           h2c.NewHandler(srv.Handler(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	app.AddShutdownHook(httpServer.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Info("starting server", "addr", httpServer.Addr, "entries", store.Snapshot().Len())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.ListenAndServe > %w", err)
		}
		return nil
	})
}

// loadEnv loads path into the environment. A missing file is not an error.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("godotenv.Load(%s) > %w", path, err)
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
