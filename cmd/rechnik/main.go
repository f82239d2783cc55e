package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/rechnik/internal/cli"
)

var (
	configFile   string
	debugMode    bool
	outputFormat = cli.FormatText
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "rechnik",
		Short: "Search and browse a published word list",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return nil
		},
		SilenceUsage: true,
	}

	outputFormat = cli.FormatText
	flags := rootCommand.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default is ./config.yml or $HOME/.config/rechnik/config.yml)")
	flags.BoolVar(&debugMode, "debug", false, "enable debug logging")
	flags.Var(&outputFormat, "format", fmt.Sprintf("output format. Possible values are %v", []cli.Format{cli.FormatText, cli.FormatJSON}))

	rootCommand.AddCommand(
		newRandomCommand(),
		newSearchCommand(),
		newListCommand(),
		newExportCommand(),
		newThemeCommand(),
		newSuggestCommand(),
	)
	return rootCommand
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
