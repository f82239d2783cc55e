package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/rechnik/internal/cli"
)

func newRandomCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Show a random entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			store, err := loadDictionary(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("loadDictionary > %w", err)
			}

			entry, ok := store.RandomEntry()
			return cli.NewEntryPrinter(cmd.OutOrStdout(), outputFormat).PrintEntry(entry, ok)
		},
	}
}

func newSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>...",
		Short: "Show the entries containing a text in any field",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			store, err := loadDictionary(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("loadDictionary > %w", err)
			}

			query := strings.TrimSpace(strings.Join(args, " "))
			emptyMessage := cli.MessageNoResults
			if query == "" {
				emptyMessage = ""
			}
			return cli.NewEntryPrinter(cmd.OutOrStdout(), outputFormat).PrintEntries(store.Search(query), emptyMessage)
		},
	}
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every entry in dictionary order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			store, err := loadDictionary(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("loadDictionary > %w", err)
			}

			return cli.NewEntryPrinter(cmd.OutOrStdout(), outputFormat).PrintEntries(store.ListAll(), cli.MessageNoEntries)
		},
	}
}
