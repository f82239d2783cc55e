package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newSuggestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Print the form for suggesting new words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cfg.Suggestion.FormURL == "" {
				return errors.New("suggestion.form_url is not configured")
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), cfg.Suggestion.FormURL); err != nil {
				return fmt.Errorf("failed to write to stdout: %w", err)
			}
			return nil
		},
	}
}
