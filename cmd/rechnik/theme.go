package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/rechnik/internal/preference"
)

const themeToggle = "toggle"

func newThemeCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the display theme",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(preference.ThemeDark), string(preference.ThemeLight), themeToggle},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			ctx := cmd.Context()
			repo, closeRepo, err := preference.Open(ctx, cfg)
			if err != nil {
				return fmt.Errorf("preference.Open > %w", err)
			}
			defer closeRepo()

			theme, err := runTheme(ctx, repo, args)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), theme); err != nil {
				return fmt.Errorf("failed to write to stdout: %w", err)
			}
			return nil
		},
	}
}

func runTheme(ctx context.Context, repo preference.Repository, args []string) (preference.Theme, error) {
	if len(args) == 0 {
		theme, err := repo.Theme(ctx)
		if err != nil {
			return "", fmt.Errorf("repo.Theme > %w", err)
		}
		return theme, nil
	}
	if args[0] == themeToggle {
		theme, err := preference.Toggle(ctx, repo)
		if err != nil {
			return "", fmt.Errorf("preference.Toggle > %w", err)
		}
		return theme, nil
	}

	theme, err := preference.ParseTheme(args[0])
	if err != nil {
		return "", err
	}
	if err := repo.SetTheme(ctx, theme); err != nil {
		return "", fmt.Errorf("repo.SetTheme > %w", err)
	}
	return theme, nil
}
