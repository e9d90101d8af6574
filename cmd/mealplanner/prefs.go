package main

import (
	"context"
	"fmt"

	"github.com/easeaico/adk-meal-planner/internal/memory"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect or edit the family memory bank",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print favorites, dislikes and recent choices",
			Args:  cobra.NoArgs,
			RunE: withPrefs(func(ctx context.Context, cmd *cobra.Command, p *memory.Preferences, _ string) error {
				r, err := p.Load(ctx)
				if err != nil {
					return err
				}
				out, err := yaml.Marshal(r)
				if err != nil {
					return fmt.Errorf("failed to encode preferences: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}),
		},
		editCmd("favorite <meal>", "Add a favorite meal", (*memory.Preferences).AddFavorite),
		editCmd("dislike <meal>", "Add a disliked meal", (*memory.Preferences).AddDislike),
		editCmd("unfavorite <meal>", "Remove a favorite meal", (*memory.Preferences).RemoveFavorite),
		editCmd("undislike <meal>", "Remove a disliked meal", (*memory.Preferences).RemoveDislike),
	)
	return cmd
}

type prefsFunc func(ctx context.Context, cmd *cobra.Command, p *memory.Preferences, arg string) error

func withPrefs(fn prefsFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		var arg string
		if len(args) > 0 {
			arg = args[0]
		}
		return fn(ctx, cmd, memory.NewPreferences(store, memory.WithLogger(logger.Named("memory"))), arg)
	}
}

func editCmd(use, short string, op func(*memory.Preferences, context.Context, string) (bool, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: withPrefs(func(ctx context.Context, cmd *cobra.Command, p *memory.Preferences, name string) error {
			changed, err := op(p, ctx, name)
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintf(cmd.OutOrStdout(), "%q: nothing to change\n", name)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%q: updated\n", name)
			return nil
		}),
	}
}
