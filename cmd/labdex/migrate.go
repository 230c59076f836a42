package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/labdex/internal/fixtures"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the organisation, profile and result tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			a.logger.Info("Schema migrated")
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo organisations, profiles and results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if migrate {
				if err := store.Migrate(ctx); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}

			ds := fixtures.Demo()
			if err := fixtures.Seed(ctx, store, ds); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			a.logger.Info("Demo data seeded",
				zap.Int("organisations", len(ds.Organisations)),
				zap.Int("profiles", len(ds.Profiles)),
				zap.Int("results", len(ds.Results)),
				zap.String("circle_id", fixtures.CircleID),
				zap.String("prenetics_id", fixtures.PreneticsID),
			)
			return nil
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "migrate the schema before seeding")
	return cmd
}
