package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"evidencija/adapters/postgres"
	"evidencija/internal/config"
	"evidencija/internal/migration"
	"evidencija/internal/session"
)

const (
	defaultSeedEmail    = "admin@example.com"
	defaultSeedPassword = "change-me"
)

func newSeedCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create or update a user that can sign in",
		Long: `Create a user, or reset the password of an existing one.

Database settings are read from DATABASE_URL and DATABASE_DRIVER (or .env).

Example: evidencija-cli seed --email ana@example.com --password tajna`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), cmd, email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", defaultSeedEmail, "Login email")
	cmd.Flags().StringVar(&password, "password", defaultSeedPassword, "Login password")

	return cmd
}

func runSeed(ctx context.Context, cmd *cobra.Command, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := postgres.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer db.Close()

	hash, err := session.HashPassword(password)
	if err != nil {
		return err
	}
	user, err := postgres.NewUserRepository(db).UpsertUser(ctx, email, hash)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded user %s (%s)\n", user.Email, user.ID)
	return nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := postgres.Open(cmd.Context(), cfg.Database.Driver, cfg.Database.URL)
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Schema is at version %s (%s)\n", migration.NewRunner().Version(), cfg.Database.Driver)
			return nil
		},
	}
}
