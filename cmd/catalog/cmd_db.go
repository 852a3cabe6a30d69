package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/catalog/database/seeders"
	"github.com/shashiranjanraj/catalog/pkg/app"
	"github.com/shashiranjanraj/catalog/pkg/migration"
)

// withDB runs fn against a freshly connected application and closes it.
func withDB(cmd *cobra.Command, fn func(a *app.Application) error) error {
	a := newApplication()
	if err := a.BootDB(); err != nil {
		return err
	}
	defer a.Close(cmd.Context()) //nolint:errcheck
	return fn(a)
}

// catalog migrate
func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run all pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd, func(a *app.Application) error {
				_, err := migration.New(a.DB, cmd.OutOrStdout()).Run(cmd.Context())
				return err
			})
		},
	}
}

// catalog migrate:rollback
func newMigrateRollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:rollback",
		Short: "Rollback the last batch of migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd, func(a *app.Application) error {
				_, err := migration.New(a.DB, cmd.OutOrStdout()).Rollback(cmd.Context())
				return err
			})
		},
	}
}

// catalog migrate:status
func newMigrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:status",
		Short: "Show the status of each migration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd, func(a *app.Application) error {
				_, err := migration.New(a.DB, cmd.OutOrStdout()).Status(cmd.Context())
				return err
			})
		},
	}
}

// catalog seed
func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Run all database seeders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd, func(a *app.Application) error {
				fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
				return seeders.RunAll(cmd.Context(), a.DB, cmd.OutOrStdout())
			})
		},
	}
}
