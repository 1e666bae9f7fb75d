package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pgInfra "github.com/fastygo/teamtasks/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()
		return pgInfra.RunMigrations(cfg.Database, log)
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and available migration versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := bootstrap()
		if err != nil {
			return err
		}
		status, err := pgInfra.GetMigrationStatus(cfg.Database)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Database:  %s\n", pgInfra.Redact(cfg.Database.URL))
		fmt.Fprintf(out, "Current:   %d\n", status.CurrentVersion)
		fmt.Fprintf(out, "Latest:    %d\n", status.LatestVersion)
		fmt.Fprintf(out, "Dirty:     %t\n", status.Dirty)
		if status.Pending {
			fmt.Fprintln(out, "Pending migrations: run `teamtasks migrate up`")
		}
		return nil
	},
}
