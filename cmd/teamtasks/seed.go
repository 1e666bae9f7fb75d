package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pgInfra "github.com/fastygo/teamtasks/internal/infrastructure/postgres"
	"github.com/fastygo/teamtasks/internal/seed"
	"github.com/fastygo/teamtasks/repository/postgres"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create or update developers and projects from a TOML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")

		file, err := seed.Load(path)
		if err != nil {
			return err
		}

		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx := cmd.Context()
		pool, err := pgInfra.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return err
		}
		defer pgInfra.Close(pool, log)

		res, err := seed.Apply(ctx, file,
			postgres.NewDeveloperRepository(pool),
			postgres.NewProjectRepository(pool),
			log,
		)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d developers and %d projects from %s\n", res.Developers, res.Projects, path)
		return nil
	},
}
