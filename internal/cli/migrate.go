package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/msomdec/recipe-api/internal/repository/sqlite"
	"github.com/msomdec/recipe-api/internal/repository/sqlite/migrations"
)

func (a *app) migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending database migrations",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "status",
				Usage: "List migrations and whether they are applied, without applying any",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.setup(cmd); err != nil {
				return err
			}

			db, err := sqlite.New(a.cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			if cmd.Bool("status") {
				status, err := migrations.Status(ctx, db.SqlDB)
				if err != nil {
					return fmt.Errorf("migration status: %w", err)
				}
				for _, m := range status {
					mark := " "
					if m.Applied {
						mark = "x"
					}
					fmt.Fprintf(a.stdout, "[%s] %s\n", mark, m.Filename)
				}
				return nil
			}

			applied, err := migrations.Run(ctx, db.SqlDB)
			if err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}
			if len(applied) == 0 {
				fmt.Fprintln(a.stdout, "database is up to date")
				return nil
			}
			for _, f := range applied {
				fmt.Fprintf(a.stdout, "applied %s\n", f)
			}
			return nil
		},
	}
}
