package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/msomdec/recipe-api/internal/repository/sqlite"
	"github.com/msomdec/recipe-api/internal/service"
	"github.com/msomdec/recipe-api/internal/validation"
)

func (a *app) userCmd() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage user accounts",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a user account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true, Usage: "Login email"},
					&cli.StringFlag{Name: "name", Required: true, Usage: "Display name"},
					&cli.StringFlag{
						Name:     "password",
						Required: true,
						Usage:    "Password (at least 8 characters)",
						Sources:  cli.EnvVars("RECIPES_USER_PASSWORD"),
					},
				},
				Action: a.createUser,
			},
		},
	}
}

func (a *app) createUser(ctx context.Context, cmd *cli.Command) error {
	if err := a.setup(cmd); err != nil {
		return err
	}

	db, err := sqlite.New(a.cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Tokens are never issued here, so no signing secret is needed.
	auth := service.NewAuthService(db.Users(), validation.New(), "", a.cfg.TokenTTL, a.cfg.BcryptCost)
	user, err := auth.Register(ctx, service.RegisterRequest{
		Email:    cmd.String("email"),
		Name:     cmd.String("name"),
		Password: cmd.String("password"),
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Fprintf(a.stdout, "created user %d <%s>\n", user.ID, user.Email)
	return nil
}
