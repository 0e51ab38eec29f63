package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/msomdec/recipe-api/internal/handler"
	"github.com/msomdec/recipe-api/internal/repository/sqlite"
	"github.com/msomdec/recipe-api/internal/service"
	"github.com/msomdec/recipe-api/internal/validation"
)

func (a *app) serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Apply migrations and run the HTTP API",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	if err := cfg.ValidateServer(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database migrations applied", "path", cfg.DatabasePath)

	v := validation.New()
	limiter := service.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)
	defer limiter.Stop()

	router := handler.NewRouter(handler.Services{
		Auth:        service.NewAuthService(db.Users(), v, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost),
		Tags:        service.NewTagService(db.Tags(), v),
		Ingredients: service.NewIngredientService(db.Ingredients(), v),
		Recipes:     service.NewRecipeService(db, db, v),
		AuthLimiter: limiter,
		DB:          db,
	}, handler.Options{
		CORSOrigins:  cfg.CORSOrigins,
		CookieSecure: cfg.CookieSecure,
		TrustProxy:   cfg.TrustProxy,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	slog.Info("server config",
		slog.String("addr", srv.Addr),
		slog.Duration("tokenTTL", cfg.TokenTTL),
		slog.Float64("authRateLimit", cfg.AuthRateLimit),
		slog.Int("authRateBurst", cfg.AuthRateBurst),
		slog.Any("corsOrigins", cfg.CORSOrigins),
		slog.Bool("trustProxy", cfg.TrustProxy),
	)

	return runServer(ctx, srv, cfg.ShutdownTimeout)
}

// runServer serves until ctx is cancelled, then shuts srv down within
// timeout.
func runServer(ctx context.Context, srv *http.Server, timeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
