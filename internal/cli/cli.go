// Package cli defines the recipes command tree: serve, migrate and user
// management, all sharing one configuration.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/msomdec/recipe-api/internal/config"
	"github.com/msomdec/recipe-api/internal/logger"
)

const name = "recipes"

// overridden during build with ldflags
var version = "dev"

type app struct {
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
}

// New returns the root command writing to the process stdout and stderr.
func New() *cli.Command {
	return newApp(os.Stdout, os.Stderr).command()
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr}
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     "Recipe, tag and ingredient API",
		Version:   version,
		Writer:    a.stdout,
		ErrWriter: a.stderr,
		Flags:     configFlags(),
		Commands: []*cli.Command{
			a.serveCmd(),
			a.migrateCmd(),
			a.userCmd(),
		},
	}
}

// setup loads configuration and installs the logger. Every action calls
// it first, once all of its flags have been parsed.
func (a *app) setup(cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat, a.stdout, a.stderr); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML config file",
			Sources: cli.EnvVars("RECIPES_CONFIG"),
		},
		&cli.IntFlag{
			Name:    "port",
			Usage:   "HTTP listen port",
			Sources: cli.EnvVars("PORT"),
		},
		&cli.StringFlag{
			Name:    "db",
			Usage:   "Path to the SQLite database file",
			Sources: cli.EnvVars("DATABASE_PATH"),
		},
		&cli.StringFlag{
			Name:    "jwt-secret",
			Usage:   "HMAC secret for signing tokens (at least 32 characters)",
			Sources: cli.EnvVars("JWT_SECRET"),
		},
		&cli.DurationFlag{
			Name:    "token-ttl",
			Usage:   "Lifetime of issued tokens",
			Sources: cli.EnvVars("TOKEN_TTL"),
		},
		&cli.IntFlag{
			Name:    "bcrypt-cost",
			Usage:   "bcrypt cost for password hashes (4-14)",
			Sources: cli.EnvVars("BCRYPT_COST"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.EnvVars("LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "Log format (text, json, both)",
			Sources: cli.EnvVars("LOG_FORMAT"),
		},
		&cli.StringSliceFlag{
			Name:    "cors-origin",
			Usage:   "Allowed CORS origin, repeatable",
			Sources: cli.EnvVars("CORS_ORIGINS"),
		},
		&cli.BoolFlag{
			Name:    "cookie-secure",
			Usage:   "Mark the auth cookie Secure; disable only for local development",
			Sources: cli.EnvVars("COOKIE_SECURE"),
		},
		&cli.BoolFlag{
			Name:    "trust-proxy",
			Usage:   "Take the client IP from X-Forwarded-For / X-Real-IP; enable only behind a reverse proxy",
			Sources: cli.EnvVars("TRUST_PROXY"),
		},
		&cli.FloatFlag{
			Name:    "auth-rate-limit",
			Usage:   "Requests per second per client IP on the account endpoints",
			Sources: cli.EnvVars("AUTH_RATE_LIMIT"),
		},
		&cli.IntFlag{
			Name:    "auth-rate-burst",
			Usage:   "Burst size for the account endpoint rate limit",
			Sources: cli.EnvVars("AUTH_RATE_BURST"),
		},
	}
}

// loadConfig reads the config file, then applies every flag that was set
// on the command line or through its environment variable.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("port") {
		cfg.Port = cmd.Int("port")
	}
	if cmd.IsSet("db") {
		cfg.DatabasePath = cmd.String("db")
	}
	if cmd.IsSet("jwt-secret") {
		cfg.JWTSecret = cmd.String("jwt-secret")
	}
	if cmd.IsSet("token-ttl") {
		cfg.TokenTTL = cmd.Duration("token-ttl")
	}
	if cmd.IsSet("bcrypt-cost") {
		cfg.BcryptCost = cmd.Int("bcrypt-cost")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		cfg.LogFormat = cmd.String("log-format")
	}
	if cmd.IsSet("cors-origin") {
		cfg.CORSOrigins = cmd.StringSlice("cors-origin")
	}
	if cmd.IsSet("cookie-secure") {
		cfg.CookieSecure = cmd.Bool("cookie-secure")
	}
	if cmd.IsSet("trust-proxy") {
		cfg.TrustProxy = cmd.Bool("trust-proxy")
	}
	if cmd.IsSet("auth-rate-limit") {
		cfg.AuthRateLimit = cmd.Float("auth-rate-limit")
	}
	if cmd.IsSet("auth-rate-burst") {
		cfg.AuthRateBurst = cmd.Int("auth-rate-burst")
	}
	return cfg, nil
}
