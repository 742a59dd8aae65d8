package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/pageza/recipenest/backend/config"
	"github.com/pageza/recipenest/backend/internal/database"
	"github.com/pageza/recipenest/backend/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create the RecipeNest schema and seed an empty database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db-driver",
				Value:   "sqlite",
				Usage:   "Database driver (sqlite or postgres)",
				Sources: cli.EnvVars("DB_DRIVER"),
			},
			&cli.StringFlag{
				Name:    "db-path",
				Value:   "recipenest.db",
				Usage:   "SQLite database file",
				Sources: cli.EnvVars("DB_PATH"),
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "PostgreSQL connection string",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.DurationFlag{
				Name:    "busy-timeout",
				Value:   5 * time.Second,
				Usage:   "How long SQLite waits on a locked database",
				Sources: cli.EnvVars("DB_BUSY_TIMEOUT"),
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Value:   database.DefaultCommandTimeout,
				Usage:   "Upper bound for each database command",
				Sources: cli.EnvVars("DB_COMMAND_TIMEOUT"),
			},
			&cli.BoolFlag{
				Name:  "skip-seed",
				Usage: "Only create the schema",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	log := logging.NewWithOutput(cmd.Root().Writer, cmd.String("log-level"), "text")

	dbCfg := config.DatabaseConfig{
		Driver:         cmd.String("db-driver"),
		Path:           cmd.String("db-path"),
		URL:            cmd.String("database-url"),
		BusyTimeout:    cmd.Duration("busy-timeout"),
		CommandTimeout: cmd.Duration("timeout"),
		MaxOpenConns:   1,
	}
	if err := config.ValidateDatabaseConfig(dbCfg); err != nil {
		return err
	}

	db, err := database.New(dbCfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(ctx, dbCfg.CommandTimeout)
	defer cancel()

	if cmd.Bool("skip-seed") {
		return database.EnsureSchema(ctx, db, log)
	}

	result, err := database.Initialize(ctx, db, log)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.Root().Writer, "seeded %d chef(s) and %d recipe(s)\n", result.ChefsInserted, result.RecipesInserted)
	return nil
}
