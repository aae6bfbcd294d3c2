package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/fhagedorn/stempel/internal/cli"
	"github.com/fhagedorn/stempel/internal/config"
	"github.com/fhagedorn/stempel/internal/db"
	"github.com/fhagedorn/stempel/internal/holiday"
	"github.com/fhagedorn/stempel/internal/identity"
	"github.com/fhagedorn/stempel/internal/repository"
	"github.com/fhagedorn/stempel/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	observer := newObserver(cfg.Log)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	entryRepo := repository.NewSQLiteEntryRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	who := identity.NewConfigResolver(cfg.User, userRepo)
	holidays := holiday.NewHamburgProvider()

	app := &cli.App{
		Timer:    service.NewTimerService(entryRepo, userRepo, uow, who, cfg.Location, observer),
		Entries:  service.NewEntryService(entryRepo, userRepo, uow, who),
		Settings: service.NewSettingsService(userRepo, who),
		Users:    service.NewUserService(userRepo),
		Stats:    service.NewStatsService(entryRepo, holidays, who, cfg.Location, observer),
		Holidays: holidays,
		Location: cfg.Location,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// newObserver builds the use-case observer from the log configuration.
// Anything below warn keeps the CLI output clean by discarding events.
func newObserver(lc config.LogConfig) service.UseCaseObserver {
	var level slog.Level
	switch lc.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}
	if level > slog.LevelInfo {
		return service.NoopUseCaseObserver{}
	}

	var w io.Writer = os.Stderr
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if lc.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return service.NewSlogUseCaseObserver(slog.New(handler))
}
