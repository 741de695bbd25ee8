package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/tally/internal/cli"
	"github.com/alexanderramin/tally/internal/config"
	"github.com/alexanderramin/tally/internal/reconcile"
	"github.com/alexanderramin/tally/internal/vault"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Config file: TALLY_CONFIG, else ./config.yaml, else ~/.tally/config.yaml
	cfg, err := config.Load(os.Getenv("TALLY_CONFIG"))
	if err != nil {
		return err
	}

	level := new(slog.LevelVar)
	level.Set(cfg.SlogLevel())
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Wire the vault and the reconciler
	v := vault.New(cfg)
	reconciler := reconcile.New(v.Days, v.Tasks,
		reconcile.WithObserver(reconcile.NewLogObserver(logger)),
		reconcile.WithWorkers(cfg.Workers),
	)

	app := &cli.App{
		Config:   cfg,
		Balance:  reconciler,
		Days:     v.Days,
		Tasks:    v.Tasks,
		Logger:   logger,
		LogLevel: level,
		Watch: func() (cli.Watcher, error) {
			w, err := v.Watch(vault.WithWatchLogger(logger))
			if err != nil {
				return nil, err
			}
			return w, nil
		},
	}

	// Detect interactive terminal for the live balance screen and forms.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
