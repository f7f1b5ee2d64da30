package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/petadopt/agency"
	"github.com/ridoystarlord/petadopt/config"
	"github.com/ridoystarlord/petadopt/database"
)

// withService opens a store for the duration of fn and always releases it.
// Nothing is held between operations.
func withService(ctx context.Context, cmd *cobra.Command, fn func(ctx context.Context, svc *agency.Service) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	store, err := database.Open(ctx, database.Options{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.MaxConns,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("close store", "error", err)
		}
	}()

	return fn(ctx, agency.NewService(store, logger))
}
