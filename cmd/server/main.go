// Package main implements the entry point for the webapp server: a
// CouchDB-backed web application serving a small JSON API and an HTML home
// page.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run application: %v", err)
	}
}

// run loads configuration, sets up logging, connects to CouchDB, builds the
// application and serves until interrupted.
func run() error {
	cfg, err := loadAppConfig(os.LookupEnv)
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}
	logger.Info("Server configuration loaded",
		slog.String("server_name", cfg.Server.ServerName),
		slog.String("settings_file", cfg.SettingsFile),
		slog.Bool("debug", cfg.Server.Debug))

	ctx := context.Background()
	client, db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	app := newApplication(cfg, logger, client, db)
	return app.Run(ctx)
}
