package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	kivik "github.com/go-kivik/kivik/v4"
	"github.com/phrazzld/webapp/internal/config"
	"github.com/phrazzld/webapp/internal/platform/couchdb"
)

// databaseSetupTimeout bounds connecting to CouchDB and preparing the database.
const databaseSetupTimeout = 10 * time.Second

// setupAppDatabase connects to CouchDB and prepares the database.
func setupAppDatabase(ctx context.Context, cfg *config.Settings, logger *slog.Logger) (*kivik.Client, *kivik.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, databaseSetupTimeout)
	defer cancel()

	client, db, err := couchdb.Open(ctx, cfg.Database, logger.With("component", "couchdb"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up database: %w", err)
	}
	return client, db, nil
}
