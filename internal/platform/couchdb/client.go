package couchdb

import (
	"context"
	"fmt"
	"log/slog"

	kivik "github.com/go-kivik/kivik/v4"
	"github.com/go-kivik/kivik/v4/couchdb" // registers the "couch" driver
	"github.com/phrazzld/webapp/internal/config"
	"github.com/phrazzld/webapp/internal/redact"
	"github.com/phrazzld/webapp/internal/store"
)

// driverName is the kivik driver registered by the couchdb package.
const driverName = "couch"

// indexes are the Mango indexes the stores rely on.
var indexes = []struct {
	name   string
	fields []string
}{
	{name: "doctype-username", fields: []string{"doctype", "username"}},
}

// Open connects to the CouchDB server described by cfg, checks that it
// responds, creates the database if missing and makes sure the indexes exist.
// The caller owns the returned client and must Close it.
func Open(ctx context.Context, cfg config.DatabaseSettings, logger *slog.Logger) (*kivik.Client, *kivik.DB, error) {
	var opts []kivik.Option
	if cfg.Username != "" {
		opts = append(opts, couchdb.BasicAuth(cfg.Username, cfg.Password))
	}

	client, err := kivik.New(driverName, cfg.URL, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create couchdb client: %w", err)
	}

	up, err := client.Ping(ctx)
	if err != nil || !up {
		_ = client.Close()
		return nil, nil, fmt.Errorf("%w: couchdb did not respond to ping: %v", store.ErrUnavailable, err)
	}

	exists, err := client.DBExists(ctx, cfg.DBName)
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to check database %q: %w", cfg.DBName, MapError(err))
	}
	if !exists {
		if err := client.CreateDB(ctx, cfg.DBName); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to create database %q: %w", cfg.DBName, MapError(err))
		}
		logger.Info("created database", slog.String("dbname", cfg.DBName))
	}

	db := client.DB(cfg.DBName)
	if err := db.Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to open database %q: %w", cfg.DBName, MapError(err))
	}

	for _, idx := range indexes {
		err := db.CreateIndex(ctx, "", idx.name, map[string]any{"fields": idx.fields})
		if err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to create index %q: %w", idx.name, MapError(err))
		}
	}

	logger.Info("database connection established",
		slog.String("url", redact.URL(cfg.URL)),
		slog.String("dbname", cfg.DBName))
	return client, db, nil
}
