//go:build integration

package couchdb

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/webapp/internal/config"
	"github.com/phrazzld/webapp/internal/domain"
	"github.com/phrazzld/webapp/internal/ident"
	"github.com/phrazzld/webapp/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to the server named by COUCHDB_TEST_URL using a
// throwaway database that is destroyed when the test ends.
func openTestDB(t *testing.T) (*CouchUserStore, *CouchLogStore) {
	t.Helper()

	url := os.Getenv("COUCHDB_TEST_URL")
	if url == "" {
		t.Skip("COUCHDB_TEST_URL not set")
	}

	cfg := config.DatabaseSettings{
		URL:      url,
		Username: os.Getenv("COUCHDB_TEST_USERNAME"),
		Password: os.Getenv("COUCHDB_TEST_PASSWORD"),
		DBName:   "webapp_test_" + ident.NewIUID()[:8],
	}

	ctx := context.Background()
	client, db, err := Open(ctx, cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.DestroyDB(context.Background(), cfg.DBName)
		_ = client.Close()
	})

	return NewCouchUserStore(db), NewCouchLogStore(db)
}

func TestLogStoreRoundTrip(t *testing.T) {
	_, logs := openTestDB(t)
	ctx := context.Background()

	entry := domain.NewLogEntry(ident.NewIUID(), "alice", domain.LogActionLogin, time.Now())
	require.NoError(t, logs.Create(ctx, entry))
	assert.NotEmpty(t, entry.Rev)

	got, err := logs.GetByIUID(ctx, entry.IUID)
	require.NoError(t, err)
	assert.Equal(t, entry.Username, got.Username)
	assert.Equal(t, entry.Timestamp, got.Timestamp)

	_, err = logs.GetByIUID(ctx, ident.NewIUID())
	assert.ErrorIs(t, err, store.ErrLogNotFound)

	// Same id twice conflicts
	dup := *entry
	dup.Rev = ""
	assert.ErrorIs(t, logs.Create(ctx, &dup), store.ErrDuplicate)
}

func TestUserStoreMissingUser(t *testing.T) {
	users, _ := openTestDB(t)

	_, err := users.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
