package couchdb

import (
	"context"
	"errors"

	kivik "github.com/go-kivik/kivik/v4"
	"github.com/phrazzld/webapp/internal/domain"
	"github.com/phrazzld/webapp/internal/store"
)

// CouchUserStore implements the store.UserStore interface
// using a CouchDB database as the storage backend.
type CouchUserStore struct {
	db *kivik.DB
}

// NewCouchUserStore creates a new CouchDB implementation of the UserStore interface.
// The database handle is owned by the caller.
func NewCouchUserStore(db *kivik.DB) *CouchUserStore {
	return &CouchUserStore{db: db}
}

// Ensure CouchUserStore implements store.UserStore interface
var _ store.UserStore = (*CouchUserStore)(nil)

// GetByUsername implements store.UserStore.GetByUsername
func (s *CouchUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := map[string]any{
		"selector": map[string]any{
			"doctype":  domain.DocTypeUser,
			"username": username,
		},
		"limit": 1,
	}

	rows := s.db.Find(ctx, query)
	defer func() { _ = rows.Close() }()

	if rows.Next() {
		var user domain.User
		if err := rows.ScanDoc(&user); err != nil {
			return nil, store.NewStoreError("user", "get", "failed to decode document", errors.Join(store.ErrInvalidEntity, err))
		}
		return &user, nil
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("user", "get", "query failed", MapError(err))
	}

	return nil, store.ErrUserNotFound
}
