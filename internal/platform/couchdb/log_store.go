package couchdb

import (
	"context"

	kivik "github.com/go-kivik/kivik/v4"
	"github.com/phrazzld/webapp/internal/domain"
	"github.com/phrazzld/webapp/internal/store"
)

// CouchLogStore implements the store.LogStore interface
// using a CouchDB database as the storage backend.
type CouchLogStore struct {
	db *kivik.DB
}

// NewCouchLogStore creates a new CouchDB implementation of the LogStore interface.
func NewCouchLogStore(db *kivik.DB) *CouchLogStore {
	return &CouchLogStore{db: db}
}

// Ensure CouchLogStore implements store.LogStore interface
var _ store.LogStore = (*CouchLogStore)(nil)

// Create implements store.LogStore.Create
func (s *CouchLogStore) Create(ctx context.Context, entry *domain.LogEntry) error {
	if entry.IUID == "" || entry.DocType != domain.DocTypeLog {
		return store.NewStoreError("log", "create", "invalid log entry", store.ErrInvalidEntity)
	}

	rev, err := s.db.Put(ctx, entry.IUID, entry)
	if err != nil {
		return store.NewStoreError("log", "create", "put failed", MapError(err))
	}

	entry.Rev = rev
	return nil
}

// GetByIUID implements store.LogStore.GetByIUID
func (s *CouchLogStore) GetByIUID(ctx context.Context, iuid string) (*domain.LogEntry, error) {
	var entry domain.LogEntry
	if err := s.db.Get(ctx, iuid).ScanDoc(&entry); err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, store.ErrLogNotFound
		}
		return nil, store.NewStoreError("log", "get", "fetch failed", mapped)
	}

	if entry.DocType != domain.DocTypeLog {
		return nil, store.ErrLogNotFound
	}

	return &entry, nil
}
