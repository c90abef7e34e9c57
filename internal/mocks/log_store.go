package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/webapp/internal/domain"
	"github.com/phrazzld/webapp/internal/store"
)

// MockLogStore implements store.LogStore for testing
type MockLogStore struct {
	CreateFn    func(ctx context.Context, entry *domain.LogEntry) error
	GetByIUIDFn func(ctx context.Context, iuid string) (*domain.LogEntry, error)

	// Entries holds created entries in creation order
	Entries []*domain.LogEntry
	Err     error

	mu sync.Mutex
}

var _ store.LogStore = (*MockLogStore)(nil)

// NewMockLogStore creates a mock store holding entries
func NewMockLogStore(entries ...*domain.LogEntry) *MockLogStore {
	return &MockLogStore{Entries: entries}
}

// Create implements the LogStore interface
func (m *MockLogStore) Create(ctx context.Context, entry *domain.LogEntry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, entry)
	}
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, entry)
	return nil
}

// GetByIUID implements the LogStore interface
func (m *MockLogStore) GetByIUID(ctx context.Context, iuid string) (*domain.LogEntry, error) {
	if m.GetByIUIDFn != nil {
		return m.GetByIUIDFn(ctx, iuid)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range m.Entries {
		if entry.IUID == iuid {
			return entry, nil
		}
	}
	return nil, store.ErrLogNotFound
}

// Created returns a copy of the entries created so far
func (m *MockLogStore) Created() []*domain.LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.LogEntry(nil), m.Entries...)
}
