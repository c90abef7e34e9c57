package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/webapp/internal/domain"
	"github.com/phrazzld/webapp/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)

	// Data for default implementation, keyed by username
	Users map[string]*domain.User
	Err   error

	mu sync.Mutex
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a mock store holding users
func NewMockUserStore(users ...*domain.User) *MockUserStore {
	m := &MockUserStore{Users: make(map[string]*domain.User, len(users))}
	for _, u := range users {
		m.Users[u.Username] = u
	}
	return m
}

// GetByUsername implements the UserStore interface
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.Users[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}
