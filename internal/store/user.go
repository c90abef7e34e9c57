package store

import (
	"context"

	"github.com/phrazzld/webapp/internal/domain"
)

// UserStore defines the interface for reading user documents.
type UserStore interface {
	// GetByUsername retrieves a user by username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
