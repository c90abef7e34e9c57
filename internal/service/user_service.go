package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/webapp/internal/domain"
	"github.com/phrazzld/webapp/internal/store"
)

// UserService reads user profiles and log entries on behalf of a viewer.
type UserService interface {
	// GetUser returns the named user if viewer may see it.
	GetUser(ctx context.Context, viewer *domain.User, username string) (*domain.User, error)

	// GetLog returns the log entry if viewer is an admin or its actor.
	GetLog(ctx context.Context, viewer *domain.User, iuid string) (*domain.LogEntry, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users  store.UserStore
	logs   store.LogStore
	logger *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(users store.UserStore, logs store.LogStore, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		users:  users,
		logs:   logs,
		logger: logger.With("component", "user_service"),
	}
}

// GetUser implements the UserService interface
func (s *UserServiceImpl) GetUser(ctx context.Context, viewer *domain.User, username string) (*domain.User, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthorized
	}
	// Checked before the lookup so other users' existence is not revealed.
	if !viewer.CanView(username) {
		return nil, domain.ErrForbidden
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	s.logger.Debug("retrieved user", "username", username, "viewer", viewer.Username)
	return user, nil
}

// GetLog implements the UserService interface
func (s *UserServiceImpl) GetLog(ctx context.Context, viewer *domain.User, iuid string) (*domain.LogEntry, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthorized
	}

	entry, err := s.logs.GetByIUID(ctx, iuid)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve log entry: %w", err)
	}
	if !viewer.CanView(entry.Username) {
		return nil, domain.ErrForbidden
	}
	return entry, nil
}
