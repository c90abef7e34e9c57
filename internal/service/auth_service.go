package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/webapp/internal/domain"
	"github.com/phrazzld/webapp/internal/ident"
	"github.com/phrazzld/webapp/internal/service/auth"
	"github.com/phrazzld/webapp/internal/store"
)

// AuthService logs users in and out and records both in the log.
type AuthService interface {
	// Login checks the credentials and returns the user. Unknown users and
	// wrong passwords both yield domain.ErrInvalidCredentials; users that are
	// not enabled yield domain.ErrUserNotEnabled.
	Login(ctx context.Context, username, password string) (*domain.User, error)

	// Logout records that user logged out.
	Logout(ctx context.Context, user *domain.User) error
}

// AuthServiceImpl implements the AuthService interface
type AuthServiceImpl struct {
	users    store.UserStore
	logs     store.LogStore
	verifier auth.PasswordVerifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users store.UserStore,
	logs store.LogStore,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		users:    users,
		logs:     logs,
		verifier: verifier,
		logger:   logger.With("component", "auth_service"),
		now:      time.Now,
	}
}

// Login implements the AuthService interface
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*domain.User, error) {
	name, err := ident.ParseName(username)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Debug("login for unknown user", "username", name)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login with wrong password", "username", name)
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsEnabled() {
		s.logger.Debug("login refused for user that is not enabled",
			"username", name,
			"status", user.Status)
		return nil, domain.ErrUserNotEnabled
	}

	if err := s.record(ctx, user, domain.LogActionLogin); err != nil {
		return nil, err
	}
	s.logger.Info("user logged in", "username", name)
	return user, nil
}

// Logout implements the AuthService interface
func (s *AuthServiceImpl) Logout(ctx context.Context, user *domain.User) error {
	if err := s.record(ctx, user, domain.LogActionLogout); err != nil {
		return err
	}
	s.logger.Info("user logged out", "username", user.Username)
	return nil
}

func (s *AuthServiceImpl) record(ctx context.Context, user *domain.User, action domain.LogAction) error {
	entry := domain.NewLogEntry(user.IUID, user.Username, action, s.now())
	if err := s.logs.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to record %s: %w", action, err)
	}
	return nil
}
