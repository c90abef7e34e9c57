package service

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/webapp/internal/domain"
	"github.com/phrazzld/webapp/internal/mocks"
	"github.com/phrazzld/webapp/internal/platform/logger"
	"github.com/phrazzld/webapp/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser(username string, role domain.Role, status domain.Status) *domain.User {
	return &domain.User{
		IUID:           iuidFor(username),
		DocType:        domain.DocTypeUser,
		Username:       username,
		Email:          username + "@example.com",
		Role:           role,
		Status:         status,
		HashedPassword: "hash-" + username,
	}
}

// iuidFor derives a stable 32-hex IUID from a short name.
func iuidFor(name string) string {
	h := hex.EncodeToString([]byte(name))
	return h + strings.Repeat("0", 32-len(h))
}

func newTestAuthService(users *mocks.MockUserStore, logs *mocks.MockLogStore, verifier *mocks.MockPasswordVerifier) *AuthServiceImpl {
	log, _ := logger.NewTestLogger()
	s := NewAuthService(users, logs, verifier, log)
	s.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s
}

func TestLogin(t *testing.T) {
	alice := testUser("alice", domain.RoleUser, domain.StatusEnabled)
	pending := testUser("pete", domain.RoleUser, domain.StatusPending)

	tests := []struct {
		name       string
		username   string
		passwordOK bool
		usersErr   error
		wantErr    error
		wantUser   *domain.User
	}{
		{name: "success", username: "alice", passwordOK: true, wantUser: alice},
		{name: "username is case-insensitive", username: "ALICE", passwordOK: true, wantUser: alice},
		{name: "wrong password", username: "alice", wantErr: domain.ErrInvalidCredentials},
		{name: "unknown user", username: "bob", passwordOK: true, wantErr: domain.ErrInvalidCredentials},
		{name: "malformed username", username: "9lives", passwordOK: true, wantErr: domain.ErrInvalidCredentials},
		{name: "not enabled", username: "pete", passwordOK: true, wantErr: domain.ErrUserNotEnabled},
		{name: "store unavailable", username: "alice", passwordOK: true, usersErr: store.ErrUnavailable, wantErr: store.ErrUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			users := mocks.NewMockUserStore(alice, pending)
			users.Err = tc.usersErr
			logs := mocks.NewMockLogStore()
			s := newTestAuthService(users, logs, &mocks.MockPasswordVerifier{ShouldSucceed: tc.passwordOK})

			user, err := s.Login(context.Background(), tc.username, "pw")

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, logs.Created(), "failed logins are not recorded")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantUser, user)

			created := logs.Created()
			require.Len(t, created, 1)
			assert.Equal(t, domain.LogActionLogin, created[0].Action)
			assert.Equal(t, alice.IUID, created[0].DocID)
			assert.Equal(t, "alice", created[0].Username)
			assert.Equal(t, "2024-01-02T03:04:05.000Z", created[0].Timestamp)
		})
	}
}

func TestLoginLogFailure(t *testing.T) {
	alice := testUser("alice", domain.RoleUser, domain.StatusEnabled)
	logs := mocks.NewMockLogStore()
	logs.Err = errors.New("disk full")
	s := newTestAuthService(mocks.NewMockUserStore(alice), logs, &mocks.MockPasswordVerifier{ShouldSucceed: true})

	_, err := s.Login(context.Background(), "alice", "pw")
	assert.ErrorContains(t, err, "failed to record login")
}

func TestLogout(t *testing.T) {
	alice := testUser("alice", domain.RoleUser, domain.StatusEnabled)
	logs := mocks.NewMockLogStore()
	s := newTestAuthService(mocks.NewMockUserStore(alice), logs, &mocks.MockPasswordVerifier{})

	require.NoError(t, s.Logout(context.Background(), alice))

	created := logs.Created()
	require.Len(t, created, 1)
	assert.Equal(t, domain.LogActionLogout, created[0].Action)
	assert.Equal(t, domain.DocTypeLog, created[0].DocType)
}
