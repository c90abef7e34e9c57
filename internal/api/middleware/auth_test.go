package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/webapp/internal/domain"
	"github.com/phrazzld/webapp/internal/mocks"
	"github.com/phrazzld/webapp/internal/session"
	"github.com/phrazzld/webapp/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sessionRequest(t *testing.T, username string) *http.Request {
	t.Helper()
	sess, _ := newSession(t, false)
	if username != "" {
		sess.SetUsername(username)
	}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	return r.WithContext(session.NewContext(r.Context(), sess))
}

func TestLoadUser(t *testing.T) {
	alice := &domain.User{Username: "alice", Role: domain.RoleUser, Status: domain.StatusEnabled}
	bob := &domain.User{Username: "bob", Role: domain.RoleUser, Status: domain.StatusDisabled}

	tests := []struct {
		name       string
		username   string
		setup      func(m *mocks.TestifyMockUserStore)
		wantStatus int
		wantUser   string
	}{
		{
			name:       "anonymous",
			wantStatus: http.StatusOK,
		},
		{
			name:     "enabled user",
			username: "alice",
			setup: func(m *mocks.TestifyMockUserStore) {
				m.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)
			},
			wantStatus: http.StatusOK,
			wantUser:   "alice",
		},
		{
			name:     "disabled user stays anonymous",
			username: "bob",
			setup: func(m *mocks.TestifyMockUserStore) {
				m.On("GetByUsername", mock.Anything, "bob").Return(bob, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:     "unknown user stays anonymous",
			username: "carol",
			setup: func(m *mocks.TestifyMockUserStore) {
				m.On("GetByUsername", mock.Anything, "carol").Return(nil, store.ErrNotFound)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:     "store failure",
			username: "alice",
			setup: func(m *mocks.TestifyMockUserStore) {
				m.On("GetByUsername", mock.Anything, "alice").Return(nil, errors.New("connection refused"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			users := &mocks.TestifyMockUserStore{}
			if tc.setup != nil {
				tc.setup(users)
			}

			var got string
			nextCalled := false
			h := NewAuthMiddleware(users).LoadUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				if user, ok := GetUser(r); ok {
					got = user.Username
				}
				w.WriteHeader(http.StatusOK)
			}))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, sessionRequest(t, tc.username))

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantStatus == http.StatusOK, nextCalled)
			assert.Equal(t, tc.wantUser, got)
			users.AssertExpectations(t)
		})
	}
}

func TestRequireUserAndAdmin(t *testing.T) {
	admin := &domain.User{Username: "root", Role: domain.RoleAdmin, Status: domain.StatusEnabled}
	plain := &domain.User{Username: "alice", Role: domain.RoleUser, Status: domain.StatusEnabled}

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name      string
		user      *domain.User
		wantUser  int
		wantAdmin int
	}{
		{name: "anonymous", wantUser: http.StatusUnauthorized, wantAdmin: http.StatusUnauthorized},
		{name: "plain user", user: plain, wantUser: http.StatusOK, wantAdmin: http.StatusForbidden},
		{name: "admin", user: admin, wantUser: http.StatusOK, wantAdmin: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			newReq := func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/", nil)
				if tc.user != nil {
					r = r.WithContext(WithUser(r.Context(), tc.user))
				}
				return r
			}

			rec := httptest.NewRecorder()
			RequireUser(ok).ServeHTTP(rec, newReq())
			assert.Equal(t, tc.wantUser, rec.Code)

			rec = httptest.NewRecorder()
			RequireAdmin(ok).ServeHTTP(rec, newReq())
			assert.Equal(t, tc.wantAdmin, rec.Code)
		})
	}
}

func TestGetUserWithoutUser(t *testing.T) {
	user, ok := GetUser(httptest.NewRequest(http.MethodGet, "/", nil))
	require.False(t, ok)
	assert.Nil(t, user)
}
