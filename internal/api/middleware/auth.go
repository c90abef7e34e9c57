package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/webapp/internal/api/shared"
	"github.com/phrazzld/webapp/internal/domain"
	"github.com/phrazzld/webapp/internal/platform/logger"
	"github.com/phrazzld/webapp/internal/redact"
	"github.com/phrazzld/webapp/internal/session"
	"github.com/phrazzld/webapp/internal/store"
)

type userContextKey struct{}

// AuthMiddleware resolves the logged-in user from the session.
type AuthMiddleware struct {
	users store.UserStore
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(users store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		users: users,
	}
}

// LoadUser looks up the user named in the session and adds it to the request
// context. Anonymous requests pass through unchanged, as do sessions naming
// a user that no longer exists or is no longer enabled.
func (m *AuthMiddleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok || sess.Username() == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromContext(r.Context())
		user, err := m.users.GetByUsername(r.Context(), sess.Username())
		switch {
		case errors.Is(err, store.ErrNotFound):
			log.Debug("session names unknown user", slog.String("username", sess.Username()))
			next.ServeHTTP(w, r)
			return
		case err != nil:
			log.Error("failed to load session user", slog.String("error", redact.Error(err)))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			return
		case !user.IsEnabled():
			log.Debug("session names disabled user", slog.String("username", user.Username))
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// RequireUser rejects requests without a logged-in user with 401.
// Requires LoadUser.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r); !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Login required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests unless an admin is logged in.
// Requires LoadUser.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r)
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Login required")
			return
		}
		if !user.IsAdmin() {
			shared.RespondWithError(w, r, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithUser returns a copy of ctx carrying the logged-in user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser extracts the logged-in user from the request context.
// Returns the user and a boolean indicating if one was found.
func GetUser(r *http.Request) (*domain.User, bool) {
	user, ok := r.Context().Value(userContextKey{}).(*domain.User)
	return user, ok && user != nil
}
