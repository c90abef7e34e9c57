package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/webapp/internal/platform/logger"
	"github.com/phrazzld/webapp/internal/redact"
	"github.com/phrazzld/webapp/internal/session"
)

// Sessions loads the client's session and stores it in the request context.
// An undecodable cookie is logged and replaced by a fresh session.
func Sessions(m *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := m.Load(r)
			if err != nil {
				logger.FromContext(r.Context()).Debug("discarding unreadable session cookie",
					slog.String("error", redact.Error(err)))
			}
			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), sess)))
		})
	}
}
