package session

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/phrazzld/webapp/internal/config"
)

// CookieName is the name of the session cookie.
const CookieName = "webapp_session"

// Session value keys
const (
	csrfTokenKey = "_csrf_token"
	usernameKey  = "username"
)

// Manager loads and saves sessions from a gorilla sessions.Store.
type Manager struct {
	store sessions.Store
	name  string
}

// NewManager creates a Manager backed by a signed cookie store.
// The cookie is marked Secure when cfg.SessionCookieSecure is set.
func NewManager(cfg config.AuthSettings) *Manager {
	cs := sessions.NewCookieStore([]byte(cfg.SecretKey))
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionLifetime,
		HttpOnly: true,
		Secure:   cfg.SessionCookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	return NewManagerWithStore(cs, CookieName)
}

// NewManagerWithStore creates a Manager using an arbitrary store.
func NewManagerWithStore(store sessions.Store, name string) *Manager {
	return &Manager{store: store, name: name}
}

// Load returns the session for r. A missing, expired or tampered cookie
// yields a new empty session; the decode error is returned alongside it so
// callers can log it.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	raw, err := m.store.Get(r, m.name)
	if raw == nil {
		raw = sessions.NewSession(m.store, m.name)
		raw.IsNew = true
	}
	return &Session{raw: raw}, err
}

// Session is the view of one client's session state.
type Session struct {
	raw *sessions.Session
}

// IsNew reports whether the session was created during this request.
func (s *Session) IsNew() bool {
	return s.raw.IsNew
}

// Username returns the logged-in username, or "" if nobody is logged in.
func (s *Session) Username() string {
	return s.getString(usernameKey)
}

// SetUsername records username as logged in.
func (s *Session) SetUsername(username string) {
	s.raw.Values[usernameKey] = username
}

// ClearUsername logs the user out. The CSRF token is kept.
func (s *Session) ClearUsername() {
	delete(s.raw.Values, usernameKey)
}

// Save writes the session to the response. It must be called before the
// response body is written.
func (s *Session) Save(w http.ResponseWriter, r *http.Request) error {
	return s.raw.Save(r, w)
}

func (s *Session) getString(key string) string {
	v, _ := s.raw.Values[key].(string)
	return v
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored in ctx, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}
