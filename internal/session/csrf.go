package session

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"html/template"

	"github.com/phrazzld/webapp/internal/ident"
)

// CSRFFieldName is the form field carrying the submitted CSRF token.
const CSRFFieldName = "_csrf_token"

// CSRF validation errors. All of them wrap ErrCSRFInvalid.
var (
	ErrCSRFInvalid = errors.New("invalid CSRF token")

	ErrCSRFNoSessionToken = fmt.Errorf("%w: no token in session", ErrCSRFInvalid)
	ErrCSRFNotSubmitted   = fmt.Errorf("%w: no token submitted", ErrCSRFInvalid)
	ErrCSRFMismatch       = fmt.Errorf("%w: token mismatch", ErrCSRFInvalid)
)

// CSRFToken returns the session's CSRF token without creating one.
func (s *Session) CSRFToken() (string, bool) {
	token := s.getString(csrfTokenKey)
	return token, token != ""
}

// GetOrCreateCSRFToken returns the session's CSRF token, creating it if the
// session has none yet. A newly created token only persists once the session
// is saved.
func (s *Session) GetOrCreateCSRFToken() string {
	if token, ok := s.CSRFToken(); ok {
		return token
	}
	token := ident.NewIUID()
	s.raw.Values[csrfTokenKey] = token
	return token
}

// ValidateCSRFToken checks submitted against the session token by exact
// match. The session token is left in place whatever the outcome.
func (s *Session) ValidateCSRFToken(submitted string) error {
	token, ok := s.CSRFToken()
	if !ok {
		return ErrCSRFNoSessionToken
	}
	if submitted == "" {
		return ErrCSRFNotSubmitted
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(submitted)) != 1 {
		return ErrCSRFMismatch
	}
	return nil
}

// HiddenField renders the hidden form input carrying token.
func HiddenField(token string) template.HTML {
	return template.HTML(fmt.Sprintf(`<input type="hidden" name="%s" value="%s">`,
		CSRFFieldName, template.HTMLEscapeString(token)))
}
