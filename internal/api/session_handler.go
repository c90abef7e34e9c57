package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/webapp/internal/api/middleware"
	"github.com/phrazzld/webapp/internal/api/shared"
	"github.com/phrazzld/webapp/internal/domain"
	"github.com/phrazzld/webapp/internal/service"
	"github.com/phrazzld/webapp/internal/session"
)

// errNoSession is returned when a handler runs without the Sessions middleware.
var errNoSession = errors.New("no session in request context")

// SessionHandler handles login, logout and CSRF token requests.
type SessionHandler struct {
	auth   service.AuthService
	shaper *shared.Shaper
}

// NewSessionHandler creates a new SessionHandler with the given dependencies.
func NewSessionHandler(auth service.AuthService, shaper *shared.Shaper) *SessionHandler {
	return &SessionHandler{
		auth:   auth,
		shaper: shaper,
	}
}

// CSRFToken handles GET /api/csrf. The token is created on first request
// and stays the same for the rest of the session.
func (h *SessionHandler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		handleServiceError(w, r, errNoSession)
		return
	}

	token := sess.GetOrCreateCSRFToken()
	if err := sess.Save(w, r); err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.shaper.Respond(w, r, http.StatusOK, map[string]any{
		"csrf_token": token,
		"field":      session.CSRFFieldName,
	}, "")
}

// Session dispatches POST /session by its effective method: a tunneled
// DELETE logs out, anything else logs in.
func (h *SessionHandler) Session(w http.ResponseWriter, r *http.Request) {
	if rc, ok := shared.GetRequestContext(r.Context()); ok && rc.Method == http.MethodDelete {
		h.Logout(w, r)
		return
	}
	h.Login(w, r)
}

// Login handles POST /session with the username and password form fields.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		handleServiceError(w, r, errNoSession)
		return
	}

	req := LoginRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		var opts []shared.ResponseOption
		if errors.Is(err, domain.ErrInvalidCredentials) {
			opts = append(opts, shared.WithElevatedLogLevel())
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err, opts...)
		return
	}

	sess.SetUsername(user.Username)
	if err := sess.Save(w, r); err != nil {
		handleServiceError(w, r, err)
		return
	}

	if wantsJSON(r) {
		h.shaper.Respond(w, r, http.StatusOK, userFields(r, user), SchemaUser)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout handles DELETE /session and its tunneled POST form. Logging out
// without being logged in is not an error.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		handleServiceError(w, r, errNoSession)
		return
	}

	if user, ok := middleware.GetUser(r); ok {
		if err := h.auth.Logout(r.Context(), user); err != nil {
			handleServiceError(w, r, err)
			return
		}
	}

	sess.ClearUsername()
	if err := sess.Save(w, r); err != nil {
		handleServiceError(w, r, err)
		return
	}

	if wantsJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func wantsJSON(r *http.Request) bool {
	rc, ok := shared.GetRequestContext(r.Context())
	return ok && rc.WantsJSON()
}
