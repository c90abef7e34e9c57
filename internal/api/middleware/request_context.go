package middleware

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/phrazzld/webapp/internal/api/shared"
	"github.com/phrazzld/webapp/internal/platform/logger"
	"github.com/phrazzld/webapp/internal/session"
)

// MethodFieldName is the form field used to tunnel DELETE through POST.
const MethodFieldName = "_http_method"

// maxFormMemory bounds the in-memory part of a parsed multipart form.
const maxFormMemory = 10 << 20

// ErrCSRFMissingSession is returned when no session was loaded for the request.
var ErrCSRFMissingSession = errors.New("no session available for CSRF check")

// RequestContextOption customizes the RequestContext middleware.
type RequestContextOption func(*requestContextOptions)

type requestContextOptions struct {
	csrfExempt bool
}

// CSRFExempt disables the CSRF check for the routes the middleware wraps.
func CSRFExempt() RequestContextOption {
	return func(o *requestContextOptions) {
		o.csrfExempt = true
	}
}

// RequestContext establishes the request's effective method, CSRF validity
// and preferred representation before any handler runs. Requests whose
// effective method is POST or a tunneled DELETE must carry the session's
// CSRF token in the _csrf_token form field, otherwise they are answered with
// 400 and the chain stops. Requires the Sessions middleware.
func RequestContext(opts ...RequestContextOption) func(http.Handler) http.Handler {
	options := requestContextOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc := shared.RequestContext{
				Method:         r.Method,
				Representation: shared.Negotiate(r),
			}

			if r.Method == http.MethodPost {
				if err := parseForm(r); err != nil {
					shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid form data", err)
					return
				}
				if r.PostForm.Get(MethodFieldName) == http.MethodDelete {
					rc.Method = http.MethodDelete
					rc.Tunneled = true
				}

				if !options.csrfExempt {
					if err := checkCSRF(r); err != nil {
						shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid CSRF token", err,
							shared.WithElevatedLogLevel())
						return
					}
					rc.CSRFChecked = true
				}
			}

			logger.FromContext(r.Context()).Debug("request context established",
				slog.String("method", rc.Method),
				slog.Bool("tunneled", rc.Tunneled),
				slog.Bool("csrf_checked", rc.CSRFChecked),
				slog.String("representation", rc.Representation.String()))

			next.ServeHTTP(w, r.WithContext(shared.WithRequestContext(r.Context(), rc)))
		})
	}
}

// parseForm parses an urlencoded or multipart body into r.PostForm.
func parseForm(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(maxFormMemory)
	}
	return r.ParseForm()
}

func checkCSRF(r *http.Request) error {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		return ErrCSRFMissingSession
	}
	return sess.ValidateCSRFToken(r.PostForm.Get(session.CSRFFieldName))
}
