package api

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/phrazzld/webapp/internal/api/middleware"
	"github.com/phrazzld/webapp/internal/api/shared"
	"github.com/phrazzld/webapp/internal/domain"
	"github.com/phrazzld/webapp/internal/platform/logger"
	"github.com/phrazzld/webapp/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var homeTemplate = template.Must(template.ParseFS(templateFS, "templates/home.html"))

// RootHandler serves the home page and the API root.
type RootHandler struct {
	shaper   *shared.Shaper
	siteName string
	version  string
}

// NewRootHandler creates a new RootHandler with the given dependencies.
func NewRootHandler(shaper *shared.Shaper, siteName, version string) *RootHandler {
	return &RootHandler{
		shaper:   shaper,
		siteName: siteName,
		version:  version,
	}
}

type homePage struct {
	SiteName  string
	Version   string
	User      *domain.User
	CSRFField template.HTML
}

// Home handles GET /. Clients preferring JSON are redirected to the API root.
func (h *RootHandler) Home(w http.ResponseWriter, r *http.Request) {
	if rc, ok := shared.GetRequestContext(r.Context()); ok && rc.WantsJSON() {
		http.Redirect(w, r, "/api", http.StatusFound)
		return
	}

	page := homePage{SiteName: h.siteName, Version: h.version}
	if user, ok := middleware.GetUser(r); ok {
		page.User = user
	}

	if sess, ok := session.FromContext(r.Context()); ok {
		_, hadToken := sess.CSRFToken()
		page.CSRFField = session.HiddenField(sess.GetOrCreateCSRFToken())
		if !hadToken {
			if err := sess.Save(w, r); err != nil {
				handleServiceError(w, r, err)
				return
			}
		}
	}

	w.Header().Set("Content-Type", shared.MIMEHTML+"; charset=utf-8")
	if err := homeTemplate.Execute(w, page); err != nil {
		logger.FromContext(r.Context()).Error("failed to render home page", slog.String("error", err.Error()))
	}
}

// APIRoot handles GET /api.
func (h *RootHandler) APIRoot(w http.ResponseWriter, r *http.Request) {
	fields := map[string]any{
		"title":   h.siteName,
		"version": h.version,
		"schema": map[string]Link{
			"root":           {Href: shared.AbsoluteURL(r, schemaPath("root"))},
			"about-software": {Href: shared.AbsoluteURL(r, schemaPath("about-software"))},
			"user":           {Href: shared.AbsoluteURL(r, schemaPath("user"))},
			"log":            {Href: shared.AbsoluteURL(r, schemaPath("log"))},
		},
		"about": map[string]Link{
			"software": {Href: shared.AbsoluteURL(r, "/api/about/software")},
		},
		"csrf": Link{Href: shared.AbsoluteURL(r, "/api/csrf")},
	}

	if user, ok := middleware.GetUser(r); ok {
		fields["user"] = UserLink{Username: user.Username, Href: shared.AbsoluteURL(r, userPath(user.Username))}
		if user.IsAdmin() {
			fields["admin"] = map[string]Link{
				"mail_test": {Href: shared.AbsoluteURL(r, "/admin/mail-test")},
			}
		}
	}

	h.shaper.Respond(w, r, http.StatusOK, fields, SchemaRoot)
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
