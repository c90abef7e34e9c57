package api

import (
	"net/http"

	"github.com/phrazzld/webapp/internal/api/shared"
	"github.com/phrazzld/webapp/internal/domain"
)

// Schema paths, relative to SCHEMA_BASE_URL.
const (
	SchemaRoot          = "/root"
	SchemaAboutSoftware = "/about-software"
	SchemaUser          = "/user"
	SchemaLog           = "/log"
)

// LoginRequest holds the fields of the login form.
type LoginRequest struct {
	Username string `validate:"required,max=256"`
	Password string `validate:"required,max=256"`
}

// Link is a hypermedia reference in an envelope.
type Link struct {
	Href string `json:"href"`
}

// UserLink identifies a user and points at their profile.
type UserLink struct {
	Username string `json:"username"`
	Href     string `json:"href"`
}

func userPath(username string) string {
	return "/api/user/" + username
}

func logPath(iuid string) string {
	return "/api/logs/" + iuid
}

func schemaPath(name string) string {
	return "/api/schema/" + name
}

// userFields returns the public fields of user. The password hash and the
// CouchDB revision are never exposed.
func userFields(r *http.Request, user *domain.User) map[string]any {
	return map[string]any{
		"_id":      user.IUID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
		"status":   user.Status,
		"created":  user.Created,
		"modified": user.Modified,
		"href":     shared.AbsoluteURL(r, userPath(user.Username)),
	}
}

// logFields returns the public fields of entry. The entry's own time is
// logged_at; the envelope timestamp stays the response instant.
func logFields(r *http.Request, entry *domain.LogEntry) map[string]any {
	return map[string]any{
		"_id":       entry.IUID,
		"docid":     entry.DocID,
		"action":    entry.Action,
		"username":  entry.Username,
		"logged_at": entry.Timestamp,
		"user":      UserLink{Username: entry.Username, Href: shared.AbsoluteURL(r, userPath(entry.Username))},
	}
}
