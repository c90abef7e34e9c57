package api

import (
	"net/http"

	"github.com/phrazzld/webapp/internal/api/middleware"
	"github.com/phrazzld/webapp/internal/api/shared"
	"github.com/phrazzld/webapp/internal/service"
)

// UserHandler serves user profiles and log entries.
type UserHandler struct {
	users  service.UserService
	shaper *shared.Shaper
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(users service.UserService, shaper *shared.Shaper) *UserHandler {
	return &UserHandler{
		users:  users,
		shaper: shaper,
	}
}

// GetUser handles GET /api/user/{name}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.GetUser(r)
	username := shared.PathParam(r.Context(), "name")

	user, err := h.users.GetUser(r.Context(), viewer, username)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.shaper.Respond(w, r, http.StatusOK, userFields(r, user), SchemaUser)
}

// GetLog handles GET /api/logs/{iuid}.
func (h *UserHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.GetUser(r)
	iuid := shared.PathParam(r.Context(), "iuid")

	entry, err := h.users.GetLog(r.Context(), viewer, iuid)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.shaper.Respond(w, r, http.StatusOK, logFields(r, entry), SchemaLog)
}
