package api

import (
	"net/http"

	"github.com/phrazzld/webapp/internal/api/middleware"
	"github.com/phrazzld/webapp/internal/api/shared"
	"github.com/phrazzld/webapp/internal/service"
)

// AdminHandler serves administrator-only operations.
type AdminHandler struct {
	mail   service.MailService
	shaper *shared.Shaper
}

// NewAdminHandler creates a new AdminHandler with the given dependencies.
func NewAdminHandler(mail service.MailService, shaper *shared.Shaper) *AdminHandler {
	return &AdminHandler{
		mail:   mail,
		shaper: shaper,
	}
}

// MailTest handles POST /admin/mail-test by sending a test mail to the
// logged-in admin. Requires middleware.RequireAdmin.
func (h *AdminHandler) MailTest(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.GetUser(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Login required")
		return
	}

	if err := h.mail.SendTestMail(r.Context(), admin); err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.shaper.Respond(w, r, http.StatusOK, map[string]any{
		"sent_to": admin.Email,
	}, "")
}
