package api

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"

	"github.com/phrazzld/webapp/internal/api/shared"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// SchemaHandler serves the JSON Schema documents describing API responses.
type SchemaHandler struct {
	notFound http.HandlerFunc
}

// NewSchemaHandler creates a SchemaHandler that answers unknown schema names
// with notFound.
func NewSchemaHandler(notFound http.HandlerFunc) *SchemaHandler {
	return &SchemaHandler{notFound: notFound}
}

// Get handles GET /api/schema/{name}. The name must have been validated by
// middleware.ValidateParam.
func (h *SchemaHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := shared.PathParam(r.Context(), "name")
	data, err := fs.ReadFile(schemaFS, "schemas/"+name+".json")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			h.notFound(w, r)
			return
		}
		handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
