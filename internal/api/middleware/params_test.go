package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/webapp/internal/api/shared"
	"github.com/phrazzld/webapp/internal/ident"
	"github.com/stretchr/testify/assert"
)

func TestValidateParam(t *testing.T) {
	upper := strings.Repeat("AB", 16)

	tests := []struct {
		name       string
		pattern    string
		param      string
		parse      ident.ParseFunc
		path       string
		wantStatus int
		wantValue  string
	}{
		{
			name:       "valid iuid is lowercased",
			pattern:    "/logs/{iuid}",
			param:      "iuid",
			parse:      ident.ParseIUID,
			path:       "/logs/" + upper,
			wantStatus: http.StatusOK,
			wantValue:  strings.ToLower(upper),
		},
		{
			name:       "short iuid",
			pattern:    "/logs/{iuid}",
			param:      "iuid",
			parse:      ident.ParseIUID,
			path:       "/logs/AB12",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "valid name is lowercased",
			pattern:    "/user/{name}",
			param:      "name",
			parse:      ident.ParseName,
			path:       "/user/Alice_2",
			wantStatus: http.StatusOK,
			wantValue:  "alice_2",
		},
		{
			name:       "name starting with digit",
			pattern:    "/user/{name}",
			param:      "name",
			parse:      ident.ParseName,
			path:       "/user/2alice",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got string
			notFoundCalled := false
			notFound := func(w http.ResponseWriter, r *http.Request) {
				notFoundCalled = true
				w.WriteHeader(http.StatusNotFound)
			}

			r := chi.NewRouter()
			r.With(ValidateParam(tc.param, tc.parse, notFound)).Get(tc.pattern, func(w http.ResponseWriter, r *http.Request) {
				got = shared.PathParam(r.Context(), tc.param)
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantStatus == http.StatusNotFound, notFoundCalled)
			assert.Equal(t, tc.wantValue, got)
		})
	}
}
