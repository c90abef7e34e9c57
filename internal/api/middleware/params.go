package middleware

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/webapp/internal/api/shared"
	"github.com/phrazzld/webapp/internal/ident"
	"github.com/phrazzld/webapp/internal/platform/logger"
)

// ValidateParam parses the chi URL parameter param with parse. An invalid
// value is answered by notFound, exactly as if no route had matched. A valid
// value is stored normalized and read back with shared.PathParam.
func ValidateParam(param string, parse ident.ParseFunc, notFound http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			value, err := parse(chi.URLParam(r, param))
			if err != nil {
				logger.FromContext(r.Context()).Debug("rejected path parameter",
					slog.String("param", param),
					slog.String("error", err.Error()))
				notFound(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(shared.WithPathParam(r.Context(), param, value)))
		})
	}
}
