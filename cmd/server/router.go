package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/webapp/internal/api"
	apiMiddleware "github.com/phrazzld/webapp/internal/api/middleware"
	"github.com/phrazzld/webapp/internal/api/shared"
	"github.com/phrazzld/webapp/internal/ident"
)

// notFound answers requests that match no route, and routes whose path
// identifiers fail validation.
func notFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, "Not found")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
}

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(apiMiddleware.Sessions(app.sessions))

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.userStore)

	rootHandler := api.NewRootHandler(app.shaper, app.config.Server.SiteName, app.version)
	aboutHandler := api.NewAboutHandler(app.shaper)
	schemaHandler := api.NewSchemaHandler(notFound)
	userHandler := api.NewUserHandler(app.userService, app.shaper)
	sessionHandler := api.NewSessionHandler(app.authService, app.shaper)
	adminHandler := api.NewAdminHandler(app.mailService, app.shaper)

	validName := apiMiddleware.ValidateParam("name", ident.ParseName, notFound)
	validIUID := apiMiddleware.ValidateParam("iuid", ident.ParseIUID, notFound)

	r.Get("/health", api.Health)

	r.Group(func(r chi.Router) {
		r.Use(apiMiddleware.RequestContext())
		r.Use(authMiddleware.LoadUser)

		r.Get("/", rootHandler.Home)

		r.Post("/session", sessionHandler.Session)
		r.Delete("/session", sessionHandler.Logout)

		r.With(apiMiddleware.RequireAdmin).Post("/admin/mail-test", adminHandler.MailTest)

		r.Route("/api", func(r chi.Router) {
			r.Get("/", rootHandler.APIRoot)
			r.Get("/about/software", aboutHandler.Software)
			r.Get("/csrf", sessionHandler.CSRFToken)
			r.With(validName).Get("/schema/{name}", schemaHandler.Get)
			r.With(validName, apiMiddleware.RequireUser).Get("/user/{name}", userHandler.GetUser)
			r.With(validIUID, apiMiddleware.RequireUser).Get("/logs/{iuid}", userHandler.GetLog)
		})
	})

	return r
}
