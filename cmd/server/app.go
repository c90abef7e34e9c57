package main

import (
	"context"
	"fmt"
	"log/slog"

	kivik "github.com/go-kivik/kivik/v4"
	"github.com/phrazzld/webapp/internal/api"
	"github.com/phrazzld/webapp/internal/api/shared"
	"github.com/phrazzld/webapp/internal/config"
	"github.com/phrazzld/webapp/internal/platform/couchdb"
	"github.com/phrazzld/webapp/internal/platform/mail"
	"github.com/phrazzld/webapp/internal/service"
	"github.com/phrazzld/webapp/internal/service/auth"
	"github.com/phrazzld/webapp/internal/session"
	"github.com/phrazzld/webapp/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config  *config.Settings
	version string

	// Core services
	logger *slog.Logger
	client *kivik.Client

	// Stores
	userStore store.UserStore
	logStore  store.LogStore

	// Request-scoped collaborators
	sessions *session.Manager
	shaper   *shared.Shaper

	// Service interfaces
	authService service.AuthService
	userService service.UserService
	mailService service.MailService
}

// newApplication creates a new application instance with all dependencies initialized.
// The CouchDB client is owned by the application and closed by cleanup.
func newApplication(cfg *config.Settings, logger *slog.Logger, client *kivik.Client, db *kivik.DB) *application {
	app := &application{
		config:  cfg,
		version: api.Version(),
		logger:  logger,
		client:  client,
	}

	app.userStore = couchdb.NewCouchUserStore(db)
	app.logStore = couchdb.NewCouchLogStore(db)

	app.wireServices(auth.NewBcryptVerifier(), mail.NewMailer(cfg.Mail, logger.With("component", "mailer")))

	logger.Info("Application initialized successfully", slog.String("version", app.version))
	return app
}

// wireServices builds the request-scoped collaborators and services from the
// stores already set on app.
func (app *application) wireServices(verifier auth.PasswordVerifier, sender mail.Sender) {
	app.sessions = session.NewManager(app.config.Auth)
	app.shaper = shared.NewShaper(app.config.SchemaBaseURL)

	app.authService = service.NewAuthService(app.userStore, app.logStore, verifier, app.logger)
	app.userService = service.NewUserService(app.userStore, app.logStore, app.logger)
	app.mailService = service.NewMailService(sender, app.config.Server.SiteName, app.logger)
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.client != nil {
		if err := app.client.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
