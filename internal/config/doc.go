// Package config resolves the application settings from three layers:
// compiled-in defaults, an optional JSON settings file and a fixed allow-list
// of environment variables, in that order of precedence. The result is
// validated once at startup and treated as read-only afterwards.
package config
