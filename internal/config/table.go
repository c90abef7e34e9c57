package config

import "strings"

// Converter turns the raw value of an environment variable into a setting
// value. A returned error means the variable is ignored.
type Converter func(raw string) (any, error)

// setting is one row of the settings table.
type setting struct {
	// Name is the setting name as it appears in the settings file and,
	// when Env is non-nil, the environment.
	Name    string
	Default any
	// Env is the converter for the environment variable of the same name.
	// Settings without one cannot be set from the environment.
	Env Converter
}

// settingsTable lists every known setting with its default value.
var settingsTable = []setting{
	{Name: "SERVER_NAME", Default: "127.0.0.1:5002"},
	{Name: "SITE_NAME", Default: "webapp"},
	{Name: "DEBUG", Default: false, Env: BoolValue},
	{Name: "LOG_LEVEL", Default: "info"},
	{Name: "LOG_FORMAT", Default: "json"},
	{Name: "SECRET_KEY", Default: "", Env: StringValue},
	{Name: "SALT_LENGTH", Default: 12},
	{Name: "COUCHDB_URL", Default: "http://127.0.0.1:5984/", Env: StringValue},
	{Name: "COUCHDB_USERNAME", Default: "", Env: StringValue},
	{Name: "COUCHDB_PASSWORD", Default: "", Env: StringValue},
	{Name: "COUCHDB_DBNAME", Default: "webapp"},
	{Name: "MIN_PASSWORD_LENGTH", Default: 6},
	{Name: "PERMANENT_SESSION_LIFETIME", Default: 7 * 24 * 60 * 60},
	{Name: "SESSION_COOKIE_SECURE", Default: false, Env: BoolValue},
	{Name: "MAIL_SERVER", Default: "localhost", Env: StringValue},
	{Name: "MAIL_PORT", Default: 25},
	{Name: "MAIL_USE_TLS", Default: false, Env: BoolValue},
	{Name: "MAIL_USERNAME", Default: "", Env: StringValue},
	{Name: "MAIL_PASSWORD", Default: "", Env: StringValue},
	{Name: "MAIL_DEFAULT_SENDER", Default: "", Env: StringValue},
	{Name: "USER_ENABLE_IMMEDIATELY", Default: false},
	{Name: "USER_ENABLE_EMAIL_WHITELIST", Default: []string{}},
	{Name: "SCHEMA_BASE_URL", Default: "http://127.0.0.1:5002/api/schema"},
}

// ToBool converts a string to a boolean. Empty input is false; "true", "t",
// "yes" and "y" in any case are true; anything else is false.
func ToBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "t", "yes", "y":
		return true
	default:
		return false
	}
}

// BoolValue is the Converter for boolean settings.
func BoolValue(raw string) (any, error) {
	return ToBool(raw), nil
}

// StringValue is the Converter for string settings.
func StringValue(raw string) (any, error) {
	return raw, nil
}

// key returns the viper key for a setting name.
func key(name string) string {
	return strings.ToLower(name)
}
