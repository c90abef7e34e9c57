package config

import "net"

// DefaultListenPort is used when SERVER_NAME names a host without a port.
const DefaultListenPort = "5002"

// Settings holds the effective application configuration.
// It organizes settings into logical groups; every group is squashed so the
// flat setting names (SECRET_KEY, COUCHDB_URL, ...) map directly onto fields.
type Settings struct {
	Server   ServerSettings   `mapstructure:",squash"`
	Auth     AuthSettings     `mapstructure:",squash"`
	Database DatabaseSettings `mapstructure:",squash"`
	Mail     MailSettings     `mapstructure:",squash"`
	User     UserSettings     `mapstructure:",squash"`

	// SchemaBaseURL is prepended to schema paths in Link headers.
	SchemaBaseURL string `mapstructure:"schema_base_url"`

	// SettingsFile is the path of the settings file that was loaded,
	// or empty if none was found.
	SettingsFile string `mapstructure:"-"`

	// Raw is the merged view of all layers keyed by setting name as written,
	// including keys from the settings file that no field consumes.
	Raw map[string]any `mapstructure:"-"`
}

// ServerSettings contains the HTTP server and logging settings.
type ServerSettings struct {
	// ServerName is a host, optionally with a port. See ListenAddr.
	ServerName string `mapstructure:"server_name" validate:"required"`
	SiteName  string `mapstructure:"site_name"`
	Debug     bool   `mapstructure:"debug"`
	LogLevel  string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"required,oneof=json text"`
}

// AuthSettings contains session and password settings.
type AuthSettings struct {
	SecretKey         string `mapstructure:"secret_key" validate:"required"`
	SaltLength        int    `mapstructure:"salt_length" validate:"gt=6"`
	MinPasswordLength int    `mapstructure:"min_password_length" validate:"gt=4"`
	// SessionLifetime is the permanent session lifetime in seconds.
	SessionLifetime int `mapstructure:"permanent_session_lifetime"`
	// SessionCookieSecure marks the session cookie Secure. Enable it when the
	// site is reached over HTTPS.
	SessionCookieSecure bool `mapstructure:"session_cookie_secure"`
}

// DatabaseSettings contains the CouchDB connection settings.
type DatabaseSettings struct {
	URL      string `mapstructure:"couchdb_url"`
	Username string `mapstructure:"couchdb_username"`
	Password string `mapstructure:"couchdb_password"`
	DBName   string `mapstructure:"couchdb_dbname"`
}

// MailSettings contains the outgoing mail settings.
type MailSettings struct {
	Server        string `mapstructure:"mail_server"`
	Port          int    `mapstructure:"mail_port"`
	UseTLS        bool   `mapstructure:"mail_use_tls"`
	Username      string `mapstructure:"mail_username"`
	Password      string `mapstructure:"mail_password"`
	DefaultSender string `mapstructure:"mail_default_sender"`
}

// UserSettings contains user account policy settings.
type UserSettings struct {
	EnableImmediately    bool     `mapstructure:"user_enable_immediately"`
	EnableEmailWhitelist []string `mapstructure:"user_enable_email_whitelist"`
}

// ListenAddr returns the address the HTTP server listens on: ServerName,
// with DefaultListenPort appended when it carries no port.
func (s ServerSettings) ListenAddr() string {
	if _, _, err := net.SplitHostPort(s.ServerName); err == nil {
		return s.ServerName
	}
	return net.JoinHostPort(s.ServerName, DefaultListenPort)
}
