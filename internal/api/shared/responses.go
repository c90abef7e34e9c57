package shared

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/phrazzld/webapp/internal/domain"
	"github.com/phrazzld/webapp/internal/redact"
)

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"-"` // Not serialized to JSON, used for logging
	TraceID string `json:"trace_id,omitempty"`
}

// ResponseOption defines a function to customize response behavior.
type ResponseOption func(*responseOptions)

// responseOptions holds configurable options for error responses.
type responseOptions struct {
	elevateLogLevel bool
}

// WithElevatedLogLevel returns a ResponseOption that raises 4xx errors to WARN level
// instead of the default DEBUG level. Use for important operational issues like
// rate limiting or repeated auth failures.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", MIMEJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response with the given status code and message.
// It also sets the TraceID from the request context if available.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	// Get trace ID from context if available
	traceID := GetTraceID(r.Context())

	// Create the error response
	errorResponse := ErrorResponse{
		Error:   message,
		Code:    status,
		TraceID: traceID,
	}

	// Log the error with trace ID for correlation
	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, errorResponse)
}

// RespondWithErrorAndLog writes a JSON error response and also logs the detailed error.
// This is useful for handling errors where you want to log the full error but only
// expose a sanitized version to the client.
//
// Log level strategy:
// - 5xx errors: Always logged at ERROR level
// - 4xx errors: By default logged at DEBUG level
// - 429 Too Many Requests: Logged at WARN level (operational concern)
// - Other status codes: Logged at DEBUG level
//
// For special cases where 4xx errors need higher visibility (e.g., repeated auth failures),
// use the WithElevatedLogLevel() option to elevate to WARN level.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
	opts ...ResponseOption,
) {
	// Get trace ID from context if available
	traceID := GetTraceID(r.Context())

	// Create the error response with only the safe message
	// Note: We never include the raw error string in the response
	errorResponse := ErrorResponse{
		Error:   userMessage,
		Code:    status,
		TraceID: traceID,
	}

	// Set up common log attributes
	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}

	// Include the redacted error details (but only in the logs)
	if err != nil {
		// Log the redacted error message
		redactedError := redact.Error(err)
		logAttrs = append(logAttrs, slog.String("error", redactedError))

		// Include the error type for debugging context (safe)
		logAttrs = append(logAttrs, slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	// Initialize response options with defaults
	responseOpts := responseOptions{}

	// Apply any option overrides
	for _, opt := range opts {
		opt(&responseOpts)
	}

	// Set appropriate log level based on status code and options
	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		// Log server errors (5xx) at ERROR level
		logLevel = slog.LevelError
	} else if status == http.StatusTooManyRequests {
		// Rate limiting (429) is always an operational concern, log at WARN
		logLevel = slog.LevelWarn
	} else if responseOpts.elevateLogLevel && status >= http.StatusBadRequest && status < http.StatusInternalServerError {
		// Elevated 4xx errors (e.g., repeated auth failures) at WARN level when explicitly requested
		logLevel = slog.LevelWarn
	}

	// Log with the determined level
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	// Send sanitized response to client
	RespondWithJSON(w, r, status, errorResponse)
}

// Envelope keys placed before the caller's fields.
const (
	EnvelopeIDKey        = "$id"
	EnvelopeTimestampKey = "timestamp"
	EnvelopeIUIDKey      = "iuid"

	documentIDKey = "_id"
)

var envelopeHeadKeys = []string{EnvelopeIDKey, EnvelopeTimestampKey, EnvelopeIUIDKey}

// Envelope is a JSON response body. It serializes $id, timestamp and iuid
// first, then the remaining keys in sorted order.
type Envelope map[string]any

// MarshalJSON implements json.Marshaler with a stable key order.
func (e Envelope) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(e))
	for k := range e {
		if k != EnvelopeIDKey && k != EnvelopeTimestampKey && k != EnvelopeIUIDKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	ordered := make([]string, 0, len(e))
	for _, k := range envelopeHeadKeys {
		if _, ok := e[k]; ok {
			ordered = append(ordered, k)
		}
	}
	ordered = append(ordered, keys...)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range ordered {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(e[k])
		if err != nil {
			return nil, fmt.Errorf("marshal envelope field %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RequestURL reconstructs the absolute URL of r, including the query string.
func RequestURL(r *http.Request) string {
	u := url.URL{
		Scheme:   requestScheme(r),
		Host:     r.Host,
		Path:     r.URL.Path,
		RawPath:  r.URL.RawPath,
		RawQuery: r.URL.RawQuery,
	}
	return u.String()
}

// AbsoluteURL returns the absolute URL of path on the host r was sent to.
func AbsoluteURL(r *http.Request, path string) string {
	u := url.URL{Scheme: requestScheme(r), Host: r.Host, Path: path}
	return u.String()
}

func requestScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// NewEnvelope builds the response envelope for r at the given instant.
// A caller "_id" is emitted as "iuid" unless the caller also supplies "iuid".
// Caller fields win over $id and timestamp.
func NewEnvelope(r *http.Request, now time.Time, fields map[string]any) Envelope {
	env := Envelope{
		EnvelopeIDKey:        RequestURL(r),
		EnvelopeTimestampKey: domain.FormatTime(now),
	}
	if id, ok := fields[documentIDKey]; ok {
		env[EnvelopeIUIDKey] = id
	}
	for k, v := range fields {
		if k == documentIDKey {
			continue
		}
		env[k] = v
	}
	return env
}

// Shaper wraps handler payloads in envelopes and writes them as JSON.
type Shaper struct {
	schemaBaseURL string
	now           func() time.Time
}

// NewShaper creates a Shaper whose schema links are relative to schemaBaseURL.
func NewShaper(schemaBaseURL string) *Shaper {
	return &Shaper{
		schemaBaseURL: schemaBaseURL,
		now:           time.Now,
	}
}

// WithClock returns a copy of the Shaper that reads time from now.
func (s *Shaper) WithClock(now func() time.Time) *Shaper {
	c := *s
	c.now = now
	return &c
}

// Envelope builds the envelope for r using the Shaper's clock.
func (s *Shaper) Envelope(r *http.Request, fields map[string]any) Envelope {
	return NewEnvelope(r, s.now(), fields)
}

// SchemaURL returns the absolute URL of a schema path such as "/user".
func (s *Shaper) SchemaURL(schema string) string {
	return s.schemaBaseURL + schema
}

// Respond writes the envelope for fields as JSON. A non-empty schema adds a
// Link header pointing at the schema document.
func (s *Shaper) Respond(w http.ResponseWriter, r *http.Request, status int, fields map[string]any, schema string) {
	if schema != "" {
		w.Header().Set("Link", fmt.Sprintf("<%s>; rel=\"schema\"", s.SchemaURL(schema)))
	}
	RespondWithJSON(w, r, status, s.Envelope(r, fields))
}
