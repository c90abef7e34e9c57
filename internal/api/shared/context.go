package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"time"
)

// Key type for context values
type ContextKey string

// Context keys for various values
const (
	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// RequestContextKey is the key for the established RequestContext
	RequestContextKey ContextKey = "requestContext"

	// PathParamsKey is the key for validated, normalized path parameters
	PathParamsKey ContextKey = "pathParams"

	// TraceIDLength is the number of bytes used to generate the trace ID
	TraceIDLength = 16 // 32 hex characters
)

// Representation is the response format preferred by the client.
type Representation int

// Representations, HTML being the default.
const (
	RepresentationHTML Representation = iota
	RepresentationJSON
)

// String returns the name of the representation.
func (r Representation) String() string {
	if r == RepresentationJSON {
		return "json"
	}
	return "html"
}

// RequestContext is the trust context of one request, established before
// any handler runs and never changed afterwards.
type RequestContext struct {
	// Method is the effective HTTP method after method tunneling.
	Method string
	// Tunneled is true when Method came from the _http_method form field.
	Tunneled bool
	// CSRFChecked is true when a CSRF check ran and passed.
	CSRFChecked bool
	// Representation is the client's preferred response format.
	Representation Representation
}

// WantsJSON reports whether the client prefers JSON over HTML.
func (rc RequestContext) WantsJSON() bool {
	return rc.Representation == RepresentationJSON
}

// WithRequestContext returns a copy of ctx carrying rc.
func WithRequestContext(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, RequestContextKey, rc)
}

// GetRequestContext retrieves the RequestContext from ctx.
func GetRequestContext(ctx context.Context) (RequestContext, bool) {
	rc, ok := ctx.Value(RequestContextKey).(RequestContext)
	return rc, ok
}

// WithPathParam returns a copy of ctx carrying a validated path parameter.
// Earlier parameters stored in ctx are preserved.
func WithPathParam(ctx context.Context, name, value string) context.Context {
	prev, _ := ctx.Value(PathParamsKey).(map[string]string)
	params := make(map[string]string, len(prev)+1)
	for k, v := range prev {
		params[k] = v
	}
	params[name] = value
	return context.WithValue(ctx, PathParamsKey, params)
}

// PathParam returns the validated, normalized value of a path parameter,
// or "" if it was not validated for this route.
func PathParam(ctx context.Context, name string) string {
	params, _ := ctx.Value(PathParamsKey).(map[string]string)
	return params[name]
}

// SetTraceID adds a trace ID to the context.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	traceID := generateTraceID()
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID creates a random trace ID for request tracking.
// Returns a 32-character hex string. If crypto/rand fails, falls back to a
// time-based value, never a static one.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	n, err := rand.Read(b)

	if err != nil || n != TraceIDLength {
		slog.Error("failed to generate secure random trace ID",
			"error", err,
			"bytes_read", n,
			"fallback", "time-based generation")
		return generateFallbackTraceID()
	}

	return hex.EncodeToString(b)
}

// generateFallbackTraceID creates a trace ID from the clock when crypto/rand fails.
func generateFallbackTraceID() string {
	fallbackID := make([]byte, TraceIDLength)
	now := time.Now()
	binary.BigEndian.PutUint64(fallbackID[:8], uint64(now.UnixNano()))
	binary.BigEndian.PutUint32(fallbackID[8:12], uint32(now.Nanosecond()))
	binary.BigEndian.PutUint32(fallbackID[12:16], uint32(now.Unix()))
	return hex.EncodeToString(fallbackID)
}
