package shared

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs routes the default logger into a buffer for the test's duration.
func captureLogs(t *testing.T) *strings.Builder {
	t.Helper()
	var buf strings.Builder
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(old) })
	return &buf
}

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusCreated, map[string]any{"message": "ok"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, MIMEJSON, w.Header().Get("Content-Type"))
	assert.Equal(t, "{\"message\":\"ok\"}\n", w.Body.String())
}

func TestRespondWithJSONEncodingError(t *testing.T) {
	logs := captureLogs(t)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusOK, map[string]any{"bad": make(chan int)})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, logs.String(), "failed to encode JSON response")
}

func TestRespondWithError(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, "trace-1")
	req := httptest.NewRequest(http.MethodGet, "/test", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusBadRequest, "Invalid CSRF token")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid CSRF token", resp.Error)
	assert.Equal(t, "trace-1", resp.TraceID)
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		elevate   bool
		wantLevel string
	}{
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "level=ERROR"},
		{name: "client error", status: http.StatusNotFound, wantLevel: "level=DEBUG"},
		{name: "elevated client error", status: http.StatusUnauthorized, elevate: true, wantLevel: "level=WARN"},
		{name: "rate limited", status: http.StatusTooManyRequests, wantLevel: "level=WARN"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logs := captureLogs(t)
			ctx := context.WithValue(context.Background(), TraceIDKey, "trace-2")
			req := httptest.NewRequest(http.MethodGet, "/api/user/alice", nil).WithContext(ctx)
			w := httptest.NewRecorder()

			var opts []ResponseOption
			if tc.elevate {
				opts = append(opts, WithElevatedLogLevel())
			}
			RespondWithErrorAndLog(w, req, tc.status, "safe message", errors.New("couch down"), opts...)

			assert.Equal(t, tc.status, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "safe message", resp.Error)
			assert.NotContains(t, w.Body.String(), "couch down")

			out := logs.String()
			assert.Contains(t, out, tc.wantLevel)
			assert.Contains(t, out, "trace_id=trace-2")
			assert.Contains(t, out, "error_type=")
		})
	}
}

func TestRequestURL(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/user/alice?x=1", nil)
	assert.Equal(t, "http://example.com/api/user/alice?x=1", RequestURL(req))

	req.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https://example.com/api/user/alice?x=1", RequestURL(req))
}

func TestAbsoluteURL(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com:5002/api?x=1", nil)
	assert.Equal(t, "http://example.com:5002/api/user/alice", AbsoluteURL(req, "/api/user/alice"))
}

func TestNewEnvelope(t *testing.T) {
	now := time.Date(2024, 3, 5, 7, 8, 9, 123456789, time.UTC)
	req := httptest.NewRequest(http.MethodGet, "https://example/x", nil)

	t.Run("renames _id to iuid", func(t *testing.T) {
		env := NewEnvelope(req, now, map[string]any{"_id": "xyz", "name": "foo"})

		assert.Equal(t, Envelope{
			"$id":       "https://example/x",
			"timestamp": "2024-03-05T07:08:09.123Z",
			"iuid":      "xyz",
			"name":      "foo",
		}, env)
		_, hasID := env["_id"]
		assert.False(t, hasID)
	})

	t.Run("caller fields win", func(t *testing.T) {
		env := NewEnvelope(req, now, map[string]any{
			"$id":       "custom",
			"timestamp": "then",
			"_id":       "doc",
			"iuid":      "explicit",
		})

		assert.Equal(t, "custom", env["$id"])
		assert.Equal(t, "then", env["timestamp"])
		assert.Equal(t, "explicit", env["iuid"])
	})

	t.Run("no iuid without _id", func(t *testing.T) {
		env := NewEnvelope(req, now, nil)
		assert.Len(t, env, 2)
	})
}

func TestEnvelopeMarshalJSON(t *testing.T) {
	env := Envelope{
		"zeta":      1,
		"alpha":     []string{"a"},
		"iuid":      "xyz",
		"timestamp": "2024-03-05T07:08:09.123Z",
		"$id":       "https://example/x",
	}

	data, err := json.Marshal(env)
	require.NoError(t, err)

	assert.Equal(t,
		`{"$id":"https://example/x","timestamp":"2024-03-05T07:08:09.123Z","iuid":"xyz","alpha":["a"],"zeta":1}`,
		string(data))
}

func TestShaperRespond(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	shaper := NewShaper("https://schemas.example.org").WithClock(func() time.Time { return now })

	t.Run("with schema", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "https://example/x", nil)
		w := httptest.NewRecorder()

		shaper.Respond(w, req, http.StatusOK, map[string]any{"_id": "xyz", "name": "foo"}, "/user")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, MIMEJSON, w.Header().Get("Content-Type"))
		assert.Equal(t, `<https://schemas.example.org/user>; rel="schema"`, w.Header().Get("Link"))
		assert.JSONEq(t,
			`{"$id":"https://example/x","timestamp":"2024-01-01T00:00:00.000Z","iuid":"xyz","name":"foo"}`,
			w.Body.String())
	})

	t.Run("without schema", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "https://example/x", nil)
		w := httptest.NewRecorder()

		shaper.Respond(w, req, http.StatusOK, map[string]any{"name": "foo"}, "")

		assert.Empty(t, w.Header().Get("Link"))
	})
}
