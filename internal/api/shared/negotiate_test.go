package shared

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreferJSON(t *testing.T) {
	tests := []struct {
		accept string
		want   bool
	}{
		{accept: "", want: false},
		{accept: "*/*", want: false},
		{accept: "text/html", want: false},
		{accept: "application/json", want: true},
		{accept: "application/json, text/html", want: false},
		{accept: "application/json;q=0.9, text/html;q=0.8", want: true},
		{accept: "text/html;q=0.5, application/json", want: true},
		{accept: "application/*", want: true},
		{accept: "application/json, */*;q=0.1", want: true},
		{accept: "text/*, application/json;q=0.5", want: false},
		{accept: "application/json;q=0", want: false},
		{accept: "text/html, application/xhtml+xml, */*;q=0.8", want: false},
		{accept: "garbage;;, application/json", want: true},
		{accept: "application/json;q=abc", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.accept, func(t *testing.T) {
			assert.Equal(t, tc.want, PreferJSON(tc.accept))
		})
	}
}

func TestNegotiate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, RepresentationHTML, Negotiate(req))

	req.Header.Set("Accept", "application/json")
	assert.Equal(t, RepresentationJSON, Negotiate(req))
}
