package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"shortlink/internal/link"
)

func TestRefererHost(t *testing.T) {
	assert.Equal(t, "direct", refererHost(""))
	assert.Equal(t, "news.example.com", refererHost("https://news.example.com/story?id=1"))
	assert.Equal(t, "localhost:3000", refererHost("http://localhost:3000/"))
	assert.Equal(t, "unknown", refererHost("not a url"))
	assert.Equal(t, "unknown", refererHost("://broken"))
}

func TestVerdictResponse(t *testing.T) {
	tests := []struct {
		verdict link.Verdict
		status  int
	}{
		{link.VerdictNotFound, http.StatusNotFound},
		{link.VerdictExpired, http.StatusNotFound},
		{link.VerdictInactive, http.StatusNotFound},
		{link.VerdictLimitExhausted, http.StatusNotFound},
		{link.VerdictPasswordRequired, http.StatusUnauthorized},
		{link.VerdictPasswordMismatch, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.verdict.String(), func(t *testing.T) {
			status, body := verdictResponse(tt.verdict)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, body["error"])
		})
	}
}
