package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func runSecurityHeaders(t *testing.T, production bool) http.Header {
	t.Helper()
	handler := SecurityHeaders(production)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tips", nil))
	return rec.Header()
}

func TestSecurityHeadersAlwaysSet(t *testing.T) {
	require := require.New(t)

	headers := runSecurityHeaders(t, false)
	require.Equal("nosniff", headers.Get("X-Content-Type-Options"))
	require.Equal("DENY", headers.Get("X-Frame-Options"))
	require.Equal("default-src 'self'", headers.Get("Content-Security-Policy"))
}

func TestHSTSGatedOnProduction(t *testing.T) {
	require := require.New(t)

	require.Empty(runSecurityHeaders(t, false).Get("Strict-Transport-Security"))
	require.Equal(
		"max-age=31536000; includeSubDomains",
		runSecurityHeaders(t, true).Get("Strict-Transport-Security"),
	)
}
