package trace

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "berdoz/internal/log"
)

func TestMiddleware_AssignsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := applog.FromEnv(&buf, "debug", "text", "test")

	var seen string
	var ctxLogger *applog.Logger
	h := NewMiddleware(logger, func(r *http.Request) string { return "198.51.100.7" }).Handler(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetRequestID(r.Context())
			ctxLogger = applog.FromContext(r.Context())
			w.WriteHeader(http.StatusNotFound)
		}),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/payroll/x", nil))

	require.NotEmpty(t, seen)
	assert.True(t, strings.HasPrefix(seen, "req_"))
	assert.Len(t, seen, 20)
	assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))
	require.NotNil(t, ctxLogger)

	out := buf.String()
	assert.Contains(t, out, "HTTP request started")
	assert.Contains(t, out, "HTTP request completed")
	assert.Contains(t, out, seen)
	assert.Contains(t, out, "level=WARN")
}

func TestMiddleware_KeepsIncomingRequestID(t *testing.T) {
	logger := applog.FromEnv(&bytes.Buffer{}, "info", "text", "test")
	h := NewMiddleware(logger, nil).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderRequestID, "has space")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.NotEqual(t, "has space", rec.Header().Get(HeaderRequestID))
}
