package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestFromEnvJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := FromEnv(&buf, "warn", "json", ComponentWorker)

	logger.Info("dropped")
	logger.Warn("kept", FieldModule, "payroll")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, ComponentWorker, entry[FieldComponent])
	assert.Equal(t, "payroll", entry[FieldModule])
}

func TestFieldsBuilder(t *testing.T) {
	f := NewFields().
		WithRecord("teachers", "").
		WithOperation(OpCreate).
		WithError(errors.New("boom")).
		WithError(nil)

	assert.Equal(t, "teachers", f[FieldModule])
	assert.NotContains(t, f, FieldRecordID)
	assert.Equal(t, "boom", f[FieldError])
	assert.Len(t, f.ToSlice(), 2*len(f))
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := FromEnv(&buf, "info", "json", ComponentHTTP).With(FieldRequestID, "req-1")

	ctx := context.WithValue(context.Background(), LoggerContextKey, logger)
	FromContext(ctx).Info("inside")

	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
	assert.Equal(t, "unknown", FromContext(context.Background()).Component())
}

func TestStructuredLogger_LogError(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(FromEnv(&buf, "info", "json", ComponentHTTP))

	r := httptest.NewRequest(http.MethodPost, "/api/payroll", nil)
	sl.LogError(context.Background(), "Request failed", errors.New("disk full"), ComponentHTTP, OpCreate,
		NewFields().WithHTTPRequest(r.Method, r.URL.Path, "", "", ""))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "disk full", entry[FieldError])
	assert.Equal(t, OpCreate, entry[FieldOperation])
	assert.Equal(t, "/api/payroll", entry[FieldPath])
}
