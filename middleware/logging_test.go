package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/timeclock/core/handler"
	"github.com/dmitrymomot/timeclock/core/logger"
	"github.com/dmitrymomot/timeclock/core/response"
	"github.com/dmitrymomot/timeclock/core/router"
	"github.com/dmitrymomot/timeclock/middleware"
)

// requestRecord mirrors the slog JSON fields the middleware emits.
type requestRecord struct {
	Level      string `json:"level"`
	Msg        string `json:"msg"`
	Method     string `json:"method"`
	Path       string `json:"path"`
	StatusCode int    `json:"status_code"`
	BytesOut   int64  `json:"bytes_out"`
}

func newLoggingRouter(buf *bytes.Buffer) router.Router[*router.Context] {
	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(buf))

	r := router.New[*router.Context](
		router.WithMiddleware(middleware.LoggingWithLogger[*router.Context](log)),
	)
	r.Get("/greet", func(ctx *router.Context) handler.Response {
		return response.String("hello world")
	})
	r.Get("/denied", func(ctx *router.Context) handler.Response {
		return response.HTMLWithStatus("denied", http.StatusForbidden)
	})
	return r
}

func lastRecord(t *testing.T, buf *bytes.Buffer) requestRecord {
	t.Helper()

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var rec requestRecord
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &rec))
	return rec
}

func TestLogging(t *testing.T) {
	t.Parallel()

	t.Run("logs method, path, status, and response size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := newLoggingRouter(&buf)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/greet", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		entry := lastRecord(t, &buf)
		assert.Equal(t, "INFO", entry.Level)
		assert.Equal(t, "request completed", entry.Msg)
		assert.Equal(t, http.MethodGet, entry.Method)
		assert.Equal(t, "/greet", entry.Path)
		assert.Equal(t, http.StatusOK, entry.StatusCode)
		assert.Equal(t, int64(len("hello world")), entry.BytesOut)
	})

	t.Run("client errors log at warn with size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := newLoggingRouter(&buf)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/denied", nil))
		require.Equal(t, http.StatusForbidden, rec.Code)

		entry := lastRecord(t, &buf)
		assert.Equal(t, "WARN", entry.Level)
		assert.Equal(t, "request rejected", entry.Msg)
		assert.Equal(t, http.StatusForbidden, entry.StatusCode)
		assert.Equal(t, int64(len("denied")), entry.BytesOut)
	})
}
