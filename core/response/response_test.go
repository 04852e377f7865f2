package response_test

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/timeclock/core/response"
)

func TestJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	err := response.JSON(map[string]int{"started": 3})(rec, req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body["started"])
}

func TestJSONWithStatus(t *testing.T) {
	t.Parallel()

	t.Run("custom status", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		err := response.JSONWithStatus(map[string]string{"error": "Unauthorized"}, http.StatusUnauthorized)(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
	})

	t.Run("no body for 204", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		err := response.JSONWithStatus(map[string]string{"x": "y"}, http.StatusNoContent)(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestRedirectSeeOther(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	err := response.RedirectSeeOther("/dashboard")(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestTemplateName(t *testing.T) {
	t.Parallel()

	tmpl := template.Must(template.New("root").Parse(`{{define "greeting"}}Hello, {{.Name}}!{{end}}`))

	t.Run("renders named template", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		err := response.TemplateName(tmpl, "greeting", map[string]string{"Name": "alice"})(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, "Hello, alice!", rec.Body.String())
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	})

	t.Run("missing template writes nothing", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		err := response.TemplateName(tmpl, "missing", nil)(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Error(t, err)
		assert.Empty(t, rec.Body.String())
	})
}

func TestAttachment(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	data := []byte("workbook-bytes")
	err := response.Attachment(data, "logs.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")(rec, httptest.NewRequest(http.MethodGet, "/download_logs", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="logs.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Equal(t, data, rec.Body.Bytes())
}

func TestErrorPassthrough(t *testing.T) {
	t.Parallel()

	errSentinel := errors.New("sentinel")
	rec := httptest.NewRecorder()
	err := response.Error(errSentinel)(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, errSentinel)
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	e := response.ErrUnauthorized.WithMessage("session expired")
	assert.Equal(t, http.StatusUnauthorized, e.StatusCode())
	assert.Equal(t, "session expired", e.Error())

	cause := errors.New("token mismatch")
	e = e.WithError(cause)
	assert.Equal(t, "token mismatch", e.Details["cause"])
}
