package sessiontransport_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/timeclock/core/cookie"
	"github.com/dmitrymomot/timeclock/core/session"
	"github.com/dmitrymomot/timeclock/core/sessiontransport"
)

func newTransport(t *testing.T, opts ...sessiontransport.Option) *sessiontransport.Cookie {
	t.Helper()
	m, err := cookie.New([]string{"transport-test-secret-32-chars-x"})
	require.NoError(t, err)
	return sessiontransport.NewCookie(m, opts...)
}

func TestCookieRoundTrip(t *testing.T) {
	t.Parallel()

	transport := newTransport(t)

	sess := session.Session{
		Username:   "alice",
		Token:      "tok-abc",
		Role:       "admin",
		LastActive: time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
	}

	rec := httptest.NewRecorder()
	require.NoError(t, transport.Save(rec, sess))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	got, err := transport.Load(req)
	require.NoError(t, err)
	assert.Equal(t, sess.Username, got.Username)
	assert.Equal(t, sess.Token, got.Token)
	assert.Equal(t, sess.Role, got.Role)
	assert.True(t, sess.LastActive.Equal(got.LastActive))
}

func TestCookieLoadFailures(t *testing.T) {
	t.Parallel()

	transport := newTransport(t)

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()

		_, err := transport.Load(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, err, sessiontransport.ErrNoSession)
	})

	t.Run("forged cookie", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{
			Name:  sessiontransport.DefaultCookieName,
			Value: `{"username":"alice","token":"x","role":"admin"}`,
		})

		_, err := transport.Load(req)
		assert.ErrorIs(t, err, sessiontransport.ErrNoSession)
	})

	t.Run("signed but empty claims", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, transport.Save(rec, session.Session{}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range rec.Result().Cookies() {
			req.AddCookie(c)
		}

		_, err := transport.Load(req)
		assert.ErrorIs(t, err, sessiontransport.ErrNoSession)
	})
}

func TestCookieClear(t *testing.T) {
	t.Parallel()

	transport := newTransport(t)

	rec := httptest.NewRecorder()
	transport.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessiontransport.DefaultCookieName, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestCookieCustomName(t *testing.T) {
	t.Parallel()

	transport := newTransport(t, sessiontransport.WithCookieName("attendance_session"))

	rec := httptest.NewRecorder()
	require.NoError(t, transport.Save(rec, session.Session{Username: "bob", Token: "t"}))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "attendance_session", cookies[0].Name)
}
