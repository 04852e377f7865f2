// Package sessiontransport moves sessions between the server and the
// browser. The cookie transport stores the full session claims as a
// signed JSON payload, so the role travels with the session and cannot
// be forged without the signing secret.
package sessiontransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/timeclock/core/cookie"
	"github.com/dmitrymomot/timeclock/core/session"
)

// DefaultCookieName is the session cookie name.
const DefaultCookieName = "session"

// ErrNoSession indicates the request carries no usable session cookie,
// either because it is absent or because its signature failed.
var ErrNoSession = errors.New("no session in request")

// claims is the JSON payload stored inside the signed cookie.
type claims struct {
	Username   string    `json:"username"`
	Token      string    `json:"token"`
	Role       string    `json:"role"`
	LastActive time.Time `json:"last_active"`
}

// Cookie transports sessions via a signed HTTP cookie.
type Cookie struct {
	manager *cookie.Manager
	name    string
}

// Option configures the cookie transport.
type Option func(*Cookie)

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) Option {
	return func(c *Cookie) {
		if name != "" {
			c.name = name
		}
	}
}

// NewCookie creates a cookie-based session transport.
func NewCookie(manager *cookie.Manager, opts ...Option) *Cookie {
	c := &Cookie{
		manager: manager,
		name:    DefaultCookieName,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Load extracts the session from the request cookie. A missing, malformed,
// or tampered cookie yields ErrNoSession; callers treat all three the same
// way and send the user to login.
func (c *Cookie) Load(r *http.Request) (session.Session, error) {
	payload, err := c.manager.GetSigned(r, c.name)
	if err != nil {
		return session.Session{}, ErrNoSession
	}

	var cl claims
	if err := json.Unmarshal([]byte(payload), &cl); err != nil {
		return session.Session{}, ErrNoSession
	}

	if cl.Username == "" || cl.Token == "" {
		return session.Session{}, ErrNoSession
	}

	return session.Session{
		Username:   cl.Username,
		Token:      cl.Token,
		Role:       cl.Role,
		LastActive: cl.LastActive,
	}, nil
}

// Save writes the session to the response as a signed cookie.
func (c *Cookie) Save(w http.ResponseWriter, sess session.Session) error {
	payload, err := json.Marshal(claims{
		Username:   sess.Username,
		Token:      sess.Token,
		Role:       sess.Role,
		LastActive: sess.LastActive,
	})
	if err != nil {
		return err
	}

	return c.manager.SetSigned(w, c.name, string(payload))
}

// Clear removes the session cookie from the browser.
func (c *Cookie) Clear(w http.ResponseWriter) {
	c.manager.Delete(w, c.name)
}
