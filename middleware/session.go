package middleware

import (
	"net/http"

	"github.com/dmitrymomot/timeclock/core/handler"
	"github.com/dmitrymomot/timeclock/core/session"
	"github.com/dmitrymomot/timeclock/core/sessiontransport"
)

// sessionContextKey is used to stash the validated session in request context.
type sessionContextKey struct{}

// SessionGuardConfig wires the session guard to the registry and transport.
type SessionGuardConfig struct {
	Registry  *session.Registry
	Transport *sessiontransport.Cookie

	// OnReject renders the response for unauthenticated requests.
	// Defaults to a 302 redirect to "/".
	OnReject handler.Response
}

// RequireSession validates the request's session and refreshes its activity
// timestamp. Requests proceed only with a session that is present, matches
// the active token on record, and has not gone idle past the timeout.
//
// On a valid session the activity timestamp is touched and the cookie is
// re-issued, so the idle window restarts with every authenticated request.
// Dead sessions get their cookie cleared before rejection; idle ones are
// also released server-side so the user can log in again.
func RequireSession[C handler.Context](cfg SessionGuardConfig) handler.Middleware[C] {
	reject := cfg.OnReject
	if reject == nil {
		reject = func(w http.ResponseWriter, r *http.Request) error {
			http.Redirect(w, r, "/", http.StatusFound)
			return nil
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			sess, err := cfg.Transport.Load(ctx.Request())
			if err != nil {
				return reject
			}

			if err := cfg.Registry.Validate(ctx, sess.Username, sess.Token); err != nil {
				return withClearedCookie(cfg.Transport, reject)
			}

			if cfg.Registry.Expired(sess) {
				// Release server-side too, otherwise the stale slot would
				// block the next login.
				if err := cfg.Registry.Logout(ctx, sess.Username); err != nil {
					return withClearedCookie(cfg.Transport, reject)
				}
				return withClearedCookie(cfg.Transport, reject)
			}

			sess.LastActive = cfg.Registry.Now()
			ctx.SetValue(sessionContextKey{}, sess)

			response := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				if err := cfg.Transport.Save(w, sess); err != nil {
					return err
				}
				return response(w, r)
			}
		}
	}
}

// RequireRole gates a route to sessions carrying the given role.
// Must run after RequireSession. The role travels inside the signed
// cookie, so it cannot be forged client-side.
func RequireRole[C handler.Context](role string, reject handler.Response) handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			sess, ok := CurrentSession(ctx)
			if !ok || sess.Role != role {
				return reject
			}
			return next(ctx)
		}
	}
}

// CurrentSession retrieves the validated session stashed by RequireSession.
func CurrentSession(ctx handler.Context) (session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(session.Session)
	return sess, ok
}

func withClearedCookie(transport *sessiontransport.Cookie, reject handler.Response) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		transport.Clear(w)
		return reject(w, r)
	}
}
