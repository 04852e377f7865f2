package main

import (
	"github.com/dmitrymomot/timeclock/attendance"
	"github.com/dmitrymomot/timeclock/auth"
	"github.com/dmitrymomot/timeclock/core/cookie"
	"github.com/dmitrymomot/timeclock/core/server"
	"github.com/dmitrymomot/timeclock/core/session"
	"github.com/dmitrymomot/timeclock/integration/database/pg"
)

type Config struct {
	AppName string `env:"APP_NAME" envDefault:"timeclock"`

	// SessionCookieName is the name of the signed session cookie.
	SessionCookieName string `env:"SESSION_COOKIE_NAME" envDefault:"session"`

	Auth       auth.Config
	Attendance attendance.Config
	Session    session.Config
	Cookie     cookie.Config
	DB         pg.Config
	Server     server.Config
}
