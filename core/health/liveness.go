// Package health provides HTTP handlers for service health monitoring.
package health

import (
	"github.com/dmitrymomot/timeclock/core/handler"
	"github.com/dmitrymomot/timeclock/core/response"
)

// Liveness indicates the service process is running.
// Always returns "ALIVE" with 200 OK; no dependency checks.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}
