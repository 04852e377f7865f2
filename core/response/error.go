package response

import (
	"net/http"

	"github.com/dmitrymomot/timeclock/core/handler"
)

// Error returns a handler response that propagates the given error.
// The router's error handler decides how to render it.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}
