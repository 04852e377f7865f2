package main

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/dmitrymomot/timeclock/core/response"
)

// ErrorPageData is the data structure for the error page template.
type ErrorPageData struct {
	Title      string
	StatusCode int
	Message    string
}

// errorHandler renders HTML error pages for unhandled handler errors.
func errorHandler(tmpl *template.Template) func(ctx *Context, err error) {
	return func(ctx *Context, err error) {
		data := ErrorPageData{
			Title:      "Internal Server Error",
			StatusCode: http.StatusInternalServerError,
			Message:    "Something went wrong",
		}

		var httpErr response.HTTPError
		if errors.As(err, &httpErr) {
			data.StatusCode = httpErr.Status
			data.Title = http.StatusText(httpErr.Status)
			if httpErr.Message != "" {
				data.Message = httpErr.Message
			} else {
				data.Message = http.StatusText(httpErr.Status)
			}
		}

		ctx.ResponseWriter().Header().Set("Content-Type", "text/html; charset=utf-8")
		ctx.ResponseWriter().WriteHeader(data.StatusCode)

		if renderErr := tmpl.Execute(ctx.ResponseWriter(), data); renderErr != nil {
			http.Error(ctx.ResponseWriter(), data.Message, data.StatusCode)
		}
	}
}
