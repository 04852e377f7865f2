package handler

import (
	"context"
	"net/http"
)

// Context defines the contract for request contexts in the framework.
// Custom application contexts embed the request/response pair and may add
// typed accessors on top.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	SetValue(key, val any)
}
