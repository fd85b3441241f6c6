package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	callerKey contextKey = "caller"
)

// WithCaller adds the caller identity to the request context
func WithCaller(r *http.Request, caller string) *http.Request {
	ctx := context.WithValue(r.Context(), callerKey, caller)
	return r.WithContext(ctx)
}

// GetCaller retrieves the caller identity from context, returns empty
// string if not found
func GetCaller(r *http.Request) string {
	caller, _ := r.Context().Value(callerKey).(string)
	return caller
}
