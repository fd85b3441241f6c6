package middleware

import (
	"net/http"

	"sitewright/internal/httputil"
)

// CallerHeader is set by the platform gateway after it has signed the
// caller in. Authentication itself happens upstream; this middleware
// only carries the established identity into the request context.
const CallerHeader = "X-Sitewright-User"

// Identity extracts the caller identity from the gateway header and
// stores it in the request context. Requests without an identity pass
// through; handlers that require one reject them.
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if caller := r.Header.Get(CallerHeader); caller != "" {
				r = httputil.WithCaller(r, caller)
			}
			next.ServeHTTP(w, r)
		})
	}
}
