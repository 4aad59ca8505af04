package api

import (
	"net/http"

	"github.com/tombee/textchef/internal/daemon/httputil"
)

// rateLimited rejects requests with 429 while the router's token bucket is
// empty. The limiter is read per request so SetRateLimit applies to routes
// registered earlier.
func (r *Router) rateLimited(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if r.limiter != nil && !r.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			httputil.WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, req)
	})
}
