package middleware

import (
	"net"
	"net/http"

	rl "github.com/rogerio-castellano/stock-manager/internal/http/rate_limiter"
)

// RateLimit answers 429 once the client IP exhausts its bucket.
func RateLimit(v *rl.Visitors) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !v.Allow(ip) {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
