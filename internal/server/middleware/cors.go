package middleware

import (
	"net/http"
	"strings"
)

// allowedMethods covers the full API surface; there are no PUT or DELETE
// routes.
const allowedMethods = "GET, POST, OPTIONS"

// CORS returns middleware that answers cross-origin requests from the SPA.
// An empty allowlist, or an entry of "*", admits every origin.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" && originAllowed(origin, allowedOrigins) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				w.Header().Set("Access-Control-Max-Age", "86400")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowlist []string) bool {
	if len(allowlist) == 0 {
		return true
	}
	for _, o := range allowlist {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}
