package middlewares

import (
	"net/http"
	"strings"
)

// CorsMiddleware admits cross-origin calls from allowedOrigin only. The jwt
// cookie rides along only for that exact origin. "*" opens reads to any
// origin without credentials, and an empty value sends no CORS headers.
func CorsMiddleware(allowedOrigin string) func(http.Handler) http.Handler {
	allowedOrigin = strings.TrimRight(strings.TrimSpace(allowedOrigin), "/")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			granted := false
			switch {
			case allowedOrigin == "*":
				h.Set("Access-Control-Allow-Origin", "*")
				granted = true
			case allowedOrigin != "" && origin == allowedOrigin:
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				granted = true
			}

			if granted {
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
