package middleware

import (
	"net/http"

	"finance-tracker-server/src/util"
)

// ReadOnlyMiddleware rejects mutating requests when the server runs in
// read-only mode. Auth stays open so existing users can still sign in.
func ReadOnlyMiddleware(readOnly bool) func(http.Handler) http.Handler {
	allowedPosts := map[string]bool{
		"/api/auth/login":    true,
		"/api/auth/register": true,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if readOnly && r.Method != http.MethodGet && r.Method != http.MethodOptions {
				if r.Method == http.MethodPost && allowedPosts[r.URL.Path] {
					next.ServeHTTP(w, r)
					return
				}
				util.RespondError(w, http.StatusForbidden, "read-only mode: only GET requests are allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
