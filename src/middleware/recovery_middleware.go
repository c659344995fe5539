package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"finance-tracker-server/src/util"
)

// RecoveryMiddleware turns panics into the JSON error envelope. Outside
// production the response carries the stack trace.
func RecoveryMiddleware(isProduction bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					stack := debug.Stack()
					log.Printf("ERROR: Panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, stack)

					resp := util.ErrorResponse{
						StatusCode: http.StatusInternalServerError,
						Message:    "internal error",
					}
					if !isProduction {
						resp.Details = string(stack)
					}
					util.RespondJSON(w, http.StatusInternalServerError, resp)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
