package middleware

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"finance-tracker-server/src/util"

	"github.com/golang-jwt/jwt/v5"
)

// ParseTokenFromRequest extracts and validates the bearer token, returning its claims if valid
func ParseTokenFromRequest(r *http.Request) (jwt.MapClaims, error) {
	tokenString := r.Header.Get("Authorization")
	if tokenString == "" {
		return nil, fmt.Errorf("missing token")
	}

	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token claims")
}

// JWTAuthMiddleware resolves the caller's identity from the token. A token
// without a user_id or email claim is rejected here; past this point the
// identity is always present in the request context.
func JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := ParseTokenFromRequest(r)
		if err != nil {
			util.RespondError(w, http.StatusUnauthorized, err.Error())
			return
		}

		rawID, ok := claims["user_id"].(float64)
		if !ok {
			util.RespondError(w, http.StatusUnauthorized, "missing user id claim")
			return
		}
		email, ok := claims["email"].(string)
		if !ok {
			util.RespondError(w, http.StatusUnauthorized, "missing email claim")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, int(rawID))
		ctx = context.WithValue(ctx, emailKey, email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type contextKey string

const (
	userIDKey contextKey = "user_id"
	emailKey  contextKey = "email"
)

// UserIDFromContext returns the authenticated user's id. Handlers read it
// once and pass it explicitly into every store call.
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// EmailFromContext returns the authenticated user's email.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok
}
