package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"microblog/internal/httputil"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID
	UserIDKey contextKey = "user_id"
)

// RequireUser validates the access token and attaches the user ID to the
// request context. An anonymous or invalid request is not a hard error: it
// is redirected to the login page with the original path in the next
// parameter, per the unauthorized policy.
func RequireUser(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := parseIdentity(r, jwtSecret)
			if !ok {
				httputil.RedirectToLogin(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalUser attaches the user ID to the context when a valid token is
// present and passes the request through untouched otherwise. Used by public
// pages that render differently for a known identity (the profile's
// following flag).
func OptionalUser(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := parseIdentity(r, jwtSecret); ok {
				ctx := context.WithValue(r.Context(), UserIDKey, userID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// parseIdentity extracts and validates the access token. Checks the
// Authorization header first, then falls back to the access_token cookie.
func parseIdentity(r *http.Request, jwtSecret string) (int64, bool) {
	var tokenString string

	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenString = parts[1]
		}
	}

	if tokenString == "" {
		cookie, err := r.Cookie("access_token")
		if err == nil && cookie.Value != "" {
			tokenString = cookie.Value
		}
	}

	if tokenString == "" {
		return 0, false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, false
	}

	return int64(userIDFloat), true
}

// GetUserIDFromContext extracts the user ID from the request context
// Returns the user ID and true if found, or 0 and false if not found
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}
