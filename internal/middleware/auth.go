package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const UserCtxKey = contextKey("user_id")

// JWTAuth verifies the bearer token against the given secret and stores the
// embedded user id in the request context. Authentication failures answer
// 403 with a JSON message, matching the public contract of the API.
func JWTAuth(secret []byte, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			denied(w, "missing Authorization header")
			return
		}

		// Both "Bearer <token>" and a bare token are accepted; the original
		// clients sent the raw token in the header.
		raw := authHeader
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
			raw = parts[1]
		}

		token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			denied(w, "Wrong JWT sent, you are not an authorized user!")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			denied(w, "invalid token claims")
			return
		}

		userID, ok := claims["id"].(string)
		if !ok || userID == "" {
			denied(w, "invalid user id in token")
			return
		}

		ctx := context.WithValue(r.Context(), UserCtxKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func denied(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte(`{"msg":"` + msg + `"}`))
}

// Extracting user_id in handler
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserCtxKey).(string)
	return id, ok
}
