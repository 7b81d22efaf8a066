package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

type contextKey string

const tokenKey contextKey = "auth_token"

// RequireAuth gates protected routes on the presence of a bearer token, the
// gateway's counterpart of the frontend route guard's requiresAuth check.
// It does NOT verify the token; the backends remain the authority and an
// invalid token simply fails the first authorized call.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			log.Warn().Str("path", r.URL.Path).Msg("Missing bearer token")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"data":    nil,
				"message": "authorization token is required",
			})
			return
		}

		ctx := context.WithValue(r.Context(), tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Token extracts the bearer token from context.
func Token(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}
