package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/JibinB02/pehlahath/internal/entity"
	"github.com/JibinB02/pehlahath/internal/infrastructure/auth"
)

type contextKey struct{}

var userContextKey = contextKey{}

// Authenticate validates the Bearer token and stores the caller identity
// in the request context. The identity is trusted verbatim downstream.
func Authenticate(tokens *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "missing authorization header")
				return
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				unauthorized(w, "invalid authorization header")
				return
			}

			user, err := tokens.ValidateToken(tokenString)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, *user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuthority rejects callers without the authority role. Must run
// after Authenticate.
func RequireAuthority(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || !user.IsAuthority() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"error": "authority role required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the authenticated caller placed by Authenticate.
func UserFromContext(ctx context.Context) (entity.AuthUser, bool) {
	user, ok := ctx.Value(userContextKey).(entity.AuthUser)
	return user, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
