package middleware

import (
	"net/http"
	"strings"

	"github.com/clmarcel/pokedex-api/internal/auth"
	"github.com/clmarcel/pokedex-api/internal/httpx"
)

// RequireAuth validates the Authorization bearer token and injects the
// caller's identity into the request context.
func RequireAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				httpx.Fail(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				httpx.Error(w, err)
				return
			}

			ctx := auth.WithIdentity(r.Context(), auth.Identity{
				UserID: claims.UserID,
				Role:   claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects callers whose authenticated role is not admin. It
// must run after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := auth.RequireAdmin(r.Context()); err != nil {
			httpx.Error(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}
