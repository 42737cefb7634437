package middleware

import (
	"net/http"
	"strings"

	"library-lending/internal/auth"
)

// StubAuth trusts the X-User-Email and X-User-Roles headers instead of
// verifying a token. Local development with the in-memory store only;
// never mount this in front of real data.
func StubAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := auth.Identity{Email: r.Header.Get("X-User-Email")}
			if roles := r.Header.Get("X-User-Roles"); roles != "" {
				identity.Roles = strings.Split(roles, ",")
			}
			if identity.Email == "" {
				http.Error(w, `{"error":"missing X-User-Email header"}`, http.StatusUnauthorized)
				return
			}

			ctx := auth.WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
