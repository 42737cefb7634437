// Package middleware authenticates requests. Token verification happens
// here, at the boundary; everything behind it works with the verified
// claims only.
package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	"library-lending/internal/auth"
)

// TokenVerifier validates a raw bearer token and returns its claims. The
// Firebase Auth client satisfies it; tests substitute a stub.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// Auth verifies the Authorization bearer token and attaches the derived
// identity to the request context. Requests without a valid token are
// rejected with 401 before reaching any handler.
func Auth(verifier TokenVerifier, rolesClaim string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, `{"error":"invalid authorization format"}`, http.StatusUnauthorized)
				return
			}

			token, err := verifier.VerifyIDToken(r.Context(), parts[1])
			if err != nil {
				http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
				return
			}

			identity := auth.IdentityFromClaims(token.Claims, rolesClaim)
			ctx := auth.WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
