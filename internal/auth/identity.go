// Package auth derives trust decisions from the claims of an externally
// verified identity token. Token signature and expiry validation happen
// before any of this code runs; the package never talks to the issuer.
package auth

import (
	"context"
	"errors"
)

// DefaultRolesClaim is the claim the roles list is read from unless the
// issuer namespaces it (configurable via ROLES_CLAIM).
const DefaultRolesClaim = "roles"

// ErrIdentityMissing indicates no authenticated caller is attached to the
// request context.
var ErrIdentityMissing = errors.New("no authenticated identity")

// Identity is the per-request view of a verified caller. Email is the
// stable user key; Roles is the ordered role list from the token, where
// the first entry is the authoritative role.
type Identity struct {
	Email string
	Roles []string
}

// IdentityFromClaims extracts email and roles from a verified token's
// claims map. Absent or malformed claims yield zero values rather than
// errors: a missing email simply produces an unusable identity, which the
// authenticated endpoints reject.
func IdentityFromClaims(claims map[string]interface{}, rolesClaim string) Identity {
	if rolesClaim == "" {
		rolesClaim = DefaultRolesClaim
	}

	var identity Identity

	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}

	switch raw := claims[rolesClaim].(type) {
	case []interface{}:
		for _, r := range raw {
			if role, ok := r.(string); ok {
				identity.Roles = append(identity.Roles, role)
			}
		}
	case []string:
		identity.Roles = raw
	}

	return identity
}

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity attaches a verified identity to the request context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the caller's identity. It fails with
// ErrIdentityMissing when the middleware attached none, or when the token
// carried no email claim to key the caller by.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	identity, ok := ctx.Value(identityKey).(Identity)
	if !ok || identity.Email == "" {
		return Identity{}, ErrIdentityMissing
	}
	return identity, nil
}
