package auth

import "errors"

// CapabilityAdmin is the only privileged capability in the system.
const CapabilityAdmin = "admin"

// ErrForbidden indicates the caller's roles do not grant the required
// capability. Handlers map it to 403, distinct from any other failure.
var ErrForbidden = errors.New("forbidden")

// Authorize decides whether a role list grants the required capability.
// Only the first element of the list is consulted: a caller whose admin
// role appears anywhere but first is denied. This mirrors the upstream
// identity provider's convention that the first role is the authoritative
// one for this system.
func Authorize(roles []string, capability string) error {
	if len(roles) == 0 || roles[0] != capability {
		return ErrForbidden
	}
	return nil
}

// RequireAdmin runs the guard for the admin capability against a caller's
// identity. It is stateless and read-only; callers must invoke it to
// completion before performing any ledger mutation.
func RequireAdmin(identity Identity) error {
	return Authorize(identity.Roles, CapabilityAdmin)
}
