package wpauth

import "strings"

// DefaultProtectedPrefix is the dashboard area requiring an author session.
const DefaultProtectedPrefix = "/dashboard"

// Gate is the authorization predicate consulted on every routed request.
// It is a pure function of the decoded session user and the request path:
// no I/O, no errors, safe for unlimited concurrent use.
type Gate struct {
	protectedPrefix string
	requiredRole    string
}

// NewGate builds a Gate. Empty arguments fall back to the dashboard prefix
// and the author role.
func NewGate(protectedPrefix, requiredRole string) *Gate {
	if protectedPrefix == "" {
		protectedPrefix = DefaultProtectedPrefix
	}
	if requiredRole == "" {
		requiredRole = RoleAuthor
	}
	return &Gate{
		protectedPrefix: protectedPrefix,
		requiredRole:    requiredRole,
	}
}

// ProtectedPrefix returns the path namespace this gate guards.
func (g *Gate) ProtectedPrefix() string {
	return g.protectedPrefix
}

// RequiredRole returns the role needed inside the protected prefix.
func (g *Gate) RequiredRole() string {
	return g.requiredRole
}

// Authorized decides allow/deny. Paths outside the protected prefix always
// pass; paths under it require a present user carrying the required role.
// A nil user is "absent".
func (g *Gate) Authorized(user *SessionUser, path string) bool {
	if !g.Protects(path) {
		return true
	}

	if user == nil {
		return false
	}

	return user.HasRole(g.requiredRole)
}

// Protects reports whether path falls under the protected prefix.
func (g *Gate) Protects(path string) bool {
	return strings.HasPrefix(path, g.protectedPrefix)
}
