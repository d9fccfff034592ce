package wpauth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionUser is the Principal-shaped record rebuilt from a session token on
// every request. It is recreated per request; nothing server-side survives
// between requests.
type SessionUser struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	Email       string     `json:"email"`
	Roles       []string   `json:"roles"`
	AccessToken string     `json:"access_token"`
	IssuedAt    *time.Time `json:"issued_at,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// HasRole checks if the user has a specific role
func (s *SessionUser) HasRole(role string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Principal rebuilds the Principal carried by this session.
func (s *SessionUser) Principal() *Principal {
	if s == nil {
		return nil
	}
	return NewPrincipal(s.ID, s.Username, s.DisplayName, s.Email, s.Roles, s.AccessToken)
}

func (s SessionUser) String() string {
	return fmt.Sprintf("user=%s username=%s roles=%v", s.ID, s.Username, s.Roles)
}

// SessionUser rebuilds the session user carried by these claims, applying
// the decode-side defaults.
func (c *SessionClaims) SessionUser() (*SessionUser, error) {
	return sessionFromSessionClaims(c)
}

// sessionFromSessionClaims rebuilds a SessionUser from validated claims.
// Defaulting is re-applied here on purpose: decode does not trust that encode
// ran correctly, so a validly signed token missing a field still yields a
// well-formed user.
func sessionFromSessionClaims(claims *SessionClaims) (*SessionUser, error) {
	if claims == nil {
		return nil, ErrUnableToMapClaims
	}

	user := &SessionUser{
		ID:          claims.UserID(),
		Username:    claims.Username,
		DisplayName: claims.DisplayName,
		Email:       claims.Email,
		Roles:       append([]string(nil), claims.Roles...),
		AccessToken: claims.AccessToken,
	}

	if len(user.Roles) == 0 {
		user.Roles = []string{RoleSubscriber}
	}
	if user.DisplayName == "" {
		user.DisplayName = user.Username
	}

	if claims.IssuedAt != nil {
		iat := claims.IssuedAt.Time
		user.IssuedAt = &iat
	}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		user.ExpiresAt = &exp
	}

	return user, nil
}

// sessionFromMapClaims handles tokens surfaced by middleware that parses into
// generic claims, applying the same guards as sessionFromSessionClaims.
func sessionFromMapClaims(claims jwt.MapClaims) (*SessionUser, error) {
	if claims == nil {
		return nil, ErrUnableToMapClaims
	}

	user := &SessionUser{
		ID:          stringClaim(claims, ClaimUserID),
		Username:    stringClaim(claims, ClaimUsername),
		DisplayName: stringClaim(claims, ClaimDisplayName),
		Email:       stringClaim(claims, ClaimEmail),
		Roles:       stringSliceClaim(claims, ClaimRoles),
		AccessToken: stringClaim(claims, ClaimAccessToken),
	}

	if user.ID == "" {
		if sub, err := claims.GetSubject(); err == nil {
			user.ID = sub
		}
	}

	if len(user.Roles) == 0 {
		user.Roles = []string{RoleSubscriber}
	}
	if user.DisplayName == "" {
		user.DisplayName = user.Username
	}

	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		t := iat.Time
		user.IssuedAt = &t
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		user.ExpiresAt = &t
	}

	return user, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if raw, ok := claims[key]; ok {
		if s, ok := raw.(string); ok {
			return s
		}
	}
	return ""
}

// stringSliceClaim keeps roles a sequence: a scalar or heterogeneous value is
// discarded rather than collapsed into a single-element slice.
func stringSliceClaim(claims jwt.MapClaims, key string) []string {
	raw, ok := claims[key]
	if !ok {
		return nil
	}

	switch vals := raw.(type) {
	case []string:
		return append([]string(nil), vals...)
	case []any:
		out := make([]string, 0, len(vals))
		for _, v := range vals {
			s, ok := v.(string)
			if !ok {
				return nil
			}
			out = append(out, s)
		}
		return out
	}

	return nil
}
