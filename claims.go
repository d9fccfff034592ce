package wpauth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claim keys used inside the signed session token. They are part of the wire
// contract: decode reads them back by the same names.
const (
	ClaimUserID      = "uid"
	ClaimUsername    = "username"
	ClaimDisplayName = "display_name"
	ClaimEmail       = "email"
	ClaimRoles       = "roles"
	ClaimAccessToken = "access_token"
)

// SessionClaims is the claims set carried inside the signed session token.
// It is a strict projection of Principal plus the registered JWT claims.
type SessionClaims struct {
	jwt.RegisteredClaims
	UID         string   `json:"uid,omitempty"`
	Username    string   `json:"username,omitempty"`
	DisplayName string   `json:"display_name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	AccessToken string   `json:"access_token,omitempty"`
}

// NewSessionClaims projects a Principal into session claims. Defaults were
// already applied when the Principal was built; the roles and display name
// guards here only cover a principal constructed outside NewPrincipal.
func NewSessionClaims(p *Principal) *SessionClaims {
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: p.ID,
		},
		UID:         p.ID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		Roles:       append([]string(nil), p.Roles...),
		AccessToken: p.AccessToken,
	}

	if len(claims.Roles) == 0 {
		claims.Roles = []string{RoleSubscriber}
	}
	if claims.DisplayName == "" {
		claims.DisplayName = p.Username
	}

	ensureTokenID(&claims.RegisteredClaims)

	return claims
}

// UserID returns the user ID
func (c *SessionClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.RegisteredClaims.Subject
}

// HasRole checks if the claims carry a specific role
func (c *SessionClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ensureTokenID assigns a jti so issued tokens are individually identifiable
// in logs.
func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}
