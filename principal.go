package wpauth

// RoleSubscriber is the role the identity service grants every account; it is
// the default whenever the service omits roles entirely.
const RoleSubscriber = "subscriber"

// RoleAuthor is the role required to enter the protected dashboard area.
const RoleAuthor = "author"

// Principal is the normalized identity record produced once per successful
// login. Defaults are applied at construction; no field is optional after.
type Principal struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
	AccessToken string   `json:"access_token"`
}

// NewPrincipal builds a Principal from the raw values the identity service
// returned, applying the documented defaults: empty roles become
// ["subscriber"], an empty display name falls back to the username.
func NewPrincipal(id, username, displayName, email string, roles []string, accessToken string) *Principal {
	if len(roles) == 0 {
		roles = []string{RoleSubscriber}
	}
	if displayName == "" {
		displayName = username
	}
	return &Principal{
		ID:          id,
		Username:    username,
		DisplayName: displayName,
		Email:       email,
		Roles:       roles,
		AccessToken: accessToken,
	}
}

// HasRole checks if the principal was granted a specific role
func (p *Principal) HasRole(role string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
