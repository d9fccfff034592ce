package wpauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

// RemoteValidator validates session tokens signed by an external issuer that
// publishes its keys as a JWK Set, instead of the local HMAC secret. Wire it
// with Auther.WithTokenValidator when the identity service issues its own
// asymmetric tokens.
type RemoteValidator struct {
	jwks     *keyfunc.JWKS
	issuer   string
	audience []string
	logger   Logger
}

var _ TokenValidator = &RemoteValidator{}

// NewRemoteValidator fetches the JWK Set and keeps it refreshed in the
// background.
func NewRemoteValidator(jwksURL, issuer string, audience []string, logger Logger) (*RemoteValidator, error) {
	if logger == nil {
		logger = defLogger{}
	}

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshErrorHandler: func(err error) {
			logger.Warn("failed to refresh JWK Set: %v", err)
		},
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  time.Minute * 5,
		RefreshTimeout:    time.Second * 10,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get JWK Set from %s: %w", jwksURL, err)
	}

	return &RemoteValidator{
		jwks:     jwks,
		issuer:   issuer,
		audience: audience,
		logger:   logger,
	}, nil
}

// Validate satisfies the TokenValidator interface.
func (v *RemoteValidator) Validate(tokenString string) (*SessionClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 2)
	if v.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(v.issuer))
	}
	if len(v.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(v.audience...))
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, v.jwks.Keyfunc, parserOptions...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrSessionDecode
}

// Close stops the background JWK Set refresh.
func (v *RemoteValidator) Close() {
	if v.jwks != nil {
		v.jwks.EndBackground()
	}
}
