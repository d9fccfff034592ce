package wpauth

import (
	"context"
)

var _ Authenticator = &Auther{}

type Auther struct {
	provider       IdentityProvider
	tokenService   TokenService
	tokenValidator TokenValidator
	logger         Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		provider:     provider,
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	if ts, ok := s.tokenService.(*TokenServiceImpl); ok {
		ts.logger = logger
	}
	return s
}

// WithTokenService overrides the default HMAC token service.
func (s *Auther) WithTokenService(service TokenService) *Auther {
	s.tokenService = service
	return s
}

// WithTokenValidator sets a custom token validator for externally issued tokens.
func (s *Auther) WithTokenValidator(validator TokenValidator) *Auther {
	s.tokenValidator = validator
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Authenticate runs the verify then fetch sequence and returns the normalized
// Principal. The two remote calls are strictly sequential: the fetch presents
// the bearer token the verify produced. Any failure at either step, including
// context cancellation, means no Principal; there is never a partial one.
func (s *Auther) Authenticate(ctx context.Context, username, password string) (*Principal, error) {
	if username == "" || password == "" {
		s.logger.Warn("Authenticate called with missing credentials")
		return nil, ErrMissingCredentials
	}

	token, err := s.provider.Verify(ctx, username, password)
	if err != nil {
		s.logger.Error("Authenticate verify failed: %v", err)
		return nil, err
	}

	principal, err := s.provider.FetchProfile(ctx, token)
	if err != nil {
		s.logger.Error("Authenticate profile fetch failed: %v (token %s)", err, tokenPresence(token))
		return nil, err
	}

	return principal, nil
}

// Login authenticates the credentials and materializes the Principal into a
// signed session token.
func (s *Auther) Login(ctx context.Context, username, password string) (string, error) {
	principal, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}

	signed, err := s.tokenService.Generate(principal)
	if err != nil {
		s.logger.Error("Login failed to sign session claims: %v", err)
		return "", err
	}

	return signed, nil
}

// SessionFromToken validates a raw session token and rebuilds the SessionUser
// it carries. Validation failures of any kind surface as ErrSessionDecode so
// callers treat the request as having no user.
func (s *Auther) SessionFromToken(raw string) (*SessionUser, error) {
	var validator TokenValidator = s.tokenValidator
	if validator == nil {
		validator = s.tokenService
	}

	claims, err := validator.Validate(raw)
	if err != nil {
		s.logger.Error("SessionFromToken validation failed: %v", err)
		return nil, ErrSessionDecode
	}

	user, err := sessionFromSessionClaims(claims)
	if err != nil {
		s.logger.Error("SessionFromToken failed to map claims: %v", err)
		return nil, ErrSessionDecode
	}

	return user, nil
}

// tokenPresence keeps bearer tokens out of logs.
func tokenPresence(token string) string {
	if token == "" {
		return "absent"
	}
	return "present"
}
