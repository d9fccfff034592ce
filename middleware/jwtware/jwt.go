// Package jwtware is the fiber middleware that turns a signed session token
// back into a SessionUser and consults the authorization gate on every
// routed request.
//
// A missing or undecodable token is not an error by itself: it yields an
// absent user, and the gate decides whether the path tolerates that. Only a
// denial reaches the error handler, which by default redirects to the
// sign-in route.
package jwtware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pressgate/wpauth"
)

var (
	defaultTokenLookup = "cookie:user,header:" + fiber.HeaderAuthorization

	// ErrJWTMissingOrMalformed means no token could be extracted from the
	// configured lookup sources.
	ErrJWTMissingOrMalformed = errors.New("missing or malformed JWT")

	// ErrAccessDenied means the gate rejected the request.
	ErrAccessDenied = errors.New("access denied")
)

// SessionDecoder rebuilds a session user from a raw token. It mirrors the
// Authenticator's SessionFromToken method.
type SessionDecoder interface {
	SessionFromToken(raw string) (*wpauth.SessionUser, error)
}

type Config struct {
	// Decoder is required; it validates the token and rebuilds the user.
	Decoder SessionDecoder

	// Gate is the per-path authorization predicate. Defaults to the
	// dashboard/author gate.
	Gate *wpauth.Gate

	// Filter skips the middleware when it returns true.
	Filter func(*fiber.Ctx) bool

	// SuccessHandler runs after the gate allows the request.
	SuccessHandler fiber.Handler

	// ErrorHandler runs when the gate denies the request.
	ErrorHandler fiber.ErrorHandler

	// ContextKey is the fiber.Ctx Locals key holding the *wpauth.SessionUser.
	ContextKey string

	// TokenLookup is a comma-separated list of sources, e.g.
	// "cookie:user,header:Authorization".
	TokenLookup string

	// AuthScheme strips the scheme prefix from header tokens. Defaults to
	// "Bearer".
	AuthScheme string
}

// New builds the session middleware. Apply it to every routed request; the
// gate keeps public paths open.
func New(config ...Config) fiber.Handler {
	cfg := GetDefaultConfig(config...)
	extractors := GetExtractors(cfg.TokenLookup, cfg.AuthScheme)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		// Decode failures leave user nil: a tampered or expired token is
		// indistinguishable from no token at all.
		var user *wpauth.SessionUser
		if raw, err := extractRawToken(c, extractors); err == nil {
			if decoded, err := cfg.Decoder.SessionFromToken(raw); err == nil {
				user = decoded
			}
		}

		if !cfg.Gate.Authorized(user, c.Path()) {
			return cfg.ErrorHandler(c, ErrAccessDenied)
		}

		if user != nil {
			c.Locals(cfg.ContextKey, user)
			c.SetUserContext(wpauth.WithSessionContext(c.UserContext(), user))
		}

		return cfg.SuccessHandler(c)
	}
}

// UserFromContext reads the session user the middleware stored, if any.
func UserFromContext(c *fiber.Ctx, contextKey string) (*wpauth.SessionUser, bool) {
	if contextKey == "" {
		contextKey = "user"
	}
	user, ok := c.Locals(contextKey).(*wpauth.SessionUser)
	return user, ok && user != nil
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Decoder == nil {
		panic("WPAUTH: JWT middleware configuration: Decoder is required.")
	}

	if cfg.Gate == nil {
		cfg.Gate = wpauth.NewGate("", "")
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).SendString("Invalid or expired session")
		}
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	if cfg.TokenLookup == "" {
		cfg.TokenLookup = defaultTokenLookup
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	return cfg
}

type JWTExtractor func(c *fiber.Ctx) (string, error)

func extractRawToken(c *fiber.Ctx, extractors []JWTExtractor) (string, error) {
	var raw string
	var err error

	for _, extractor := range extractors {
		raw, err = extractor(c)
		if raw != "" && err == nil {
			break
		}
	}

	return raw, err
}

// GetExtractors parses a lookup expression such as
// "header:Authorization,cookie:user,query:auth_token" into extractors.
func GetExtractors(tokenLookup string, authSchemes ...string) []JWTExtractor {
	extractors := make([]JWTExtractor, 0)

	authScheme := "Bearer"
	if len(authSchemes) > 0 {
		authScheme = authSchemes[0]
	}

	rootParts := strings.Split(tokenLookup, ",")
	for _, rootPart := range rootParts {
		parts := strings.Split(strings.TrimSpace(rootPart), ":")
		if len(parts) < 2 {
			continue
		}

		for i, el := range parts {
			parts[i] = strings.TrimSpace(el)
		}

		switch parts[0] {
		case "header":
			extractors = append(extractors, jwtFromHeader(parts[1], authScheme))
		case "query":
			extractors = append(extractors, jwtFromQuery(parts[1]))
		case "cookie":
			extractors = append(extractors, jwtFromCookie(parts[1]))
		}
	}

	return extractors
}

// jwtFromHeader returns a function that extracts token from the request header.
func jwtFromHeader(header string, authScheme string) JWTExtractor {
	return func(c *fiber.Ctx) (string, error) {
		a := c.Get(header)
		authScheme = strings.TrimSpace(authScheme)
		l := len(authScheme)
		if l == 0 {
			return "", ErrJWTMissingOrMalformed
		}
		if len(a) > l+1 && strings.EqualFold(a[:l], authScheme) {
			return strings.TrimSpace(a[l:]), nil
		}
		return "", ErrJWTMissingOrMalformed
	}
}

// jwtFromQuery returns a function that extracts token from the query string.
func jwtFromQuery(param string) JWTExtractor {
	return func(c *fiber.Ctx) (string, error) {
		token := c.Query(param)
		if token == "" {
			return "", ErrJWTMissingOrMalformed
		}
		return token, nil
	}
}

// jwtFromCookie returns a function that extracts token from the named cookie.
func jwtFromCookie(name string) JWTExtractor {
	return func(c *fiber.Ctx) (string, error) {
		token := c.Cookies(name)
		if token == "" {
			return "", ErrJWTMissingOrMalformed
		}
		return token, nil
	}
}
