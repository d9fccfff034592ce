package wpauth

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// DevFallbackSecret signs sessions when no secret is configured outside of
// production. It is an explicit, logged development mode, never a silent
// default: production deployments without SESSION_SECRET refuse to start.
const DevFallbackSecret = "fallback-secret-for-development"

var _ Config = &AppConfig{}

// AppConfig is the process configuration, read from the environment once at
// startup and passed explicitly into the Auther, codec, and middleware.
type AppConfig struct {
	BaseURL         string   `env:"WP_BASE_URL"`
	SigningKey      string   `env:"SESSION_SECRET"`
	Environment     string   `env:"APP_ENV" envDefault:"development"`
	Issuer          string   `env:"SESSION_ISSUER" envDefault:"wpauth"`
	Audience        []string `env:"SESSION_AUDIENCE" envSeparator:","`
	TokenExpiration int      `env:"SESSION_TTL_HOURS" envDefault:"24"`
	ExtendedTTL     int      `env:"SESSION_EXTENDED_TTL_HOURS" envDefault:"168"`
	ContextKey      string   `env:"SESSION_CONTEXT_KEY" envDefault:"user"`
	TokenLookup     string   `env:"SESSION_TOKEN_LOOKUP" envDefault:"cookie:user"`
	AuthScheme      string   `env:"SESSION_AUTH_SCHEME" envDefault:"Bearer"`
	SignInRoute     string   `env:"SIGNIN_ROUTE" envDefault:"/login"`
	ProtectedPrefix string   `env:"PROTECTED_PREFIX" envDefault:"/dashboard"`
	RequiredRole    string   `env:"PROTECTED_ROLE" envDefault:"author"`

	RejectedRouteKey     string `env:"REJECTED_ROUTE_KEY" envDefault:"rejected_route"`
	RejectedRouteDefault string `env:"REJECTED_ROUTE_DEFAULT" envDefault:"/"`

	devMode bool
}

// NewConfigFromEnv reads the process environment and validates the result.
// The returned config is ready to hand to NewAuthenticator and friends.
func NewConfigFromEnv(logger Logger) (*AppConfig, error) {
	if logger == nil {
		logger = defLogger{}
	}

	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment: %w", err)
	}

	if err := cfg.Validate(logger); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate enforces the deployment contract: a base URL is always required,
// and the signing secret may only be defaulted outside production.
func (c *AppConfig) Validate(logger Logger) error {
	if logger == nil {
		logger = defLogger{}
	}

	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("config: WP_BASE_URL is required")
	}

	if strings.TrimSpace(c.SigningKey) == "" {
		if c.IsProduction() {
			return fmt.Errorf("config: SESSION_SECRET is required in production")
		}
		c.SigningKey = DevFallbackSecret
		c.devMode = true
		logger.Warn("SESSION_SECRET not set, using development fallback secret; do not run this mode in production")
	}

	return nil
}

// IsProduction reports whether the process runs with APP_ENV=production.
func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// IsDevMode reports whether the fallback development secret is in use.
func (c *AppConfig) IsDevMode() bool {
	return c.devMode
}

func (c *AppConfig) GetBaseURL() string {
	return strings.TrimRight(c.BaseURL, "/")
}

func (c *AppConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c *AppConfig) GetSigningMethod() string {
	return "HS256"
}

func (c *AppConfig) GetContextKey() string {
	return c.ContextKey
}

func (c *AppConfig) GetTokenExpiration() int {
	return c.TokenExpiration
}

func (c *AppConfig) GetExtendedTokenDuration() int {
	return c.ExtendedTTL
}

func (c *AppConfig) GetTokenLookup() string {
	return c.TokenLookup
}

func (c *AppConfig) GetAuthScheme() string {
	return c.AuthScheme
}

func (c *AppConfig) GetIssuer() string {
	return c.Issuer
}

func (c *AppConfig) GetAudience() []string {
	return c.Audience
}

func (c *AppConfig) GetSignInRoute() string {
	return c.SignInRoute
}

func (c *AppConfig) GetRejectedRouteKey() string {
	return c.RejectedRouteKey
}

func (c *AppConfig) GetRejectedRouteDefault() string {
	return c.RejectedRouteDefault
}
