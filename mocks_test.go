package wpauth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pressgate/wpauth"
)

// MockIdentityProvider implements wpauth.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) Verify(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityProvider) FetchProfile(ctx context.Context, token string) (*wpauth.Principal, error) {
	args := m.Called(ctx, token)
	if p := args.Get(0); p != nil {
		return p.(*wpauth.Principal), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockAuthenticator implements wpauth.Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, username, password string) (*wpauth.Principal, error) {
	args := m.Called(ctx, username, password)
	if p := args.Get(0); p != nil {
		return p.(*wpauth.Principal), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthenticator) SessionFromToken(token string) (*wpauth.SessionUser, error) {
	args := m.Called(token)
	if u := args.Get(0); u != nil {
		return u.(*wpauth.SessionUser), args.Error(1)
	}
	return nil, args.Error(1)
}

// testConfig is a plain Config implementation for tests
type testConfig struct {
	baseURL         string
	signingKey      string
	tokenExpiration int
	extendedTTL     int
	issuer          string
	audience        []string
	devMode         bool
}

func newTestConfig() *testConfig {
	return &testConfig{
		baseURL:         "https://wp.example.com",
		signingKey:      "test-signing-key",
		tokenExpiration: 24,
		extendedTTL:     168,
		issuer:          "test-issuer",
		audience:        []string{"test:audience"},
	}
}

func (c *testConfig) GetBaseURL() string            { return c.baseURL }
func (c *testConfig) GetSigningKey() string         { return c.signingKey }
func (c *testConfig) GetSigningMethod() string      { return "HS256" }
func (c *testConfig) GetContextKey() string         { return "user" }
func (c *testConfig) GetTokenExpiration() int       { return c.tokenExpiration }
func (c *testConfig) GetExtendedTokenDuration() int { return c.extendedTTL }
func (c *testConfig) GetTokenLookup() string        { return "cookie:user,header:Authorization" }
func (c *testConfig) GetAuthScheme() string         { return "Bearer" }
func (c *testConfig) GetIssuer() string             { return c.issuer }
func (c *testConfig) GetAudience() []string         { return c.audience }
func (c *testConfig) GetSignInRoute() string        { return "/login" }
func (c *testConfig) GetRejectedRouteKey() string   { return "rejected_route" }
func (c *testConfig) GetRejectedRouteDefault() string {
	return "/"
}
func (c *testConfig) IsDevMode() bool { return c.devMode }
