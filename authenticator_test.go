package wpauth_test

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressgate/wpauth"
)

func testPrincipal() *wpauth.Principal {
	return wpauth.NewPrincipal(
		"7",
		"bobjones",
		"Bob Jones",
		"bob@x.com",
		[]string{"author", "subscriber"},
		"abc123",
	)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("missing credentials short-circuit before any provider call", func(t *testing.T) {
		provider := new(MockIdentityProvider)
		auther := wpauth.NewAuthenticator(provider, newTestConfig())

		for _, creds := range [][2]string{
			{"", ""},
			{"bob", ""},
			{"", "secret"},
		} {
			principal, err := auther.Authenticate(ctx, creds[0], creds[1])
			assert.Nil(t, principal)
			assert.ErrorIs(t, err, wpauth.ErrMissingCredentials)
		}

		provider.AssertNotCalled(t, "Verify")
		provider.AssertNotCalled(t, "FetchProfile")
	})

	t.Run("verify failure stops the pipeline", func(t *testing.T) {
		provider := new(MockIdentityProvider)
		auther := wpauth.NewAuthenticator(provider, newTestConfig())

		provider.On("Verify", ctx, "bob", "wrong").
			Return("", wpauth.ErrInvalidCredentials).Once()

		principal, err := auther.Authenticate(ctx, "bob", "wrong")

		assert.Nil(t, principal)
		assert.ErrorIs(t, err, wpauth.ErrInvalidCredentials)
		provider.AssertNotCalled(t, "FetchProfile")
	})

	t.Run("fetch failure yields no partial principal", func(t *testing.T) {
		provider := new(MockIdentityProvider)
		auther := wpauth.NewAuthenticator(provider, newTestConfig())

		provider.On("Verify", ctx, "bob", "secret").
			Return("abc123", nil).Once()
		provider.On("FetchProfile", ctx, "abc123").
			Return(nil, wpauth.ErrProfileFetchFailed).Once()

		principal, err := auther.Authenticate(ctx, "bob", "secret")

		assert.Nil(t, principal)
		assert.ErrorIs(t, err, wpauth.ErrProfileFetchFailed)
	})

	t.Run("transport failure is reported, not retried", func(t *testing.T) {
		provider := new(MockIdentityProvider)
		auther := wpauth.NewAuthenticator(provider, newTestConfig())

		provider.On("Verify", ctx, "bob", "secret").
			Return("", wpauth.ErrTransport).Once()

		principal, err := auther.Authenticate(ctx, "bob", "secret")

		assert.Nil(t, principal)
		assert.ErrorIs(t, err, wpauth.ErrTransport)
		provider.AssertNumberOfCalls(t, "Verify", 1)
	})

	t.Run("successful verify and fetch produce the principal", func(t *testing.T) {
		provider := new(MockIdentityProvider)
		auther := wpauth.NewAuthenticator(provider, newTestConfig())

		want := testPrincipal()
		provider.On("Verify", ctx, "bobjones", "secret").
			Return("abc123", nil).Once()
		provider.On("FetchProfile", ctx, "abc123").
			Return(want, nil).Once()

		principal, err := auther.Authenticate(ctx, "bobjones", "secret")

		require.NoError(t, err)
		assert.Equal(t, want, principal)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("successful login mints a signed session token", func(t *testing.T) {
		provider := new(MockIdentityProvider)
		auther := wpauth.NewAuthenticator(provider, newTestConfig())

		provider.On("Verify", ctx, "bobjones", "secret").
			Return("abc123", nil).Once()
		provider.On("FetchProfile", ctx, "abc123").
			Return(testPrincipal(), nil).Once()

		token, err := auther.Login(ctx, "bobjones", "secret")

		require.NoError(t, err)
		require.NotEmpty(t, token)

		parsed, err := jwt.ParseWithClaims(token, &wpauth.SessionClaims{}, func(t *jwt.Token) (any, error) {
			return []byte("test-signing-key"), nil
		})
		require.NoError(t, err)
		require.True(t, parsed.Valid)

		claims, ok := parsed.Claims.(*wpauth.SessionClaims)
		require.True(t, ok)
		assert.Equal(t, "7", claims.UserID())
		assert.Equal(t, "bobjones", claims.Username)
		assert.Equal(t, "Bob Jones", claims.DisplayName)
		assert.Equal(t, "bob@x.com", claims.Email)
		assert.Equal(t, []string{"author", "subscriber"}, claims.Roles)
		assert.Equal(t, "abc123", claims.AccessToken)
		assert.Equal(t, "test-issuer", claims.Issuer)
		assert.NotEmpty(t, claims.ID, "token should carry a jti")
	})

	t.Run("login failure produces no token", func(t *testing.T) {
		provider := new(MockIdentityProvider)
		auther := wpauth.NewAuthenticator(provider, newTestConfig())

		provider.On("Verify", ctx, "bob", "wrong").
			Return("", wpauth.ErrInvalidCredentials).Once()

		token, err := auther.Login(ctx, "bob", "wrong")

		assert.Empty(t, token)
		assert.Error(t, err)
	})
}

func TestSessionFromToken(t *testing.T) {
	ctx := context.Background()

	newSignedToken := func(t *testing.T, cfg *testConfig) string {
		t.Helper()
		provider := new(MockIdentityProvider)
		auther := wpauth.NewAuthenticator(provider, cfg)

		provider.On("Verify", ctx, "bobjones", "secret").
			Return("abc123", nil).Once()
		provider.On("FetchProfile", ctx, "abc123").
			Return(testPrincipal(), nil).Once()

		token, err := auther.Login(ctx, "bobjones", "secret")
		require.NoError(t, err)
		return token
	}

	t.Run("round trip preserves every principal field", func(t *testing.T) {
		cfg := newTestConfig()
		token := newSignedToken(t, cfg)

		auther := wpauth.NewAuthenticator(new(MockIdentityProvider), cfg)
		user, err := auther.SessionFromToken(token)

		require.NoError(t, err)
		assert.Equal(t, "7", user.ID)
		assert.Equal(t, "bobjones", user.Username)
		assert.Equal(t, "Bob Jones", user.DisplayName)
		assert.Equal(t, "bob@x.com", user.Email)
		assert.Equal(t, []string{"author", "subscriber"}, user.Roles)
		assert.Equal(t, "abc123", user.AccessToken)
	})

	t.Run("token signed with a different secret is rejected outright", func(t *testing.T) {
		cfg := newTestConfig()
		token := newSignedToken(t, cfg)

		otherCfg := newTestConfig()
		otherCfg.signingKey = "a-different-secret"
		auther := wpauth.NewAuthenticator(new(MockIdentityProvider), otherCfg)

		user, err := auther.SessionFromToken(token)

		assert.Nil(t, user, "signature failure must yield absent user, not defaults")
		assert.ErrorIs(t, err, wpauth.ErrSessionDecode)
	})

	t.Run("garbage token yields decode error", func(t *testing.T) {
		auther := wpauth.NewAuthenticator(new(MockIdentityProvider), newTestConfig())

		user, err := auther.SessionFromToken("not-a-jwt")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, wpauth.ErrSessionDecode)
	})
}
