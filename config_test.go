package wpauth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressgate/wpauth"
)

func TestNewConfigFromEnv(t *testing.T) {
	t.Run("reads the environment", func(t *testing.T) {
		t.Setenv("WP_BASE_URL", "https://wp.example.com/")
		t.Setenv("SESSION_SECRET", "super-secret")
		t.Setenv("APP_ENV", "production")
		t.Setenv("SESSION_TTL_HOURS", "12")
		t.Setenv("SESSION_AUDIENCE", "app:web,app:mobile")

		cfg, err := wpauth.NewConfigFromEnv(nil)
		require.NoError(t, err)

		assert.Equal(t, "https://wp.example.com", cfg.GetBaseURL(), "trailing slash trimmed")
		assert.Equal(t, "super-secret", cfg.GetSigningKey())
		assert.Equal(t, 12, cfg.GetTokenExpiration())
		assert.Equal(t, []string{"app:web", "app:mobile"}, cfg.GetAudience())
		assert.True(t, cfg.IsProduction())
		assert.False(t, cfg.IsDevMode())
	})

	t.Run("base URL is required", func(t *testing.T) {
		t.Setenv("WP_BASE_URL", "")
		t.Setenv("SESSION_SECRET", "super-secret")

		_, err := wpauth.NewConfigFromEnv(nil)
		assert.Error(t, err)
	})

	t.Run("missing secret in production refuses to start", func(t *testing.T) {
		t.Setenv("WP_BASE_URL", "https://wp.example.com")
		t.Setenv("SESSION_SECRET", "")
		t.Setenv("APP_ENV", "production")

		_, err := wpauth.NewConfigFromEnv(nil)
		assert.Error(t, err)
	})

	t.Run("missing secret outside production enables logged dev mode", func(t *testing.T) {
		t.Setenv("WP_BASE_URL", "https://wp.example.com")
		t.Setenv("SESSION_SECRET", "")
		t.Setenv("APP_ENV", "development")

		cfg, err := wpauth.NewConfigFromEnv(nil)
		require.NoError(t, err)

		assert.True(t, cfg.IsDevMode())
		assert.Equal(t, wpauth.DevFallbackSecret, cfg.GetSigningKey())
	})

	t.Run("defaults cover the session surface", func(t *testing.T) {
		t.Setenv("WP_BASE_URL", "https://wp.example.com")
		t.Setenv("SESSION_SECRET", "super-secret")

		cfg, err := wpauth.NewConfigFromEnv(nil)
		require.NoError(t, err)

		assert.Equal(t, "HS256", cfg.GetSigningMethod())
		assert.Equal(t, "user", cfg.GetContextKey())
		assert.Equal(t, "cookie:user", cfg.GetTokenLookup())
		assert.Equal(t, "Bearer", cfg.GetAuthScheme())
		assert.Equal(t, 24, cfg.GetTokenExpiration())
		assert.Equal(t, 168, cfg.GetExtendedTokenDuration())
		assert.Equal(t, "/login", cfg.GetSignInRoute())
		assert.Equal(t, "/dashboard", cfg.ProtectedPrefix)
		assert.Equal(t, "author", cfg.RequiredRole)
		assert.Equal(t, "rejected_route", cfg.GetRejectedRouteKey())
		assert.Equal(t, "/", cfg.GetRejectedRouteDefault())
	})
}
