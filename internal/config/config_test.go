package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/studyflow-auth/internal/config"
	autherrors "github.com/jrsteele09/studyflow-auth/internal/errors"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	c, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, testSecret, c.GetSigningSecret())
	require.Equal(t, 24*time.Hour, c.GetTokenExpiry())
	require.Equal(t, 5*time.Minute, c.GetSessionTimeout())
	require.Equal(t, time.Minute, c.GetSessionSweepInterval())
	require.Equal(t, "key", c.GetAPIKeyHeader())
	require.Equal(t, "example.com", c.GetEmailDomain())
	require.True(t, strings.HasPrefix(c.GetPort(), ":"))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("PORT", ":9090")
	t.Setenv("BASE_URL", "https://auth.studyflow.test/")
	t.Setenv("JWT_EXPIRATION", "90m")
	t.Setenv("SESSION_TIMEOUT", "30s")
	t.Setenv("API_KEY", "sesame")
	t.Setenv("ALLOWED_ORIGINS", "https://a.test,https://b.test")
	t.Setenv("RATE_LIMIT_ENABLED", "true")

	c, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", c.GetPort())
	require.Equal(t, "https://auth.studyflow.test", c.GetBaseURL())
	require.Equal(t, 90*time.Minute, c.GetTokenExpiry())
	require.Equal(t, 30*time.Second, c.GetSessionTimeout())
	require.Equal(t, "sesame", c.GetAPIKey())
	require.True(t, c.GetEnableRateLimiting())

	origins := c.GetAllowedOrigins()
	require.Len(t, origins, 2)
	require.True(t, origins.IsAllowedOrigin("https://b.test"))
	require.False(t, origins.IsAllowedOrigin("https://c.test"))
}

func TestLoad_RejectsWeakSecret(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := config.Load()
		require.ErrorIs(t, err, autherrors.ErrWeakSigningKey)
	})
	t.Run("short", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "too-short")
		_, err := config.Load()
		require.ErrorIs(t, err, autherrors.ErrWeakSigningKey)
	})
}

func TestLoad_RejectsSubSecondTokenExpiry(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("JWT_EXPIRATION", "500ms")

	_, err := config.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_EXPIRATION")
}

func TestLoad_RejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("SESSION_TIMEOUT", "0s")

	_, err := config.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "SESSION_TIMEOUT")
}
