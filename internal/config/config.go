package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	autherrors "github.com/jrsteele09/studyflow-auth/internal/errors"
)

const minSigningSecretLength = 32

type Config interface {
	EnvConfig
	AuthConfig
	SecurityConfig
	CorsConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetBaseURL() string
	GetLogLevel() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() []string
	GetAllowedHeaders() []string
}

type mainConfig struct {
	EnvVars
	Auth
	Security
	Cors
}

// Load reads the configuration from the environment once and validates it.
// A non-nil error means the process must not start.
func Load() (Config, error) {
	c := &mainConfig{}
	if err := envconfig.Process("", c); err != nil {
		return nil, errors.Wrap(err, "[config.Load] reading environment")
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *mainConfig) validate() error {
	if len(c.SigningSecret) < minSigningSecretLength {
		return errors.Wrap(autherrors.ErrWeakSigningKey, "[config.Load] JWT_SECRET")
	}
	if c.TokenExpiry < time.Second {
		return errors.New("[config.Load] JWT_EXPIRATION must be at least 1s")
	}
	if c.SessionTimeout <= 0 {
		return errors.New("[config.Load] SESSION_TIMEOUT must be positive")
	}
	if c.SessionSweepInterval <= 0 {
		return errors.New("[config.Load] SESSION_SWEEP_INTERVAL must be positive")
	}
	if c.RateLimitEnabled && (c.LoginRatePerMinute <= 0 || c.LoginBurst <= 0) {
		return errors.New("[config.Load] LOGIN_RATE_PER_MINUTE and LOGIN_BURST must be positive when rate limiting is enabled")
	}
	return nil
}
