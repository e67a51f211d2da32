package config

import "time"

type AuthConfig interface {
	GetSigningSecret() string
	GetTokenExpiry() time.Duration
	GetIssuer() string
	GetSessionTimeout() time.Duration
	GetSessionSweepInterval() time.Duration
	GetEmailDomain() string
}

type Auth struct {
	SigningSecret        string        `envconfig:"JWT_SECRET"`
	TokenExpiry          time.Duration `envconfig:"JWT_EXPIRATION" default:"24h"`
	Issuer               string        `envconfig:"JWT_ISSUER" default:"studyflow-auth"`
	SessionTimeout       time.Duration `envconfig:"SESSION_TIMEOUT" default:"5m"`
	SessionSweepInterval time.Duration `envconfig:"SESSION_SWEEP_INTERVAL" default:"1m"`
	EmailDomain          string        `envconfig:"EMAIL_DOMAIN" default:"example.com"`
}

var _ AuthConfig = Auth{}

// GetSigningSecret returns the shared HMAC key. Never log it.
func (a Auth) GetSigningSecret() string {
	return a.SigningSecret
}

func (a Auth) GetTokenExpiry() time.Duration {
	return a.TokenExpiry
}

func (a Auth) GetIssuer() string {
	return a.Issuer
}

func (a Auth) GetSessionTimeout() time.Duration {
	return a.SessionTimeout
}

func (a Auth) GetSessionSweepInterval() time.Duration {
	return a.SessionSweepInterval
}

func (a Auth) GetEmailDomain() string {
	return a.EmailDomain
}
