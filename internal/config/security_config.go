package config

type SecurityConfig interface {
	GetAPIKeyHeader() string
	GetAPIKey() string
	GetEnableRateLimiting() bool
	GetLoginRatePerMinute() int
	GetLoginBurst() int
}

type Security struct {
	APIKeyHeader       string `envconfig:"API_KEY_HEADER" default:"key"`
	APIKey             string `envconfig:"API_KEY"`
	RateLimitEnabled   bool   `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
	LoginRatePerMinute int    `envconfig:"LOGIN_RATE_PER_MINUTE" default:"10"`
	LoginBurst         int    `envconfig:"LOGIN_BURST" default:"5"`
}

var _ SecurityConfig = Security{}

func (s Security) GetAPIKeyHeader() string {
	return s.APIKeyHeader
}

// GetAPIKey returns the shared API key. An empty key disables the API-key shortcut.
func (s Security) GetAPIKey() string {
	return s.APIKey
}

func (s Security) GetEnableRateLimiting() bool {
	return s.RateLimitEnabled
}

func (s Security) GetLoginRatePerMinute() int {
	return s.LoginRatePerMinute
}

func (s Security) GetLoginBurst() int {
	return s.LoginBurst
}
