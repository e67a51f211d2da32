package config

import (
	"fmt"
	"strings"
)

type EnvVars struct {
	Port     string `envconfig:"PORT" default:"8080"`
	AppName  string `envconfig:"APP_NAME" default:"StudyFlow Auth"`
	Env      string `envconfig:"ENV" default:"DEV"`
	BaseURL  string `envconfig:"BASE_URL" default:"http://localhost:8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	if strings.HasPrefix(e.Port, ":") {
		return e.Port
	}
	return fmt.Sprintf(":%s", e.Port)
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	return e.Env
}

// GetBaseURL returns the externally visible URL of the service (e.g. "https://auth.example.com").
// It prefixes the authUrl handed out by the authorize endpoint.
func (e EnvVars) GetBaseURL() string {
	return strings.TrimSuffix(e.BaseURL, "/")
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}
