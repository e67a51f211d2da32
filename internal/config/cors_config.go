package config

import (
	"net/http"
	"strings"
)

type Cors struct {
	Origins AllowedOrigins `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

var _ CorsConfig = Cors{}

type AllowedOrigins []string

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	for _, o := range a {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

func (a AllowedOrigins) String() string {
	return strings.Join(a, ", ")
}

func (c Cors) GetAllowedOrigins() AllowedOrigins {
	return c.Origins
}

func (Cors) GetAllowedMethods() []string {
	return []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}
}

func (Cors) GetAllowedHeaders() []string {
	return []string{"Content-Type", "Authorization", "Request-Id"}
}
