package server

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/cors"

	"github.com/jrsteele09/studyflow-auth/auth"
	"github.com/jrsteele09/studyflow-auth/internal/config"
	"github.com/jrsteele09/studyflow-auth/records"
)

// Dependencies holds the services the HTTP layer dispatches to
type Dependencies struct {
	Auth    *auth.AuthorizationService // Login handshake
	Tokens  TokenVerifier              // Bearer token verification for every request
	Records records.Repo               // Protected record store
}

type Server struct {
	env     string // Environment (e.g., "DEV", "PROD")
	mux     *http.ServeMux
	handler http.Handler
	routes  []string
	config  config.Config
	auth    *auth.AuthorizationService
	tokens  TokenVerifier
	records records.Repo
	schemas *requestSchemas
	limiter *loginLimiter
	pages   *pageTemplates
}

func New(config config.Config, deps Dependencies) (*Server, error) {
	if deps.Auth == nil {
		return nil, errors.New("[server.New] authorization service is required")
	}
	if deps.Tokens == nil {
		return nil, errors.New("[server.New] token verifier is required")
	}
	if deps.Records == nil {
		return nil, errors.New("[server.New] records repo is required")
	}

	schemas, err := loadRequestSchemas()
	if err != nil {
		return nil, errors.Wrap(err, "[server.New] loading request schemas")
	}
	pages, err := parsePageTemplates()
	if err != nil {
		return nil, errors.Wrap(err, "[server.New] parsing page templates")
	}

	s := &Server{
		env:     config.GetEnv(),
		mux:     http.NewServeMux(),
		config:  config,
		auth:    deps.Auth,
		tokens:  deps.Tokens,
		records: deps.Records,
		schemas: schemas,
		pages:   pages,
	}
	if config.GetEnableRateLimiting() {
		s.limiter = newLoginLimiter(config.GetLoginRatePerMinute(), config.GetLoginBurst())
	}

	s.initRoutes()
	s.handler = s.buildHandler()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// buildHandler wraps the router with the layers every request passes through.
// Authentication runs before routing so handlers only ever read the request context.
func (s *Server) buildHandler() http.Handler {
	var h http.Handler = s.mux
	h = s.Authenticate(h)
	h = s.corsHandler().Handler(h)
	return AccessLog(h)
}

func (s *Server) corsHandler() *cors.Cors {
	headers := append([]string{}, s.config.GetAllowedHeaders()...)
	if apiKeyHeader := s.config.GetAPIKeyHeader(); apiKeyHeader != "" {
		headers = append(headers, apiKeyHeader)
	}
	return cors.New(cors.Options{
		AllowOriginFunc:  s.config.GetAllowedOrigins().IsAllowedOrigin,
		AllowedMethods:   s.config.GetAllowedMethods(),
		AllowedHeaders:   headers,
		AllowCredentials: true,
		MaxAge:           3600,
	})
}
