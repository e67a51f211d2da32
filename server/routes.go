package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())

	// Login handshake
	s.RegisterRouteHandler("GET "+RouteAuthorize, ChainMiddleware(s.AuthorizeHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthenticate, ChainMiddleware(s.AuthenticateHandler(), s.APIMiddleware(s.RateLimitMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteToken, ChainMiddleware(s.TokenHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteVerify, ChainMiddleware(s.VerifyHandler(), s.APIMiddleware()...))

	// Records (protected)
	s.RegisterRouteHandler("GET "+RouteRecords, ChainMiddleware(s.ListRecordsHandler(), s.ProtectedMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteRecordSearch, ChainMiddleware(s.SearchRecordsHandler(), s.ProtectedMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteRecord, ChainMiddleware(s.GetRecordHandler(), s.ProtectedMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteRecords, ChainMiddleware(s.CreateRecordHandler(), s.ProtectedMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteRecord, ChainMiddleware(s.UpdateRecordHandler(), s.ProtectedMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteRecord, ChainMiddleware(s.DeleteRecordHandler(), s.ProtectedMiddleware()...))
}
