package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes - login handshake
	RouteAuthorize    = "/auth/authorize"
	RouteLogin        = "/auth/login"
	RouteAuthenticate = "/auth/authenticate"
	RouteToken        = "/auth/token"
	RouteVerify       = "/auth/verify"

	// Records Routes (require an identity)
	RouteRecords      = "/records"
	RouteRecordSearch = "/records/search"
	RouteRecord       = "/records/{id}"

	RouteHealth = "/healthz"
)
