package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteAuthLogin       = "/auth/login"
	RouteAuthLogout      = "/auth/logout"
	RouteAuthMe          = "/auth/me"
	RouteAuthMagicLink   = "/auth/magic-link"
	RouteAuthDeviceLogin = "/auth/device-login"
	RouteHealth          = "/healthz"
)

func (s *Server) initRoutes() {
	s.mux.HandleFunc("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.mux.HandleFunc("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))
	s.mux.HandleFunc("GET "+RouteAuthMe, ChainMiddleware(s.CurrentUserHandler(), s.APIMiddleware()...))
	s.mux.HandleFunc("POST "+RouteAuthMagicLink, ChainMiddleware(s.MagicLinkHandler(), s.APIMiddleware()...))
	s.mux.HandleFunc("POST "+RouteAuthDeviceLogin, ChainMiddleware(s.DeviceLoginHandler(), s.APIMiddleware()...))
	s.mux.HandleFunc("GET "+RouteHealth, s.HealthHandler())
}
