package server

import (
	"net/http"

	"github.com/jrsteele09/courier-admin/internal/config"
	"github.com/rs/zerolog/log"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteIndex+"{$}", ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare()...))

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageUIHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// Console pages (require a signed-in session)
	s.RegisterRouteHandler("GET "+RouteConsole+"{$}", ChainMiddleware(s.ConsolePageHandler(), s.HTMLMiddleWare(s.RequireSession(), s.CompressionMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteConsolePage, ChainMiddleware(s.ConsolePageHandler(), s.HTMLMiddleWare(s.RequireSession(), s.CompressionMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteConsoleAction, ChainMiddleware(s.ConsoleActionHandler(), s.HTMLMiddleWare(s.RequireSession())...))

	if s.config.GetDataSource() == config.DataSourceMemory {
		s.RegisterRouteHandler("GET "+RouteImage, ChainMiddleware(s.ImageHandler(), s.HTMLMiddleWare(s.CacheMiddleware)...))
	}

	// API routes
	s.RegisterRouteHandler("GET "+RouteAPISession, ChainMiddleware(s.SessionHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIWhoAmI, ChainMiddleware(s.WhoAmIHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))
}

func logError(method, path, error string) {
	log.Error().Msgf("[%-19s] %s %s", colouredMethod(method), path, Red+error+ResetColor)
}

func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.gate.Current(); ok {
			http.Redirect(w, r, RouteConsole, http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	}
}
