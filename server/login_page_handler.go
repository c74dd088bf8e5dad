package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/courier-admin/internal/errors"
	"github.com/rs/zerolog/log"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName  string
	Error    string
	Username string // Preserve username on error
}

// LoginPageUIHandler displays the login page (GET /login)
func (s *Server) LoginPageUIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.gate.Current(); ok {
			redirectSuccess(w, r, RouteConsole)
			return
		}

		data := LoginPageData{
			AppName:  s.config.GetAppName(),
			Error:    r.URL.Query().Get("error"),
			Username: r.URL.Query().Get("username"),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := s.loginTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render login template")
			http.Error(w, "Failed to render login page", http.StatusInternalServerError)
		}
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		username := strings.TrimSpace(r.FormValue("username"))
		password := r.FormValue("password")

		if username == "" || password == "" {
			s.renderLoginError(w, r, "Username and password are required", username)
			return
		}

		if _, err := s.gate.Login(r.Context(), username, password); err != nil {
			log.Err(err).Str("username", username).Msg("Login failed")
			s.renderLoginError(w, r, loginErrorMessage(err), username)
			return
		}

		redirectSuccess(w, r, RouteConsole)
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.gate.Logout(r.Context())
		s.console.Cities().Clear()
		s.console.Notifications().Drain()
		redirectSuccess(w, r, RouteLogin)
	}
}

func loginErrorMessage(err error) string {
	switch {
	case errors.Is(err, errors.ErrInvalidCredentials):
		return "Invalid username or password"
	case errors.Is(err, errors.ErrTokenExpired):
		return "The issued session has already expired"
	default:
		return "Sign in failed, please try again"
	}
}

// renderLoginError redirects to login page with an error message
func (s *Server) renderLoginError(w http.ResponseWriter, r *http.Request, errorMsg, username string) {
	extra := url.Values{}
	if username != "" {
		extra.Set("username", username)
	}
	redirectWithError(w, r, RouteLogin, errorMsg, extra)
}
