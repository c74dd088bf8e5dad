package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/jrsteele09/courier-admin/internal/errors"
	"github.com/jrsteele09/courier-admin/session"
	"github.com/rs/zerolog/log"
)

// SessionResponse describes the console session for scripts and the dashboard itself.
type SessionResponse struct {
	State     session.State      `json:"state"`
	User      *session.Identity  `json:"user,omitempty"`
	Role      string             `json:"role,omitempty"`
	Menu      []session.MenuItem `json:"menu,omitempty"`
	ExpiresAt *time.Time         `json:"expiresAt,omitempty"`
}

// SessionHandler reports the gate state (GET /api/session).
func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.gate.Current()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, SessionResponse{State: s.gate.State()})
			return
		}

		identity := claims.Identity()
		resp := SessionResponse{
			State: session.StateAuthenticated,
			User:  &identity,
			Role:  session.RoleLabel(claims),
			Menu:  session.Menu(claims),
		}
		if !claims.ExpiresAt.IsZero() {
			resp.ExpiresAt = &claims.ExpiresAt
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// WhoAmIHandler asks the token issuer who the session belongs to (GET /api/session/me).
func (s *Server) WhoAmIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := s.gate.WhoAmI(r.Context())
		switch {
		case errors.Is(err, errors.ErrNotAuthenticated), errors.Is(err, errors.ErrInvalidToken):
			writeJSONError(w, "unauthorized", err.Error(), http.StatusUnauthorized)
			return
		case err != nil:
			log.Err(err).Msg("WhoAmI failed")
			writeJSONError(w, "bad_gateway", err.Error(), http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, identity)
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":     "ok",
			"session":    string(s.gate.State()),
			"dataSource": string(s.config.GetDataSource()),
		})
	}
}

// ImageHandler serves product images held by the in-memory image store (GET /images/{id}).
func (s *Server) ImageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		img, err := s.images.Fetch(r.Context(), id)
		if err != nil {
			if !errors.Is(err, errors.ErrNotFound) {
				logError(r.Method, r.URL.Path, err.Error())
			}
			http.Error(w, "404 - Image Not Found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", img.ContentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
		_, _ = w.Write(img.Data)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON+"; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("Failed to encode JSON response")
	}
}

func writeJSONError(w http.ResponseWriter, errorCode, description string, statusCode int) {
	writeJSON(w, statusCode, map[string]string{
		"error":             errorCode,
		"error_description": description,
	})
}
