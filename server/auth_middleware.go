package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/courier-admin/session"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyClaims stores the signed-in session claims
	ContextKeyClaims ContextKey = "claims"
)

// RequireSession is middleware for console routes. Without a live session the browser is
// sent to the login page.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, ok := s.gate.Current()
			if !ok {
				redirectSuccess(w, r, RouteLogin)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next(w, r.WithContext(ctx))
		}
	}
}

func claimsFromContext(ctx context.Context) session.Claims {
	claims, _ := ctx.Value(ContextKeyClaims).(session.Claims)
	return claims
}
