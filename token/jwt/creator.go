package jwt

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/courier-admin/internal/config"
	"github.com/jrsteele09/courier-admin/session"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

const (
	RoleManager = "manager"
	RoleCourier = "courier"
)

// Creator signs the access tokens handed out by the in-memory authenticator.
type Creator struct {
	secret []byte
	expiry time.Duration
}

// NewCreator creates a new JWT creator
func NewCreator(cfg config.SecurityConfig) *Creator {
	return &Creator{
		secret: []byte(cfg.GetTokenSigningSecret()),
		expiry: cfg.GetTokenExpiry(),
	}
}

// CreateAccessToken creates an HS256 access token for the identity
func (c *Creator) CreateAccessToken(id session.Identity) (*string, error) {
	role := RoleCourier
	if id.IsManager {
		role = RoleManager
	}

	claims := jwtlib.MapClaims{
		"sub":       id.ID,                              // The user's unique ID
		"username":  id.Username,                        // Login name shown in the console header
		"isManager": id.IsManager,                       // Role flag read by the console
		"role":      role,                               // Same role as a string for other consumers
		"iat":       NowTimeFunc().Unix(),               // Issued At
		"exp":       NowTimeFunc().Add(c.expiry).Unix(), // Expiry
		"jti":       uuid.New().String(),                // Unique token ID for revocation
	}

	signedToken, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return &signedToken, nil
}
