package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/courier-admin/internal/config"
)

// TokenIntrospection is what the inspector learned about a token.
// If Active is false, the other fields may not be populated.
type TokenIntrospection struct {
	Active    bool      `json:"active"`
	Sub       string    `json:"sub,omitempty"`
	Username  string    `json:"username,omitempty"`
	IsManager bool      `json:"isManager,omitempty"`
	Jti       string    `json:"jti,omitempty"`
	Exp       time.Time `json:"exp,omitempty"`
}

// RevokedChecker is an interface for checking if a token has been revoked
type RevokedChecker interface {
	IsRevoked(jti string) bool
}

// Inspector verifies tokens issued by Creator
type Inspector struct {
	secret         []byte
	revokedChecker RevokedChecker
}

func NewInspector(cfg config.SecurityConfig, revokedChecker RevokedChecker) *Inspector {
	return &Inspector{
		secret:         []byte(cfg.GetTokenSigningSecret()),
		revokedChecker: revokedChecker,
	}
}

// Introspect verifies the signature and reports whether the token is still usable.
// Expired and revoked tokens are inactive but not an error.
func (i *Inspector) Introspect(rawToken string) (*TokenIntrospection, error) {
	if strings.TrimSpace(rawToken) == "" {
		return &TokenIntrospection{Active: false}, nil
	}

	claims, err := i.parse(rawToken)
	if errors.Is(err, jwtlib.ErrTokenExpired) {
		return &TokenIntrospection{Active: false}, nil
	}
	if err != nil {
		return &TokenIntrospection{Active: false}, err
	}

	ti := &TokenIntrospection{Active: true}
	ti.Sub, _ = claims["sub"].(string)
	ti.Username, _ = claims["username"].(string)
	ti.IsManager, _ = claims["isManager"].(bool)
	ti.Jti, _ = claims["jti"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		ti.Exp = exp.Time
	}

	if ti.Jti != "" && i.revokedChecker != nil && i.revokedChecker.IsRevoked(ti.Jti) {
		ti.Active = false
	}
	return ti, nil
}

// ParseAndExtractJTI verifies the token and returns the values needed to revoke it
func (i *Inspector) ParseAndExtractJTI(rawToken string) (jti string, exp time.Time, err error) {
	claims, err := i.parse(rawToken)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid token: %w", err)
	}

	jtiClaim, ok := claims["jti"].(string)
	if !ok || jtiClaim == "" {
		return "", time.Time{}, errors.New("token missing jti claim")
	}

	expClaim, err := claims.GetExpirationTime()
	if err != nil || expClaim == nil {
		return "", time.Time{}, errors.New("token missing exp claim")
	}
	return jtiClaim, expClaim.Time, nil
}

func (i *Inspector) parse(rawToken string) (jwtlib.MapClaims, error) {
	token, err := jwtlib.Parse(rawToken, func(*jwtlib.Token) (any, error) {
		return i.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(NowTimeFunc),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwtlib.ErrTokenSignatureInvalid
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.New("error extracting claims from token")
	}
	return claims, nil
}
