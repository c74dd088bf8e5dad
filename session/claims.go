package session

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/courier-admin/internal/errors"
	"github.com/jrsteele09/courier-admin/internal/utils"
)

const roleManager = "manager"

// Identity is who the remote API says the signed-in user is.
type Identity struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	IsManager bool   `json:"isManager"`
}

// Claims are the identity and role fields carried inside an issued token.
type Claims struct {
	Subject   string    `json:"sub"`
	Username  string    `json:"username"`
	IsManager bool      `json:"isManager"`
	ExpiresAt time.Time `json:"exp,omitempty"`
}

func (c Claims) Identity() Identity {
	return Identity{ID: c.Subject, Username: c.Username, IsManager: c.IsManager}
}

// Expired reports whether the claims carry an expiry that has passed. No expiry never expires.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// DecodeClaims reads the payload of a JWT without verifying its signature.
// The remote API verifies every token it receives; the console only needs the
// role and identity to decide what to show.
func DecodeClaims(rawToken string) (Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return Claims{}, errors.ErrInvalidToken
	}

	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return Claims{}, errors.Wrapf(errors.ErrInvalidToken, "[session DecodeClaims] %s", err.Error())
	}

	mc, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return Claims{}, errors.Wrapf(errors.ErrInvalidToken, "[session DecodeClaims] error extracting claims")
	}

	claims := Claims{
		Subject:   firstString(mc, "sub", "id", "userId"),
		Username:  firstString(mc, "username", "login", "name"),
		IsManager: isManager(mc),
	}
	if claims.Subject == "" {
		return Claims{}, errors.Wrapf(errors.ErrInvalidToken, "[session DecodeClaims] missing subject")
	}

	exp, err := mc.GetExpirationTime()
	if err != nil {
		return Claims{}, errors.Wrapf(errors.ErrInvalidToken, "[session DecodeClaims] exp: %s", err.Error())
	}
	if exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

func firstString(mc jwtlib.MapClaims, keys ...string) string {
	for _, k := range keys {
		if s, ok := mc[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func isManager(mc jwtlib.MapClaims) bool {
	if b, ok := mc["isManager"].(bool); ok {
		return b
	}
	if role, ok := mc["role"].(string); ok {
		return strings.EqualFold(role, roleManager)
	}
	if roles, ok := mc["roles"].([]any); ok {
		for _, r := range utils.ToStringSlice(roles) {
			if strings.EqualFold(r, roleManager) {
				return true
			}
		}
	}
	return false
}
