package session

import (
	"github.com/jrsteele09/courier-admin/internal/errors"
	"golang.org/x/oauth2"
)

// Credential is the persisted session: the bearer token and the claims decoded from it.
type Credential struct {
	Token  oauth2.Token `json:"token"`
	Claims Claims       `json:"claims"`
}

// NewCredential wraps a raw bearer token together with its decoded claims.
func NewCredential(rawToken string, claims Claims) Credential {
	return Credential{
		Token: oauth2.Token{
			AccessToken: rawToken,
			TokenType:   "Bearer",
			Expiry:      claims.ExpiresAt,
		},
		Claims: claims,
	}
}

// Store is the single place the signed-in credential lives.
// Load returns errors.ErrSessionNotFound when nothing is stored.
type Store interface {
	Load() (Credential, error)
	Save(cred Credential) error
	Clear() error
}

type storeTokenSource struct {
	store Store
}

// NewTokenSource exposes the stored bearer token to the API layer. Expiry is not
// checked here; the remote API rejects expired tokens itself.
func NewTokenSource(store Store) oauth2.TokenSource {
	return storeTokenSource{store: store}
}

func (s storeTokenSource) Token() (*oauth2.Token, error) {
	cred, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	if cred.Token.AccessToken == "" {
		return nil, errors.ErrSessionNotFound
	}
	tok := cred.Token
	return &tok, nil
}
