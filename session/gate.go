package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/courier-admin/internal/errors"
	"github.com/rs/zerolog/log"
)

// State is where the gate sits in its lifecycle.
type State string

const (
	StateLoading         State = "loading"
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
)

// Authenticator exchanges credentials for a bearer token with whoever issues them.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (token string, err error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, token string) (Identity, error)
}

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Gate owns the one logical session of the console.
type Gate struct {
	mu    sync.RWMutex
	state State
	cred  Credential
	store Store
	auth  Authenticator
}

func NewGate(store Store, auth Authenticator) *Gate {
	return &Gate{
		state: StateLoading,
		store: store,
		auth:  auth,
	}
}

// Restore reads the persisted credential. The stored claims are not trusted; they are
// decoded again from the token. Expired or unreadable sessions are cleared.
func (g *Gate) Restore(_ context.Context) State {
	g.mu.Lock()
	defer g.mu.Unlock()

	cred, err := g.store.Load()
	if err != nil {
		if !errors.Is(err, errors.ErrSessionNotFound) {
			log.Err(err).Msg("Failed to read stored session")
		}
		g.setUnauthenticated()
		return g.state
	}

	claims, err := DecodeClaims(cred.Token.AccessToken)
	if err != nil || claims.Expired(NowTimeFunc()) {
		log.Info().Msg("Stored session is no longer valid")
		g.clearStore()
		g.setUnauthenticated()
		return g.state
	}

	g.cred = NewCredential(cred.Token.AccessToken, claims)
	g.state = StateAuthenticated
	log.Info().Str("user", claims.Username).Bool("manager", claims.IsManager).Msg("Session restored")
	return g.state
}

// Login exchanges credentials for a token and persists it. Role and identity come
// only from the token's claims.
func (g *Gate) Login(ctx context.Context, username, password string) (Claims, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Claims{}, errors.ErrInvalidCredentials
	}

	token, err := g.auth.Login(ctx, username, password)
	if err != nil {
		return Claims{}, errors.Wrapf(err, "[session Gate.Login]")
	}

	claims, err := DecodeClaims(token)
	if err != nil {
		return Claims{}, errors.Wrapf(err, "[session Gate.Login]")
	}
	if claims.Expired(NowTimeFunc()) {
		return Claims{}, errors.ErrTokenExpired
	}

	cred := NewCredential(token, claims)

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.Save(cred); err != nil {
		return Claims{}, errors.Wrapf(err, "[session Gate.Login] persist session")
	}
	g.cred = cred
	g.state = StateAuthenticated
	log.Info().Str("user", claims.Username).Bool("manager", claims.IsManager).Msg("Signed in")
	return claims, nil
}

// Logout ends the session locally right away. The remote logout is best effort.
func (g *Gate) Logout(ctx context.Context) {
	g.mu.Lock()
	token := g.cred.Token.AccessToken
	g.clearStore()
	g.setUnauthenticated()
	g.mu.Unlock()

	if token == "" {
		return
	}
	if err := g.auth.Logout(ctx, token); err != nil {
		log.Err(err).Msg("Logout: remote logout failed")
	}
}

func (g *Gate) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Current returns the signed-in claims. A session whose token has expired is ended
// and reported as absent.
func (g *Gate) Current() (Claims, bool) {
	g.mu.RLock()
	state, claims := g.state, g.cred.Claims
	g.mu.RUnlock()

	if state != StateAuthenticated {
		return Claims{}, false
	}
	if claims.Expired(NowTimeFunc()) {
		g.mu.Lock()
		if g.state == StateAuthenticated && g.cred.Claims == claims {
			log.Info().Str("user", claims.Username).Msg("Session expired")
			g.clearStore()
			g.setUnauthenticated()
		}
		g.mu.Unlock()
		return Claims{}, false
	}
	return claims, true
}

// WhoAmI asks the token issuer who the current session belongs to.
func (g *Gate) WhoAmI(ctx context.Context) (Identity, error) {
	if _, ok := g.Current(); !ok {
		return Identity{}, errors.ErrNotAuthenticated
	}
	g.mu.RLock()
	token := g.cred.Token.AccessToken
	g.mu.RUnlock()
	return g.auth.Me(ctx, token)
}

func (g *Gate) setUnauthenticated() {
	g.cred = Credential{}
	g.state = StateUnauthenticated
}

func (g *Gate) clearStore() {
	if err := g.store.Clear(); err != nil {
		log.Err(err).Msg("Failed to clear stored session")
	}
}
