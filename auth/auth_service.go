package auth

import (
	"context"
	"strings"
	"time"

	"github.com/jrsteele09/courier-admin/couriers"
	"github.com/jrsteele09/courier-admin/internal/config"
	"github.com/jrsteele09/courier-admin/internal/errors"
	"github.com/jrsteele09/courier-admin/session"
	"github.com/jrsteele09/courier-admin/token"
	"github.com/jrsteele09/courier-admin/token/jwt"
	"github.com/jrsteele09/courier-admin/users"
	"github.com/rs/zerolog/log"
)

// CourierVerifier checks courier credentials.
type CourierVerifier interface {
	VerifyPassword(ctx context.Context, username, password string) (*couriers.Courier, error)
}

// Repos holds the account stores the in-memory authenticator checks, managers first.
type Repos struct {
	Users    users.UserRepo
	Couriers CourierVerifier
}

var _ session.Authenticator = (*InMemory)(nil)

// InMemory signs users in against local accounts and issues its own HS256 tokens.
// It stands in for the remote API's auth endpoints when the console runs on demo data.
type InMemory struct {
	repos     Repos
	creator   *jwt.Creator
	inspector *jwt.Inspector
	signedOut token.SignedOutList
	nowTime   func() time.Time
}

// InMemoryOption defines a function type to modify the InMemory instance.
type InMemoryOption func(*InMemory)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) InMemoryOption {
	return func(a *InMemory) {
		a.nowTime = nowFunc
	}
}

// WithSignedOutList replaces the default in-memory list of signed-out tokens
func WithSignedOutList(list token.SignedOutList) InMemoryOption {
	return func(a *InMemory) {
		a.signedOut = list
	}
}

func NewInMemory(repos Repos, cfg config.SecurityConfig, options ...InMemoryOption) (*InMemory, error) {
	if repos.Users == nil {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "[NewInMemory] Users repo is required")
	}
	if cfg.GetTokenSigningSecret() == "" {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "[NewInMemory] token signing secret is required")
	}

	a := &InMemory{
		repos:     repos,
		creator:   jwt.NewCreator(cfg),
		signedOut: token.NewInMemorySignedOutList(),
		nowTime:   time.Now,
	}
	for _, opt := range options {
		opt(a)
	}
	a.inspector = jwt.NewInspector(cfg, a.signedOut)
	return a, nil
}

// Login checks manager accounts first, then couriers. Every failure is reported as
// invalid credentials.
func (a *InMemory) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)

	id, err := a.authenticate(ctx, username, password)
	if err != nil {
		log.Debug().Err(err).Str("username", username).Msg("Login rejected")
		return "", errors.ErrInvalidCredentials
	}

	signed, err := a.creator.CreateAccessToken(id)
	if err != nil {
		return "", errors.Wrapf(err, "[InMemory.Login] create access token")
	}
	return *signed, nil
}

func (a *InMemory) authenticate(ctx context.Context, username, password string) (session.Identity, error) {
	user, err := a.repos.Users.GetByUsername(username)
	if err == nil {
		if user.Blocked {
			return session.Identity{}, UserBlockedErr
		}
		if !user.CheckPassword(password) {
			return session.Identity{}, errors.ErrInvalidCredentials
		}
		if err := a.repos.Users.SetLastLogin(user.Username, a.nowTime()); err != nil {
			log.Err(err).Str("username", user.Username).Msg("Failed to record last login")
		}
		return session.Identity{ID: user.ID, Username: user.Username, IsManager: user.IsManager()}, nil
	}
	if !errors.Is(err, errors.ErrNotFound) {
		return session.Identity{}, err
	}

	if a.repos.Couriers == nil {
		return session.Identity{}, errors.ErrInvalidCredentials
	}
	c, err := a.repos.Couriers.VerifyPassword(ctx, username, password)
	if err != nil {
		return session.Identity{}, err
	}
	return session.Identity{ID: c.ID, Username: c.Username, IsManager: false}, nil
}

// Logout revokes the token until it would have expired.
func (a *InMemory) Logout(_ context.Context, rawToken string) error {
	jti, exp, err := a.inspector.ParseAndExtractJTI(rawToken)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidToken, "[InMemory.Logout] %s", err.Error())
	}
	if n := a.signedOut.Prune(a.nowTime()); n > 0 {
		log.Debug().Int("pruned", n).Msg("Dropped expired signed-out tokens")
	}
	a.signedOut.SignOut(jti, exp)
	return nil
}

// Me reports who an active token belongs to.
func (a *InMemory) Me(_ context.Context, rawToken string) (session.Identity, error) {
	ti, err := a.inspector.Introspect(rawToken)
	if err != nil {
		return session.Identity{}, errors.Wrapf(errors.ErrInvalidToken, "[InMemory.Me] %s", err.Error())
	}
	if !ti.Active {
		return session.Identity{}, errors.ErrNotAuthenticated
	}
	return session.Identity{ID: ti.Sub, Username: ti.Username, IsManager: ti.IsManager}, nil
}
