package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/courier-admin/internal/errors"
	"github.com/jrsteele09/courier-admin/session"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

func managerToken(t *testing.T, exp time.Time) string {
	return signToken(t, jwtlib.MapClaims{"sub": "1", "username": "manager", "isManager": true, "exp": exp.Unix()})
}

func courierToken(t *testing.T, exp time.Time) string {
	return signToken(t, jwtlib.MapClaims{"sub": "2", "username": "courier1", "isManager": false, "exp": exp.Unix()})
}

type fakeAuthenticator struct {
	tokens    map[string]string // username+password -> token
	loggedOut []string
	logoutErr error
	me        session.Identity
}

func (f *fakeAuthenticator) Login(_ context.Context, username, password string) (string, error) {
	tok, ok := f.tokens[username+":"+password]
	if !ok {
		return "", errors.ErrInvalidCredentials
	}
	return tok, nil
}

func (f *fakeAuthenticator) Logout(_ context.Context, token string) error {
	f.loggedOut = append(f.loggedOut, token)
	return f.logoutErr
}

func (f *fakeAuthenticator) Me(_ context.Context, _ string) (session.Identity, error) {
	return f.me, nil
}

func TestDecodeClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	tests := []struct {
		name    string
		claims  jwtlib.MapClaims
		manager bool
		user    string
	}{
		{name: "isManager flag", claims: jwtlib.MapClaims{"sub": "1", "username": "boss", "isManager": true}, manager: true, user: "boss"},
		{name: "role string", claims: jwtlib.MapClaims{"sub": "1", "login": "boss", "role": "Manager"}, manager: true, user: "boss"},
		{name: "roles array", claims: jwtlib.MapClaims{"id": "1", "name": "boss", "roles": []any{"courier", "manager"}}, manager: true, user: "boss"},
		{name: "courier", claims: jwtlib.MapClaims{"sub": "2", "username": "c1", "role": "courier"}, manager: false, user: "c1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.claims["exp"] = exp.Unix()
			c, err := session.DecodeClaims(signToken(t, tt.claims))
			require.NoError(t, err)
			require.Equal(t, tt.manager, c.IsManager)
			require.Equal(t, tt.user, c.Username)
			require.True(t, exp.Equal(c.ExpiresAt))
		})
	}
}

func TestDecodeClaimsRejectsBadTokens(t *testing.T) {
	_, err := session.DecodeClaims("")
	require.ErrorIs(t, err, errors.ErrInvalidToken)

	_, err = session.DecodeClaims("not.a.jwt")
	require.ErrorIs(t, err, errors.ErrInvalidToken)

	_, err = session.DecodeClaims(signToken(t, jwtlib.MapClaims{"username": "nobody"}))
	require.ErrorIs(t, err, errors.ErrInvalidToken)
}

func TestClaimsExpired(t *testing.T) {
	now := time.Now()
	require.False(t, session.Claims{}.Expired(now))
	require.True(t, session.Claims{ExpiresAt: now.Add(-time.Second)}.Expired(now))
	require.False(t, session.Claims{ExpiresAt: now.Add(time.Minute)}.Expired(now))
}

func TestGateRestore(t *testing.T) {
	t.Run("nothing stored", func(t *testing.T) {
		g := session.NewGate(session.NewInMemoryStore(), &fakeAuthenticator{})
		require.Equal(t, session.StateLoading, g.State())
		require.Equal(t, session.StateUnauthenticated, g.Restore(context.Background()))
	})

	t.Run("valid session", func(t *testing.T) {
		store := session.NewInMemoryStore()
		tok := managerToken(t, time.Now().Add(time.Hour))
		// Stored claims are ignored in favour of the token payload
		require.NoError(t, store.Save(session.NewCredential(tok, session.Claims{Subject: "1", IsManager: false})))

		g := session.NewGate(store, &fakeAuthenticator{})
		require.Equal(t, session.StateAuthenticated, g.Restore(context.Background()))
		c, ok := g.Current()
		require.True(t, ok)
		require.True(t, c.IsManager)
		require.Equal(t, "manager", c.Username)
	})

	t.Run("expired session is cleared", func(t *testing.T) {
		store := session.NewInMemoryStore()
		tok := managerToken(t, time.Now().Add(-time.Hour))
		require.NoError(t, store.Save(session.NewCredential(tok, session.Claims{Subject: "1"})))

		g := session.NewGate(store, &fakeAuthenticator{})
		require.Equal(t, session.StateUnauthenticated, g.Restore(context.Background()))
		_, err := store.Load()
		require.ErrorIs(t, err, errors.ErrSessionNotFound)
	})
}

func TestGateLoginLogout(t *testing.T) {
	tok := courierToken(t, time.Now().Add(time.Hour))
	auth := &fakeAuthenticator{tokens: map[string]string{"courier1:courier123": tok}}
	store := session.NewInMemoryStore()
	g := session.NewGate(store, auth)
	g.Restore(context.Background())

	_, err := g.Login(context.Background(), "  ", "x")
	require.ErrorIs(t, err, errors.ErrInvalidCredentials)

	_, err = g.Login(context.Background(), "courier1", "wrong")
	require.ErrorIs(t, err, errors.ErrInvalidCredentials)
	require.Equal(t, session.StateUnauthenticated, g.State())

	claims, err := g.Login(context.Background(), " courier1 ", "courier123")
	require.NoError(t, err)
	require.Equal(t, "2", claims.Subject)
	require.False(t, claims.IsManager)
	require.Equal(t, session.StateAuthenticated, g.State())

	cred, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, tok, cred.Token.AccessToken)
	require.Equal(t, "Bearer", cred.Token.TokenType)

	g.Logout(context.Background())
	require.Equal(t, session.StateUnauthenticated, g.State())
	_, err = store.Load()
	require.ErrorIs(t, err, errors.ErrSessionNotFound)
	require.Equal(t, []string{tok}, auth.loggedOut)
}

func TestGateLogoutIsLocalEvenWhenRemoteFails(t *testing.T) {
	tok := managerToken(t, time.Now().Add(time.Hour))
	auth := &fakeAuthenticator{tokens: map[string]string{"manager:pw": tok}, logoutErr: errors.ErrRemote}
	g := session.NewGate(session.NewInMemoryStore(), auth)

	_, err := g.Login(context.Background(), "manager", "pw")
	require.NoError(t, err)
	g.Logout(context.Background())
	_, ok := g.Current()
	require.False(t, ok)
}

func TestGateLoginRejectsExpiredToken(t *testing.T) {
	tok := managerToken(t, time.Now().Add(-time.Minute))
	g := session.NewGate(session.NewInMemoryStore(), &fakeAuthenticator{tokens: map[string]string{"manager:pw": tok}})
	_, err := g.Login(context.Background(), "manager", "pw")
	require.ErrorIs(t, err, errors.ErrTokenExpired)
	require.NotEqual(t, session.StateAuthenticated, g.State())
}

func TestGateCurrentEndsExpiredSession(t *testing.T) {
	orig := session.NowTimeFunc
	defer func() { session.NowTimeFunc = orig }()

	now := time.Now()
	session.NowTimeFunc = func() time.Time { return now }

	tok := managerToken(t, now.Add(time.Minute))
	store := session.NewInMemoryStore()
	g := session.NewGate(store, &fakeAuthenticator{tokens: map[string]string{"manager:pw": tok}})
	_, err := g.Login(context.Background(), "manager", "pw")
	require.NoError(t, err)

	session.NowTimeFunc = func() time.Time { return now.Add(2 * time.Minute) }
	_, ok := g.Current()
	require.False(t, ok)
	require.Equal(t, session.StateUnauthenticated, g.State())
	_, err = store.Load()
	require.ErrorIs(t, err, errors.ErrSessionNotFound)
}

func TestGateWhoAmI(t *testing.T) {
	tok := managerToken(t, time.Now().Add(time.Hour))
	auth := &fakeAuthenticator{
		tokens: map[string]string{"manager:pw": tok},
		me:     session.Identity{ID: "1", Username: "manager", IsManager: true},
	}
	g := session.NewGate(session.NewInMemoryStore(), auth)

	_, err := g.WhoAmI(context.Background())
	require.ErrorIs(t, err, errors.ErrNotAuthenticated)

	_, err = g.Login(context.Background(), "manager", "pw")
	require.NoError(t, err)
	id, err := g.WhoAmI(context.Background())
	require.NoError(t, err)
	require.Equal(t, auth.me, id)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := session.NewFileStore(path)

	_, err := store.Load()
	require.ErrorIs(t, err, errors.ErrSessionNotFound)

	claims := session.Claims{Subject: "2", Username: "courier1", ExpiresAt: time.Now().Add(time.Hour).Truncate(time.Second)}
	require.NoError(t, store.Save(session.NewCredential("tok", claims)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// A fresh store over the same file sees the credential, as after a restart
	cred, err := session.NewFileStore(path).Load()
	require.NoError(t, err)
	require.Equal(t, "tok", cred.Token.AccessToken)
	require.Equal(t, "courier1", cred.Claims.Username)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	_, err = store.Load()
	require.ErrorIs(t, err, errors.ErrSessionNotFound)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))
	_, err := session.NewFileStore(path).Load()
	require.ErrorIs(t, err, errors.ErrSessionNotFound)
}

func TestTokenSource(t *testing.T) {
	store := session.NewInMemoryStore()
	ts := session.NewTokenSource(store)

	_, err := ts.Token()
	require.Error(t, err)

	require.NoError(t, store.Save(session.NewCredential("abc", session.Claims{Subject: "1"})))
	tok, err := ts.Token()
	require.NoError(t, err)
	require.Equal(t, "abc", tok.AccessToken)
}

func TestRoles(t *testing.T) {
	manager := session.Claims{Subject: "1", IsManager: true}
	courier := session.Claims{Subject: "2"}

	require.True(t, session.Allowed(manager, session.PageCouriers))
	require.False(t, session.Allowed(manager, session.PageCities))
	require.True(t, session.Allowed(courier, session.PageCities))
	require.True(t, session.Allowed(courier, session.PageProducts))
	require.False(t, session.Allowed(courier, session.PageCategories))

	require.Equal(t, session.PageCategories, session.ResolvePage(manager, ""))
	require.Equal(t, session.PageCities, session.ResolvePage(manager, session.PageCities), "managers keep the requested page")
	require.Equal(t, session.PageProducts, session.ResolvePage(courier, session.PageCouriers))
	require.Equal(t, session.PageCities, session.ResolvePage(courier, session.PageCities))
	require.Equal(t, session.PageProducts, session.ResolvePage(courier, ""))

	require.Len(t, session.Menu(manager), 4)
	require.Len(t, session.Menu(courier), 2)
	require.Equal(t, "Manager", session.RoleLabel(manager))
	require.Equal(t, "Courier", session.RoleLabel(courier))
}
