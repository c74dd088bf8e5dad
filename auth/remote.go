package auth

import (
	"context"
	"net/http"

	"github.com/jrsteele09/courier-admin/api"
	"github.com/jrsteele09/courier-admin/internal/errors"
	"github.com/jrsteele09/courier-admin/session"
)

var _ session.Authenticator = (*Remote)(nil)

// Remote signs in through the remote API's auth endpoints.
type Remote struct {
	client *api.Client
}

func NewRemote(client *api.Client) *Remote {
	return &Remote{client: client}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string           `json:"token"`
	User  session.Identity `json:"user"`
}

func (r *Remote) Login(ctx context.Context, username, password string) (string, error) {
	// Any bearer left over from an earlier session must not ride along on a login.
	ctx = api.WithBearer(ctx, "")
	res := api.Post[loginResponse](ctx, r.client, api.SystemAuth, api.PathLogin, loginRequest{Login: username, Password: password})
	if !res.Success {
		if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusBadRequest {
			return "", errors.Wrapf(errors.ErrInvalidCredentials, "[Remote.Login] %s", res.Error)
		}
		return "", errors.Wrapf(res.Err(), "[Remote.Login]")
	}
	if res.Data.Token == "" {
		return "", errors.Wrapf(errors.ErrInvalidToken, "[Remote.Login] response carried no token")
	}
	return res.Data.Token, nil
}

func (r *Remote) Logout(ctx context.Context, rawToken string) error {
	res := api.Post[api.Empty](api.WithBearer(ctx, rawToken), r.client, api.SystemAuth, api.PathLogout, nil)
	return errors.Wrapf(res.Err(), "[Remote.Logout]")
}

func (r *Remote) Me(ctx context.Context, rawToken string) (session.Identity, error) {
	res := api.Get[session.Identity](api.WithBearer(ctx, rawToken), r.client, api.SystemAuth, api.PathMe)
	if !res.Success {
		if res.StatusCode == http.StatusUnauthorized {
			return session.Identity{}, errors.Wrapf(errors.ErrNotAuthenticated, "[Remote.Me] %s", res.Error)
		}
		return session.Identity{}, errors.Wrapf(res.Err(), "[Remote.Me]")
	}
	return res.Data, nil
}
