package couriers

import (
	"context"

	"github.com/jrsteele09/courier-admin/api"
	"github.com/jrsteele09/courier-admin/internal/errors"
)

var _ Repo = (*RemoteRepo)(nil)

// RemoteRepo reads and writes couriers through the remote API.
type RemoteRepo struct {
	client *api.Client
}

func NewRemoteRepo(client *api.Client) *RemoteRepo {
	return &RemoteRepo{client: client}
}

type citiesPayload struct {
	Cities []string `json:"cities"`
}

func (r *RemoteRepo) List(ctx context.Context) ([]Courier, error) {
	res := api.List[Courier](ctx, r.client, api.SystemCouriers, api.PathCouriers)
	if err := res.Err(); err != nil {
		return nil, errors.Wrapf(err, "[couriers RemoteRepo.List]")
	}
	return res.Data, nil
}

func (r *RemoteRepo) Create(ctx context.Context, input CreateInput) (*Courier, error) {
	res := api.Post[Courier](ctx, r.client, api.SystemCouriers, api.PathCouriers, input)
	if err := res.Err(); err != nil {
		return nil, errors.Wrapf(err, "[couriers RemoteRepo.Create]")
	}
	return &res.Data, nil
}

func (r *RemoteRepo) Update(ctx context.Context, id string, input UpdateInput) (*Courier, error) {
	res := api.Put[Courier](ctx, r.client, api.SystemCouriers, api.CourierPath(id), input)
	if err := res.Err(); err != nil {
		return nil, errors.Wrapf(err, "[couriers RemoteRepo.Update] courier %s", id)
	}
	return &res.Data, nil
}

func (r *RemoteRepo) Delete(ctx context.Context, id string) error {
	res := api.Delete[api.Empty](ctx, r.client, api.SystemCouriers, api.CourierPath(id))
	return errors.Wrapf(res.Err(), "[couriers RemoteRepo.Delete] courier %s", id)
}

func (r *RemoteRepo) Cities(ctx context.Context, id string) ([]string, error) {
	res := api.List[string](ctx, r.client, api.SystemCouriers, api.CourierCitiesPath(id))
	if err := res.Err(); err != nil {
		return nil, errors.Wrapf(err, "[couriers RemoteRepo.Cities] courier %s", id)
	}
	return res.Data, nil
}

func (r *RemoteRepo) UpdateCities(ctx context.Context, id string, cities []string) error {
	if cities == nil {
		cities = []string{}
	}
	res := api.Put[api.Empty](ctx, r.client, api.SystemCouriers, api.CourierCitiesPath(id), citiesPayload{Cities: cities})
	return errors.Wrapf(res.Err(), "[couriers RemoteRepo.UpdateCities] courier %s", id)
}

func (r *RemoteRepo) AvailableCities(ctx context.Context) ([]string, error) {
	res := api.List[string](ctx, r.client, api.SystemReferences, api.PathReferenceCities)
	if err := res.Err(); err != nil {
		return nil, errors.Wrapf(err, "[couriers RemoteRepo.AvailableCities]")
	}
	return res.Data, nil
}
