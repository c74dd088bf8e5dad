package images

import (
	"bytes"
	"context"

	"github.com/jrsteele09/courier-admin/api"
	"github.com/jrsteele09/courier-admin/internal/errors"
)

var _ Store = (*RemoteStore)(nil)

// RemoteStore keeps images on the remote API's image endpoints.
type RemoteStore struct {
	client *api.Client
}

func NewRemoteStore(client *api.Client) *RemoteStore {
	return &RemoteStore{client: client}
}

type uploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

func (s *RemoteStore) Upload(ctx context.Context, productID string, file File, contentType string) (string, error) {
	res := api.Upload[uploadResponse](ctx, s.client, api.SystemImages, api.ImagePath(productID), api.File{
		Name:        file.Name,
		ContentType: contentType,
		Content:     bytes.NewReader(file.Data),
	})
	if err := res.Err(); err != nil {
		return "", errors.Wrapf(err, "[images RemoteStore.Upload] product %s", productID)
	}
	if res.Data.ImageURL == "" {
		return s.URL(productID), nil
	}
	return res.Data.ImageURL, nil
}

func (s *RemoteStore) URL(productID string) string {
	return s.client.URL(api.SystemImages, api.ImagePath(productID))
}

func (s *RemoteStore) Delete(ctx context.Context, productID string) error {
	res := api.Delete[api.Empty](ctx, s.client, api.SystemImages, api.ImagePath(productID))
	return errors.Wrapf(res.Err(), "[images RemoteStore.Delete] product %s", productID)
}

// Fetch is not served locally; browsers load remote images from URL directly.
func (s *RemoteStore) Fetch(_ context.Context, productID string) (*Image, error) {
	return nil, errors.Wrapf(errors.ErrUnsupported, "[images RemoteStore.Fetch] product %s", productID)
}
