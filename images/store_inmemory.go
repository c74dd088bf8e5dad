package images

import (
	"context"
	"slices"
	"sync"

	"github.com/jrsteele09/courier-admin/api"
	"github.com/jrsteele09/courier-admin/internal/errors"
)

var _ Store = (*InMemoryStore)(nil)

// InMemoryStore keeps images in memory; the console serves them itself under /images/{id}.
type InMemoryStore struct {
	lock   sync.RWMutex
	images map[string]*Image
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{images: make(map[string]*Image)}
}

func (s *InMemoryStore) Upload(_ context.Context, productID string, file File, contentType string) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.images[productID] = &Image{ProductID: productID, ContentType: contentType, Data: slices.Clone(file.Data)}
	return s.URL(productID), nil
}

func (s *InMemoryStore) URL(productID string) string {
	return api.ImagePath(productID)
}

func (s *InMemoryStore) Delete(_ context.Context, productID string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.images[productID]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "[images InMemoryStore.Delete] product %s", productID)
	}
	delete(s.images, productID)
	return nil
}

func (s *InMemoryStore) Fetch(_ context.Context, productID string) (*Image, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	img, ok := s.images[productID]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "[images InMemoryStore.Fetch] product %s", productID)
	}
	out := *img
	return &out, nil
}
