package images

import (
	"context"

	"github.com/rs/zerolog/log"
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Validate checks a file before it is uploaded.
func (s *Service) Validate(file File) error {
	_, err := Validate(file)
	return err
}

// Upload validates and stores the product image. ok is false when either step fails.
func (s *Service) Upload(ctx context.Context, productID string, file File) (url string, ok bool) {
	contentType, err := Validate(file)
	if err != nil {
		log.Err(err).Str("productId", productID).Msg("Rejected image upload")
		return "", false
	}
	url, err = s.store.Upload(ctx, productID, file, contentType)
	if err != nil {
		log.Err(err).Str("productId", productID).Msg("Failed to upload image")
		return "", false
	}
	return url, true
}

func (s *Service) URL(productID string) string {
	return s.store.URL(productID)
}

func (s *Service) Delete(ctx context.Context, productID string) bool {
	if err := s.store.Delete(ctx, productID); err != nil {
		log.Err(err).Str("productId", productID).Msg("Failed to delete image")
		return false
	}
	return true
}

func (s *Service) Fetch(ctx context.Context, productID string) (*Image, error) {
	return s.store.Fetch(ctx, productID)
}
