package couriers

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Service is what the console pages call. Failures are logged and reported as empty
// lists, nil records or false.
type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Couriers(ctx context.Context) []Courier {
	list, err := s.repo.List(ctx)
	if err != nil {
		log.Err(err).Msg("Failed to load couriers")
		return []Courier{}
	}
	if list == nil {
		return []Courier{}
	}
	return list
}

func (s *Service) CreateCourier(ctx context.Context, username, password string, cities []string) *Courier {
	c, err := s.repo.Create(ctx, CreateInput{Username: username, Password: password, Cities: cities})
	if err != nil {
		log.Err(err).Str("username", username).Msg("Failed to create courier")
		return nil
	}
	return c
}

// UpdateCourier renames a courier. A nil cities keeps the current assignment.
func (s *Service) UpdateCourier(ctx context.Context, id, username string, cities *[]string) *Courier {
	c, err := s.repo.Update(ctx, id, UpdateInput{Username: username, Cities: cities})
	if err != nil {
		log.Err(err).Str("id", id).Msg("Failed to update courier")
		return nil
	}
	return c
}

// UpdateCourierWithPassword renames a courier and sets a new password when one is given.
func (s *Service) UpdateCourierWithPassword(ctx context.Context, id, username, password string) *Courier {
	c, err := s.repo.Update(ctx, id, UpdateInput{Username: username, Password: password})
	if err != nil {
		log.Err(err).Str("id", id).Msg("Failed to update courier")
		return nil
	}
	return c
}

func (s *Service) DeleteCourier(ctx context.Context, id string) bool {
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Err(err).Str("id", id).Msg("Failed to delete courier")
		return false
	}
	return true
}

func (s *Service) CourierCities(ctx context.Context, id string) []string {
	cities, err := s.repo.Cities(ctx, id)
	if err != nil {
		log.Err(err).Str("id", id).Msg("Failed to load courier cities")
		return []string{}
	}
	if cities == nil {
		return []string{}
	}
	return cities
}

func (s *Service) UpdateCourierCities(ctx context.Context, id string, cities []string) bool {
	if err := s.repo.UpdateCities(ctx, id, cities); err != nil {
		log.Err(err).Str("id", id).Msg("Failed to update courier cities")
		return false
	}
	return true
}

func (s *Service) AvailableCities(ctx context.Context) []string {
	cities, err := s.repo.AvailableCities(ctx)
	if err != nil {
		log.Err(err).Msg("Failed to load available cities")
		return []string{}
	}
	if cities == nil {
		return []string{}
	}
	return cities
}
