package catalog

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

func orEmpty[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

func (s *Service) Categories(ctx context.Context) []Category {
	list, err := s.repo.Categories(ctx)
	if err != nil {
		log.Err(err).Msg("Failed to load categories")
		return []Category{}
	}
	return orEmpty(list)
}

func (s *Service) CreateCategory(ctx context.Context, name string) *Category {
	c, err := s.repo.CreateCategory(ctx, name)
	if err != nil {
		log.Err(err).Str("name", name).Msg("Failed to create category")
		return nil
	}
	return c
}

func (s *Service) UpdateCategory(ctx context.Context, id, name string) *Category {
	c, err := s.repo.UpdateCategory(ctx, id, name)
	if err != nil {
		log.Err(err).Str("id", id).Msg("Failed to update category")
		return nil
	}
	return c
}

func (s *Service) DeleteCategory(ctx context.Context, id string) bool {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		log.Err(err).Str("id", id).Msg("Failed to delete category")
		return false
	}
	return true
}

func (s *Service) Subcategories(ctx context.Context) []Subcategory {
	list, err := s.repo.Subcategories(ctx)
	if err != nil {
		log.Err(err).Msg("Failed to load subcategories")
		return []Subcategory{}
	}
	return orEmpty(list)
}

func (s *Service) CreateSubcategory(ctx context.Context, name, categoryID string) *Subcategory {
	sc, err := s.repo.CreateSubcategory(ctx, name, categoryID)
	if err != nil {
		log.Err(err).Str("name", name).Str("categoryId", categoryID).Msg("Failed to create subcategory")
		return nil
	}
	return sc
}

func (s *Service) UpdateSubcategory(ctx context.Context, id, name, categoryID string) *Subcategory {
	sc, err := s.repo.UpdateSubcategory(ctx, id, name, categoryID)
	if err != nil {
		log.Err(err).Str("id", id).Msg("Failed to update subcategory")
		return nil
	}
	return sc
}

func (s *Service) DeleteSubcategory(ctx context.Context, id string) bool {
	if err := s.repo.DeleteSubcategory(ctx, id); err != nil {
		log.Err(err).Str("id", id).Msg("Failed to delete subcategory")
		return false
	}
	return true
}

func (s *Service) Products(ctx context.Context) []Product {
	list, err := s.repo.Products(ctx)
	if err != nil {
		log.Err(err).Msg("Failed to load products")
		return []Product{}
	}
	return orEmpty(list)
}

func (s *Service) ProductsForCourier(ctx context.Context, courierID string) []Product {
	list, err := s.repo.ProductsForCourier(ctx, courierID)
	if err != nil {
		log.Err(err).Str("courierId", courierID).Msg("Failed to load courier products")
		return []Product{}
	}
	return orEmpty(list)
}

func (s *Service) CreateProduct(ctx context.Context, input ProductInput) *Product {
	p, err := s.repo.CreateProduct(ctx, input)
	if err != nil {
		log.Err(err).Str("name", input.Name).Msg("Failed to create product")
		return nil
	}
	return p
}

// UpdateProduct saves the product. A nil input.ImageURL keeps the current image.
func (s *Service) UpdateProduct(ctx context.Context, id string, input ProductInput) *Product {
	p, err := s.repo.UpdateProduct(ctx, id, input)
	if err != nil {
		log.Err(err).Str("id", id).Msg("Failed to update product")
		return nil
	}
	return p
}

func (s *Service) DeleteProduct(ctx context.Context, id string) bool {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		log.Err(err).Str("id", id).Msg("Failed to delete product")
		return false
	}
	return true
}

func (s *Service) UpdateCourierQuantity(ctx context.Context, productID string, stock CourierStock) bool {
	if err := s.repo.UpdateCourierQuantity(ctx, productID, stock); err != nil {
		log.Err(err).Str("productId", productID).Str("courierId", stock.ID).Msg("Failed to update courier quantity")
		return false
	}
	return true
}
