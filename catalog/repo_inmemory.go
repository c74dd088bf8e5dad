package catalog

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/courier-admin/internal/errors"
	"github.com/jrsteele09/courier-admin/internal/utils"
)

type storedCategory struct {
	id, name string
}

type storedSubcategory struct {
	id, name, categoryID string
}

type storedProduct struct {
	id, name, subcategoryID string
	price                   float64
	imageURL                string
	perCourier              []CourierStock
}

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo keeps the catalog in process memory. Counts, parent names and stock
// totals are derived on every read so they can never drift.
type InMemoryRepo struct {
	lock          sync.RWMutex
	categories    []*storedCategory
	subcategories []*storedSubcategory
	products      []*storedProduct
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{}
}

func (r *InMemoryRepo) category(id string) *storedCategory {
	for _, c := range r.categories {
		if c.id == id {
			return c
		}
	}
	return nil
}

func (r *InMemoryRepo) subcategory(id string) *storedSubcategory {
	for _, s := range r.subcategories {
		if s.id == id {
			return s
		}
	}
	return nil
}

func (r *InMemoryRepo) product(id string) *storedProduct {
	for _, p := range r.products {
		if p.id == id {
			return p
		}
	}
	return nil
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.Wrapf(errors.ErrInvalidRequest, "name is required")
	}
	return name, nil
}

// Categories

func (r *InMemoryRepo) Categories(_ context.Context) ([]Category, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := make([]Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, r.categoryView(c))
	}
	return out, nil
}

func (r *InMemoryRepo) categoryView(c *storedCategory) Category {
	count := 0
	for _, s := range r.subcategories {
		if s.categoryID == c.id {
			count++
		}
	}
	return Category{ID: c.id, Name: c.name, SubcategoriesCount: count}
}

func (r *InMemoryRepo) CreateCategory(_ context.Context, name string) (*Category, error) {
	name, err := validName(name)
	if err != nil {
		return nil, errors.Wrapf(err, "[catalog InMemoryRepo.CreateCategory]")
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	c := &storedCategory{id: uuid.New().String(), name: name}
	r.categories = append(r.categories, c)
	out := r.categoryView(c)
	return &out, nil
}

func (r *InMemoryRepo) UpdateCategory(_ context.Context, id, name string) (*Category, error) {
	name, err := validName(name)
	if err != nil {
		return nil, errors.Wrapf(err, "[catalog InMemoryRepo.UpdateCategory]")
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	c := r.category(id)
	if c == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "[catalog InMemoryRepo.UpdateCategory] category %s", id)
	}
	c.name = name
	out := r.categoryView(c)
	return &out, nil
}

// DeleteCategory removes the category, its subcategories and their products.
func (r *InMemoryRepo) DeleteCategory(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.category(id) == nil {
		return errors.Wrapf(errors.ErrNotFound, "[catalog InMemoryRepo.DeleteCategory] category %s", id)
	}

	removed := map[string]bool{}
	for _, s := range r.subcategories {
		if s.categoryID == id {
			removed[s.id] = true
		}
	}
	r.products = slices.DeleteFunc(r.products, func(p *storedProduct) bool { return removed[p.subcategoryID] })
	r.subcategories = slices.DeleteFunc(r.subcategories, func(s *storedSubcategory) bool { return removed[s.id] })
	r.categories = slices.DeleteFunc(r.categories, func(c *storedCategory) bool { return c.id == id })
	return nil
}

// Subcategories

func (r *InMemoryRepo) Subcategories(_ context.Context) ([]Subcategory, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := make([]Subcategory, 0, len(r.subcategories))
	for _, s := range r.subcategories {
		out = append(out, r.subcategoryView(s))
	}
	return out, nil
}

func (r *InMemoryRepo) subcategoryView(s *storedSubcategory) Subcategory {
	count := 0
	for _, p := range r.products {
		if p.subcategoryID == s.id {
			count++
		}
	}
	view := Subcategory{ID: s.id, Name: s.name, ProductCount: count, Category: Ref{ID: s.categoryID}}
	if c := r.category(s.categoryID); c != nil {
		view.Category.Name = c.name
	}
	return view
}

func (r *InMemoryRepo) CreateSubcategory(_ context.Context, name, categoryID string) (*Subcategory, error) {
	name, err := validName(name)
	if err != nil {
		return nil, errors.Wrapf(err, "[catalog InMemoryRepo.CreateSubcategory]")
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if r.category(categoryID) == nil {
		return nil, errors.Wrapf(errors.ErrParentNotFound, "[catalog InMemoryRepo.CreateSubcategory] category %s", categoryID)
	}
	s := &storedSubcategory{id: uuid.New().String(), name: name, categoryID: categoryID}
	r.subcategories = append(r.subcategories, s)
	out := r.subcategoryView(s)
	return &out, nil
}

func (r *InMemoryRepo) UpdateSubcategory(_ context.Context, id, name, categoryID string) (*Subcategory, error) {
	name, err := validName(name)
	if err != nil {
		return nil, errors.Wrapf(err, "[catalog InMemoryRepo.UpdateSubcategory]")
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	s := r.subcategory(id)
	if s == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "[catalog InMemoryRepo.UpdateSubcategory] subcategory %s", id)
	}
	if r.category(categoryID) == nil {
		return nil, errors.Wrapf(errors.ErrParentNotFound, "[catalog InMemoryRepo.UpdateSubcategory] category %s", categoryID)
	}
	s.name = name
	s.categoryID = categoryID
	out := r.subcategoryView(s)
	return &out, nil
}

// DeleteSubcategory removes the subcategory and its products.
func (r *InMemoryRepo) DeleteSubcategory(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.subcategory(id) == nil {
		return errors.Wrapf(errors.ErrNotFound, "[catalog InMemoryRepo.DeleteSubcategory] subcategory %s", id)
	}
	r.products = slices.DeleteFunc(r.products, func(p *storedProduct) bool { return p.subcategoryID == id })
	r.subcategories = slices.DeleteFunc(r.subcategories, func(s *storedSubcategory) bool { return s.id == id })
	return nil
}

// Products

func (r *InMemoryRepo) Products(_ context.Context) ([]Product, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, r.productView(p))
	}
	return out, nil
}

func (r *InMemoryRepo) productView(p *storedProduct) Product {
	view := Product{
		ID:       p.id,
		Name:     p.name,
		Price:    p.price,
		ImageURL: p.imageURL,
		Stock: Stock{
			Total:      sumQuantities(p.perCourier),
			PerCourier: slices.Clone(p.perCourier),
		},
	}
	if view.Stock.PerCourier == nil {
		view.Stock.PerCourier = []CourierStock{}
	}
	if s := r.subcategory(p.subcategoryID); s != nil {
		view.Category.Subcategory = Ref{ID: s.id, Name: s.name}
		if c := r.category(s.categoryID); c != nil {
			view.Category.ID = c.id
			view.Category.Name = c.name
		}
	}
	return view
}

func (r *InMemoryRepo) ProductsForCourier(ctx context.Context, courierID string) ([]Product, error) {
	all, err := r.Products(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		all[i].Stock = projectStock(all[i].Stock, courierID)
	}
	return all, nil
}

// projectStock keeps only the courier's own entry; the total becomes that entry's quantity.
func projectStock(s Stock, courierID string) Stock {
	for _, e := range s.PerCourier {
		if e.ID == courierID {
			return Stock{Total: e.Quantity, PerCourier: []CourierStock{e}}
		}
	}
	return Stock{Total: 0, PerCourier: []CourierStock{}}
}

func validProduct(input ProductInput) (string, error) {
	name, err := validName(input.Name)
	if err != nil {
		return "", err
	}
	if input.Price < 0 {
		return "", errors.Wrapf(errors.ErrInvalidRequest, "price must not be negative")
	}
	return name, nil
}

func (r *InMemoryRepo) CreateProduct(_ context.Context, input ProductInput) (*Product, error) {
	name, err := validProduct(input)
	if err != nil {
		return nil, errors.Wrapf(err, "[catalog InMemoryRepo.CreateProduct]")
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if r.subcategory(input.SubcategoryID) == nil {
		return nil, errors.Wrapf(errors.ErrParentNotFound, "[catalog InMemoryRepo.CreateProduct] subcategory %s", input.SubcategoryID)
	}
	p := &storedProduct{
		id:            uuid.New().String(),
		name:          name,
		subcategoryID: input.SubcategoryID,
		price:         input.Price,
		imageURL:      utils.Value(input.ImageURL),
	}
	r.products = append(r.products, p)
	out := r.productView(p)
	return &out, nil
}

func (r *InMemoryRepo) UpdateProduct(_ context.Context, id string, input ProductInput) (*Product, error) {
	name, err := validProduct(input)
	if err != nil {
		return nil, errors.Wrapf(err, "[catalog InMemoryRepo.UpdateProduct]")
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	p := r.product(id)
	if p == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "[catalog InMemoryRepo.UpdateProduct] product %s", id)
	}
	if r.subcategory(input.SubcategoryID) == nil {
		return nil, errors.Wrapf(errors.ErrParentNotFound, "[catalog InMemoryRepo.UpdateProduct] subcategory %s", input.SubcategoryID)
	}
	p.name = name
	p.subcategoryID = input.SubcategoryID
	p.price = input.Price
	p.imageURL = utils.ValueOr(input.ImageURL, p.imageURL)
	out := r.productView(p)
	return &out, nil
}

func (r *InMemoryRepo) DeleteProduct(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.product(id) == nil {
		return errors.Wrapf(errors.ErrNotFound, "[catalog InMemoryRepo.DeleteProduct] product %s", id)
	}
	r.products = slices.DeleteFunc(r.products, func(p *storedProduct) bool { return p.id == id })
	return nil
}

// UpdateCourierQuantity sets the courier's entry, adding it when missing. Applying the
// same update twice leaves the same total.
func (r *InMemoryRepo) UpdateCourierQuantity(_ context.Context, productID string, stock CourierStock) error {
	if stock.ID == "" {
		return errors.Wrapf(errors.ErrInvalidRequest, "[catalog InMemoryRepo.UpdateCourierQuantity] courier id is required")
	}
	if stock.Quantity < 0 {
		return errors.Wrapf(errors.ErrInvalidRequest, "[catalog InMemoryRepo.UpdateCourierQuantity] quantity must not be negative")
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	p := r.product(productID)
	if p == nil {
		return errors.Wrapf(errors.ErrNotFound, "[catalog InMemoryRepo.UpdateCourierQuantity] product %s", productID)
	}
	for i := range p.perCourier {
		if p.perCourier[i].ID == stock.ID {
			p.perCourier[i].Quantity = stock.Quantity
			if stock.Username != "" {
				p.perCourier[i].Username = stock.Username
			}
			return nil
		}
	}
	p.perCourier = append(p.perCourier, stock)
	return nil
}

func sumQuantities(entries []CourierStock) int {
	total := 0
	for _, e := range entries {
		total += e.Quantity
	}
	return total
}
