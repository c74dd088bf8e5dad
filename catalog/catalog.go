// Package catalog holds the category, subcategory and product hierarchy and the
// per-courier stock of each product.
package catalog

import "github.com/jrsteele09/courier-admin/sorting"

type Category struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	SubcategoriesCount int    `json:"subcategoriesCount"`
}

// Ref is the id and name of a parent record.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Subcategory struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ProductCount int    `json:"productCount"`
	Category     Ref    `json:"category"`
}

// CourierStock is how many units of a product one courier carries.
type CourierStock struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Quantity int    `json:"quantity"`
}

type Stock struct {
	Total      int            `json:"total"`
	PerCourier []CourierStock `json:"perCourier"`
}

type ProductCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Subcategory Ref    `json:"subcategory"`
}

type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    float64         `json:"price"`
	ImageURL string          `json:"imageUrl,omitempty"`
	Stock    Stock           `json:"stock"`
	Category ProductCategory `json:"category"`
}

// ProductInput is the writable part of a product. A nil ImageURL leaves the stored
// image alone on update.
type ProductInput struct {
	Name          string  `json:"name"`
	SubcategoryID string  `json:"subcategoryId"`
	Price         float64 `json:"price"`
	ImageURL      *string `json:"imageUrl,omitempty"`
}

// QuantityFor returns the courier's stock entry quantity, or 0.
func (p Product) QuantityFor(courierID string) int {
	for _, e := range p.Stock.PerCourier {
		if e.ID == courierID {
			return e.Quantity
		}
	}
	return 0
}

var (
	_ sorting.Fielder = Category{}
	_ sorting.Fielder = Subcategory{}
	_ sorting.Fielder = Product{}
)

func (c Category) SortField(key string) (any, bool) {
	switch key {
	case "id":
		return c.ID, true
	case "name":
		return c.Name, true
	case "subcategoriesCount":
		return c.SubcategoriesCount, true
	}
	return nil, false
}

func (s Subcategory) SortField(key string) (any, bool) {
	switch key {
	case "id":
		return s.ID, true
	case "name":
		return s.Name, true
	case "productCount":
		return s.ProductCount, true
	case "category":
		if s.Category.Name == "" {
			return nil, false
		}
		return s.Category.Name, true
	}
	return nil, false
}

func (p Product) SortField(key string) (any, bool) {
	switch key {
	case "id":
		return p.ID, true
	case "name":
		return p.Name, true
	case "price":
		return p.Price, true
	case "total", "quantity":
		return p.Stock.Total, true
	case "category":
		if p.Category.Name == "" {
			return nil, false
		}
		return p.Category.Name, true
	case "subcategory":
		if p.Category.Subcategory.Name == "" {
			return nil, false
		}
		return p.Category.Subcategory.Name, true
	case "imageUrl":
		if p.ImageURL == "" {
			return nil, false
		}
		return p.ImageURL, true
	}
	return nil, false
}
