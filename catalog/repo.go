package catalog

import "context"

type Repo interface {
	Categories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, name string) (*Category, error)
	UpdateCategory(ctx context.Context, id, name string) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error

	Subcategories(ctx context.Context) ([]Subcategory, error)
	CreateSubcategory(ctx context.Context, name, categoryID string) (*Subcategory, error)
	UpdateSubcategory(ctx context.Context, id, name, categoryID string) (*Subcategory, error)
	DeleteSubcategory(ctx context.Context, id string) error

	Products(ctx context.Context) ([]Product, error)
	// ProductsForCourier projects every product to the courier's own stock entry.
	ProductsForCourier(ctx context.Context, courierID string) ([]Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, id string, input ProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
	// UpdateCourierQuantity sets one courier's stock of a product.
	UpdateCourierQuantity(ctx context.Context, productID string, stock CourierStock) error
}
