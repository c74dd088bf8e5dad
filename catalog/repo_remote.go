package catalog

import (
	"context"

	"github.com/jrsteele09/courier-admin/api"
	"github.com/jrsteele09/courier-admin/internal/errors"
)

var _ Repo = (*RemoteRepo)(nil)

// RemoteRepo reads and writes the catalog through the remote API.
type RemoteRepo struct {
	client *api.Client
}

func NewRemoteRepo(client *api.Client) *RemoteRepo {
	return &RemoteRepo{client: client}
}

type categoryPayload struct {
	Name string `json:"name"`
}

type subcategoryPayload struct {
	Name       string `json:"name"`
	CategoryID string `json:"categoryId"`
}

type quantityPayload struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (r *RemoteRepo) Categories(ctx context.Context) ([]Category, error) {
	res := api.List[Category](ctx, r.client, api.SystemCatalog, api.PathCategories)
	if err := res.Err(); err != nil {
		return nil, errors.Wrapf(err, "[catalog RemoteRepo.Categories]")
	}
	return res.Data, nil
}

func (r *RemoteRepo) CreateCategory(ctx context.Context, name string) (*Category, error) {
	res := api.Post[Category](ctx, r.client, api.SystemCatalog, api.PathCategory, categoryPayload{Name: name})
	if err := res.Err(); err != nil {
		return nil, errors.Wrapf(err, "[catalog RemoteRepo.CreateCategory]")
	}
	return &res.Data, nil
}

func (r *RemoteRepo) UpdateCategory(ctx context.Context, id, name string) (*Category, error) {
	res := api.Put[Category](ctx, r.client, api.SystemCatalog, api.CategoryPath(id), categoryPayload{Name: name})
	if err := res.Err(); err != nil {
		return nil, errors.Wrapf(err, "[catalog RemoteRepo.UpdateCategory] category %s", id)
	}
	return &res.Data, nil
}

func (r *RemoteRepo) DeleteCategory(ctx context.Context, id string) error {
	res := api.Delete[api.Empty](ctx, r.client, api.SystemCatalog, api.CategoryPath(id))
	return errors.Wrapf(res.Err(), "[catalog RemoteRepo.DeleteCategory] category %s", id)
}

func (r *RemoteRepo) Subcategories(ctx context.Context) ([]Subcategory, error) {
	res := api.List[Subcategory](ctx, r.client, api.SystemCatalog, api.PathSubcategories)
	if err := res.Err(); err != nil {
		return nil, errors.Wrapf(err, "[catalog RemoteRepo.Subcategories]")
	}
	return res.Data, nil
}

func (r *RemoteRepo) CreateSubcategory(ctx context.Context, name, categoryID string) (*Subcategory, error) {
	res := api.Post[Subcategory](ctx, r.client, api.SystemCatalog, api.PathSubcategory, subcategoryPayload{Name: name, CategoryID: categoryID})
	if err := res.Err(); err != nil {
		return nil, errors.Wrapf(err, "[catalog RemoteRepo.CreateSubcategory]")
	}
	return &res.Data, nil
}

func (r *RemoteRepo) UpdateSubcategory(ctx context.Context, id, name, categoryID string) (*Subcategory, error) {
	res := api.Put[Subcategory](ctx, r.client, api.SystemCatalog, api.SubcategoryPath(id), subcategoryPayload{Name: name, CategoryID: categoryID})
	if err := res.Err(); err != nil {
		return nil, errors.Wrapf(err, "[catalog RemoteRepo.UpdateSubcategory] subcategory %s", id)
	}
	return &res.Data, nil
}

func (r *RemoteRepo) DeleteSubcategory(ctx context.Context, id string) error {
	res := api.Delete[api.Empty](ctx, r.client, api.SystemCatalog, api.SubcategoryPath(id))
	return errors.Wrapf(res.Err(), "[catalog RemoteRepo.DeleteSubcategory] subcategory %s", id)
}

func (r *RemoteRepo) Products(ctx context.Context) ([]Product, error) {
	res := api.List[Product](ctx, r.client, api.SystemCatalog, api.PathProducts)
	if err := res.Err(); err != nil {
		return nil, errors.Wrapf(err, "[catalog RemoteRepo.Products]")
	}
	return res.Data, nil
}

func (r *RemoteRepo) ProductsForCourier(ctx context.Context, courierID string) ([]Product, error) {
	res := api.List[Product](ctx, r.client, api.SystemCatalog, api.CourierProductsPath(courierID))
	if err := res.Err(); err != nil {
		return nil, errors.Wrapf(err, "[catalog RemoteRepo.ProductsForCourier] courier %s", courierID)
	}
	return res.Data, nil
}

func (r *RemoteRepo) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	res := api.Post[Product](ctx, r.client, api.SystemCatalog, api.PathProduct, input)
	if err := res.Err(); err != nil {
		return nil, errors.Wrapf(err, "[catalog RemoteRepo.CreateProduct]")
	}
	return &res.Data, nil
}

func (r *RemoteRepo) UpdateProduct(ctx context.Context, id string, input ProductInput) (*Product, error) {
	res := api.Put[Product](ctx, r.client, api.SystemCatalog, api.ProductPath(id), input)
	if err := res.Err(); err != nil {
		return nil, errors.Wrapf(err, "[catalog RemoteRepo.UpdateProduct] product %s", id)
	}
	return &res.Data, nil
}

func (r *RemoteRepo) DeleteProduct(ctx context.Context, id string) error {
	res := api.Delete[api.Empty](ctx, r.client, api.SystemCatalog, api.ProductPath(id))
	return errors.Wrapf(res.Err(), "[catalog RemoteRepo.DeleteProduct] product %s", id)
}

func (r *RemoteRepo) UpdateCourierQuantity(ctx context.Context, productID string, stock CourierStock) error {
	res := api.Put[api.Empty](ctx, r.client, api.SystemCatalog, api.CourierQuantityPath(stock.ID),
		quantityPayload{ProductID: productID, Quantity: stock.Quantity})
	return errors.Wrapf(res.Err(), "[catalog RemoteRepo.UpdateCourierQuantity] product %s courier %s", productID, stock.ID)
}
