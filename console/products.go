package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jrsteele09/courier-admin/catalog"
	"github.com/jrsteele09/courier-admin/couriers"
	"github.com/jrsteele09/courier-admin/images"
	"github.com/jrsteele09/courier-admin/internal/utils"
	"github.com/jrsteele09/courier-admin/session"
)

const stockBadgeLimit = 2

type ProductsView struct {
	Manager       bool
	Search        string
	Table         Table
	Editing       *catalog.Product
	Subcategories []Option
	// Quantity is the signed-in courier's stock of the edited product.
	Quantity int
}

// ProductForm is a submitted product create or update. Image is nil when no file was chosen.
type ProductForm struct {
	ID            string
	Name          string
	SubcategoryID string
	Price         string
	Image         *images.File
	RemoveImage   bool
}

func (c *Console) ProductsPage(ctx context.Context, claims session.Claims, q Query) ProductsView {
	if claims.IsManager {
		return c.managerProducts(ctx, q)
	}
	return c.courierProducts(ctx, claims, q)
}

func (c *Console) managerProducts(ctx context.Context, q Query) ProductsView {
	var (
		products      []catalog.Product
		courierList   []couriers.Courier
		subcategories []catalog.Subcategory
		g             errgroup.Group
	)
	g.Go(func() error {
		products = c.catalog.Products(ctx)
		return nil
	})
	g.Go(func() error {
		courierList = c.couriers.Couriers(ctx)
		return nil
	})
	g.Go(func() error {
		subcategories = c.catalog.Subcategories(ctx)
		return nil
	})
	_ = g.Wait()

	view := ProductsView{Manager: true, Search: q.Search}
	view.Table = NewTable(products, managerProductColumns(courierList), q.Sort, q.Values())

	selected := ""
	if p, ok := findByID(products, q.Edit, func(p catalog.Product) string { return p.ID }); ok {
		view.Editing = &p
		selected = p.Category.Subcategory.ID
	}
	view.Subcategories = make([]Option, 0, len(subcategories))
	for _, s := range subcategories {
		view.Subcategories = append(view.Subcategories, Option{
			Value:    s.ID,
			Label:    s.Name + " (" + s.Category.Name + ")",
			Selected: s.ID == selected,
		})
	}
	return view
}

func (c *Console) courierProducts(ctx context.Context, claims session.Claims, q Query) ProductsView {
	products := filterProducts(c.catalog.ProductsForCourier(ctx, claims.Subject), q.Search)
	view := ProductsView{Search: q.Search}
	view.Table = NewTable(products, courierProductColumns, q.Sort, q.Values())
	if p, ok := findByID(products, q.Edit, func(p catalog.Product) string { return p.ID }); ok {
		view.Editing = &p
		view.Quantity = p.QuantityFor(claims.Subject)
	}
	return view
}

// SaveProduct creates or updates a product. A new product is created first and its image
// uploaded under the new id; an existing product has its image uploaded before the update.
func (c *Console) SaveProduct(ctx context.Context, form ProductForm) bool {
	name := strings.TrimSpace(form.Name)
	if name == "" || form.SubcategoryID == "" {
		return false
	}
	price, err := parsePrice(form.Price)
	if err != nil {
		c.notes.Failure("Invalid price", err.Error())
		return false
	}
	if form.Image != nil {
		if err := c.images.Validate(*form.Image); err != nil {
			c.notes.Failure("Invalid image", err.Error())
			return false
		}
	}

	input := catalog.ProductInput{Name: name, SubcategoryID: form.SubcategoryID, Price: price}
	if form.ID == "" {
		return c.createProduct(ctx, input, form.Image)
	}

	switch {
	case form.Image != nil:
		url, ok := c.images.Upload(ctx, form.ID, *form.Image)
		if !ok {
			c.notes.Failure("Error", "Could not upload the image")
			return false
		}
		input.ImageURL = utils.Ptr(url)
	case form.RemoveImage:
		c.images.Delete(ctx, form.ID)
		input.ImageURL = utils.Ptr("")
	}
	if c.catalog.UpdateProduct(ctx, form.ID, input) == nil {
		c.notes.Failure("Error", "Could not update the product")
		return false
	}
	c.notes.Success("Product updated", name)
	return true
}

func (c *Console) createProduct(ctx context.Context, input catalog.ProductInput, image *images.File) bool {
	created := c.catalog.CreateProduct(ctx, input)
	if created == nil {
		c.notes.Failure("Error", "Could not create the product")
		return false
	}
	if image != nil {
		url, ok := c.images.Upload(ctx, created.ID, *image)
		if !ok {
			c.notes.Failure("Product created without image", "Could not upload the image")
			return true
		}
		input.ImageURL = utils.Ptr(url)
		if c.catalog.UpdateProduct(ctx, created.ID, input) == nil {
			c.notes.Failure("Product created without image", "Could not attach the image")
			return true
		}
	}
	c.notes.Success("Product created", input.Name)
	return true
}

// DeleteProduct removes a confirmed product and its image.
func (c *Console) DeleteProduct(ctx context.Context, id string, confirmed bool) bool {
	if !confirmed || id == "" {
		return false
	}
	product, found := findByID(c.catalog.Products(ctx), id, func(p catalog.Product) string { return p.ID })
	if !c.catalog.DeleteProduct(ctx, id) {
		c.notes.Failure("Error", "Could not delete the product")
		return false
	}
	if found && product.ImageURL != "" {
		c.images.Delete(ctx, id)
	}
	c.notes.Success("Product deleted", "")
	return true
}

// SaveQuantity sets the signed-in courier's own stock of a product.
func (c *Console) SaveQuantity(ctx context.Context, claims session.Claims, productID, quantity string) bool {
	if productID == "" {
		return false
	}
	qty, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil || qty < 0 {
		c.notes.Failure("Invalid quantity", "Quantity must be a whole number of zero or more")
		return false
	}
	stock := catalog.CourierStock{ID: claims.Subject, Username: claims.Username, Quantity: qty}
	if !c.catalog.UpdateCourierQuantity(ctx, productID, stock) {
		c.notes.Failure("Error", "Could not update the quantity")
		return false
	}
	c.notes.Success("Quantity updated", "")
	return true
}

func parsePrice(raw string) (float64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if raw == "" {
		return 0, nil
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	if price < 0 {
		return 0, fmt.Errorf("price must not be negative")
	}
	return price, nil
}

func filterProducts(products []catalog.Product, search string) []catalog.Product {
	if search == "" {
		return products
	}
	needle := strings.ToLower(search)
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name+p.Category.Subcategory.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}

func priceCell(p catalog.Product) Cell {
	return Cell{Text: strconv.FormatFloat(p.Price, 'f', 2, 64)}
}

func imageCell(p catalog.Product) Cell {
	return Cell{ImageURL: p.ImageURL}
}

func managerProductColumns(courierList []couriers.Courier) []Column[catalog.Product] {
	return []Column[catalog.Product]{
		{Key: "imageUrl", Label: "Photo", Render: imageCell},
		{Key: "name", Label: "Name", Sortable: true},
		{Key: "subcategory", Label: "Subcategory", Sortable: true},
		{Key: "category", Label: "Category", Sortable: true},
		{Key: "price", Label: "Price", Sortable: true, Render: priceCell},
		{Key: "total", Label: "Total", Sortable: true},
		{Key: "stock", Label: "Couriers", Render: func(p catalog.Product) Cell {
			return stockCell(p.Stock, courierList)
		}},
	}
}

var courierProductColumns = []Column[catalog.Product]{
	{Key: "imageUrl", Label: "Photo", Render: imageCell},
	{Key: "name", Label: "Name", Sortable: true},
	{Key: "subcategory", Label: "Subcategory", Sortable: true},
	{Key: "price", Label: "Price", Sortable: true, Render: priceCell},
	{Key: "quantity", Label: "My quantity", Sortable: true},
}

// stockCell lists couriers holding the product. Past stockBadgeLimit the rest is summarised.
func stockCell(stock catalog.Stock, courierList []couriers.Courier) Cell {
	held := make([]catalog.CourierStock, 0, len(stock.PerCourier))
	for _, e := range stock.PerCourier {
		if e.Quantity > 0 {
			held = append(held, e)
		}
	}
	if len(held) == 0 {
		return Cell{Text: "Unassigned"}
	}

	cell := Cell{Badges: make([]string, 0, stockBadgeLimit)}
	for _, e := range held[:min(len(held), stockBadgeLimit)] {
		cell.Badges = append(cell.Badges, fmt.Sprintf("%s: %d", courierName(e, courierList), e.Quantity))
	}
	if rest := held[min(len(held), stockBadgeLimit):]; len(rest) > 0 {
		units := 0
		for _, e := range rest {
			units += e.Quantity
		}
		cell.Text = fmt.Sprintf("+%d more (%d units)", len(rest), units)
	}
	return cell
}

func courierName(e catalog.CourierStock, courierList []couriers.Courier) string {
	if e.Username != "" {
		return e.Username
	}
	if c, ok := findByID(courierList, e.ID, func(c couriers.Courier) string { return c.ID }); ok {
		return c.Username
	}
	return "Courier " + e.ID
}
