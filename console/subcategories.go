package console

import (
	"context"
	"strings"

	"github.com/jrsteele09/courier-admin/catalog"
)

type SubcategoriesView struct {
	Table      Table
	Editing    *catalog.Subcategory
	Categories []Option
}

var subcategoryColumns = []Column[catalog.Subcategory]{
	{Key: "name", Label: "Name", Sortable: true},
	{Key: "category", Label: "Category", Sortable: true},
	{Key: "productCount", Label: "Products", Sortable: true},
}

func (c *Console) SubcategoriesPage(ctx context.Context, q Query) SubcategoriesView {
	list := c.catalog.Subcategories(ctx)
	view := SubcategoriesView{Table: NewTable(list, subcategoryColumns, q.Sort, q.Values())}

	selected := ""
	if sub, ok := findByID(list, q.Edit, func(s catalog.Subcategory) string { return s.ID }); ok {
		view.Editing = &sub
		selected = sub.Category.ID
	}

	categories := c.catalog.Categories(ctx)
	view.Categories = make([]Option, 0, len(categories))
	for _, cat := range categories {
		view.Categories = append(view.Categories, Option{Value: cat.ID, Label: cat.Name, Selected: cat.ID == selected})
	}
	return view
}

// SaveSubcategory needs a name and a parent category; otherwise nothing happens.
func (c *Console) SaveSubcategory(ctx context.Context, id, name, categoryID string) bool {
	name = strings.TrimSpace(name)
	if name == "" || categoryID == "" {
		return false
	}
	if id == "" {
		if c.catalog.CreateSubcategory(ctx, name, categoryID) == nil {
			c.notes.Failure("Error", "Could not create the subcategory")
			return false
		}
		c.notes.Success("Subcategory created", name)
		return true
	}
	if c.catalog.UpdateSubcategory(ctx, id, name, categoryID) == nil {
		c.notes.Failure("Error", "Could not update the subcategory")
		return false
	}
	c.notes.Success("Subcategory updated", name)
	return true
}

func (c *Console) DeleteSubcategory(ctx context.Context, id string, confirmed bool) bool {
	if !confirmed || id == "" {
		return false
	}
	if !c.catalog.DeleteSubcategory(ctx, id) {
		c.notes.Failure("Error", "Could not delete the subcategory")
		return false
	}
	c.notes.Success("Subcategory deleted", "")
	return true
}
