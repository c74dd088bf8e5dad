package console

import (
	"context"
	"strings"

	"github.com/jrsteele09/courier-admin/catalog"
)

type CategoriesView struct {
	Table   Table
	Editing *catalog.Category
}

var categoryColumns = []Column[catalog.Category]{
	{Key: "name", Label: "Name", Sortable: true},
	{Key: "subcategoriesCount", Label: "Subcategories", Sortable: true},
}

func (c *Console) CategoriesPage(ctx context.Context, q Query) CategoriesView {
	list := c.catalog.Categories(ctx)
	view := CategoriesView{Table: NewTable(list, categoryColumns, q.Sort, q.Values())}
	if cat, ok := findByID(list, q.Edit, func(c catalog.Category) string { return c.ID }); ok {
		view.Editing = &cat
	}
	return view
}

// SaveCategory creates a category when id is empty, otherwise renames it.
// A blank name is ignored.
func (c *Console) SaveCategory(ctx context.Context, id, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	if id == "" {
		if c.catalog.CreateCategory(ctx, name) == nil {
			c.notes.Failure("Error", "Could not create the category")
			return false
		}
		c.notes.Success("Category created", name)
		return true
	}
	if c.catalog.UpdateCategory(ctx, id, name) == nil {
		c.notes.Failure("Error", "Could not update the category")
		return false
	}
	c.notes.Success("Category updated", name)
	return true
}

// DeleteCategory removes the category and everything under it once confirmed.
func (c *Console) DeleteCategory(ctx context.Context, id string, confirmed bool) bool {
	if !confirmed || id == "" {
		return false
	}
	if !c.catalog.DeleteCategory(ctx, id) {
		c.notes.Failure("Error", "Could not delete the category")
		return false
	}
	c.notes.Success("Category deleted", "")
	return true
}
