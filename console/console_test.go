package console_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/jrsteele09/courier-admin/catalog"
	"github.com/jrsteele09/courier-admin/console"
	"github.com/jrsteele09/courier-admin/couriers"
	"github.com/jrsteele09/courier-admin/images"
	"github.com/jrsteele09/courier-admin/session"
	"github.com/jrsteele09/courier-admin/sorting"
	"github.com/stretchr/testify/require"
)

var (
	manager  = session.Claims{Subject: "1", Username: "admin", IsManager: true}
	courier1 = session.Claims{Subject: "2", Username: "courier1"}
	pngData  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	gifData  = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00")
)

type fixture struct {
	console  *console.Console
	catalog  *catalog.Service
	couriers *couriers.Service
	images   *images.Service
}

func setupFixture(t *testing.T) fixture {
	t.Helper()
	courierRepo, err := couriers.NewInMemoryRepo(couriers.DemoCouriers()...)
	require.NoError(t, err)

	f := fixture{
		catalog:  catalog.NewService(catalog.NewDemoRepo()),
		couriers: couriers.NewService(courierRepo),
		images:   images.NewService(images.NewInMemoryStore()),
	}
	f.console = console.New(console.Services{Catalog: f.catalog, Couriers: f.couriers, Images: f.images}, console.NewNotifications())
	return f
}

func cellTexts(table console.Table, col int) []string {
	out := make([]string, 0, len(table.Rows))
	for _, r := range table.Rows {
		out = append(out, r.Cells[col].Text)
	}
	return out
}

func TestParseQuery(t *testing.T) {
	q := console.ParseQuery(url.Values{"sort": {"price"}, "dir": {"DESC"}, "edit": {" 3 "}, "q": {" phone "}})
	require.Equal(t, &sorting.Config{Key: "price", Direction: sorting.Descending}, q.Sort)
	require.Equal(t, "3", q.Edit)
	require.Equal(t, "phone", q.Search)

	q = console.ParseQuery(url.Values{})
	require.Nil(t, q.Sort)
	require.Empty(t, q.Values())
}

func TestNotificationsDrain(t *testing.T) {
	n := console.NewNotifications()
	require.Empty(t, n.Drain())

	n.Success("Saved", "ok")
	n.Failure("Error", "boom")
	require.Equal(t, []console.Notification{
		{Title: "Saved", Description: "ok"},
		{Title: "Error", Description: "boom", Destructive: true},
	}, n.Drain())
	require.Empty(t, n.Drain())
}

func TestCategoriesPageSortedByName(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	view := f.console.CategoriesPage(ctx, console.Query{Sort: &sorting.Config{Key: "name", Direction: sorting.Descending}, Edit: "2"})
	require.Equal(t, []string{"Kleidung", "Elektronik"}, cellTexts(view.Table, 0))
	require.Equal(t, "▼", view.Table.Headers[0].Indicator)
	require.NotNil(t, view.Editing)
	require.Equal(t, "Kleidung", view.Editing.Name)
}

func TestSaveCategory(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.False(t, f.console.SaveCategory(ctx, "", "   "))
	require.Empty(t, f.console.Notifications().Drain())

	require.True(t, f.console.SaveCategory(ctx, "", "  Bücher "))
	require.Equal(t, "Category created", f.console.Notifications().Drain()[0].Title)

	names := make([]string, 0)
	for _, c := range f.catalog.Categories(ctx) {
		names = append(names, c.Name)
	}
	require.Contains(t, names, "Bücher")

	require.True(t, f.console.SaveCategory(ctx, "1", "Electronics"))
	require.False(t, f.console.SaveCategory(ctx, "missing", "Nope"))
	notes := f.console.Notifications().Drain()
	require.Len(t, notes, 2)
	require.True(t, notes[1].Destructive)
}

func TestDeleteCategoryRequiresConfirm(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.False(t, f.console.DeleteCategory(ctx, "2", false))
	require.Len(t, f.catalog.Categories(ctx), 2)

	require.True(t, f.console.DeleteCategory(ctx, "2", true))
	require.Len(t, f.catalog.Categories(ctx), 1)
	require.Len(t, f.catalog.Products(ctx), 3)
}

func TestSubcategoriesPageMarksParent(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	view := f.console.SubcategoriesPage(ctx, console.Query{Edit: "3"})
	require.Equal(t, []string{"Elektronik", "Elektronik", "Kleidung"}, cellTexts(view.Table, 1))
	require.Equal(t, []console.Option{
		{Value: "1", Label: "Elektronik"},
		{Value: "2", Label: "Kleidung", Selected: true},
	}, view.Categories)

	require.False(t, f.console.SaveSubcategory(ctx, "", "Tablets", ""))
	require.True(t, f.console.SaveSubcategory(ctx, "", "Tablets", "1"))
	require.Len(t, f.catalog.Subcategories(ctx), 4)
	require.True(t, f.console.DeleteSubcategory(ctx, "3", true))
	require.Len(t, f.catalog.Subcategories(ctx), 3)
}

func TestManagerProductsPage(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	view := f.console.ProductsPage(ctx, manager, console.Query{Sort: &sorting.Config{Key: "price", Direction: sorting.Ascending}, Edit: "3"})
	require.True(t, view.Manager)
	require.Equal(t, []string{"4", "2", "1", "3"}, rowIDs(view.Table))
	require.Equal(t, "25.00", view.Table.Rows[0].Cells[4].Text)
	require.Equal(t, []string{"courier1: 8", "courier2: 12"}, view.Table.Rows[0].Cells[6].Badges)
	require.Len(t, view.Subcategories, 3)
	require.True(t, view.Subcategories[1].Selected)
	require.Equal(t, "MacBook Pro", view.Editing.Name)
}

func rowIDs(table console.Table) []string {
	out := make([]string, 0, len(table.Rows))
	for _, r := range table.Rows {
		out = append(out, r.ID)
	}
	return out
}

func TestCourierProductsPageShowsOwnStock(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	view := f.console.ProductsPage(ctx, courier1, console.Query{Search: "PHONE", Edit: "1"})
	require.False(t, view.Manager)
	require.Equal(t, []string{"1", "2"}, rowIDs(view.Table))
	require.Equal(t, "5", view.Table.Rows[0].Cells[4].Text)
	require.Equal(t, 5, view.Quantity)

	view = f.console.ProductsPage(ctx, courier1, console.Query{Sort: &sorting.Config{Key: "quantity", Direction: sorting.Descending}})
	require.Equal(t, []string{"4", "1", "2", "3"}, rowIDs(view.Table))
}

func TestSaveQuantityOnlyTouchesOwnEntry(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.False(t, f.console.SaveQuantity(ctx, courier1, "1", "-1"))
	require.False(t, f.console.SaveQuantity(ctx, courier1, "1", "many"))
	require.True(t, f.console.SaveQuantity(ctx, courier1, "1", "7"))
	require.True(t, f.console.SaveQuantity(ctx, courier1, "1", "7"))

	var product catalog.Product
	for _, p := range f.catalog.Products(ctx) {
		if p.ID == "1" {
			product = p
		}
	}
	require.Equal(t, 17, product.Stock.Total)
	require.Equal(t, 10, product.QuantityFor("3"))
}

func TestSaveProductWithImage(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.False(t, f.console.SaveProduct(ctx, console.ProductForm{Name: "Pixel", SubcategoryID: "1", Price: "abc"}))
	require.True(t, f.console.Notifications().Drain()[0].Destructive)

	require.False(t, f.console.SaveProduct(ctx, console.ProductForm{
		Name: "Pixel", SubcategoryID: "1", Price: "1",
		Image: &images.File{Name: "a.gif", Data: gifData},
	}))
	require.Len(t, f.catalog.Products(ctx), 4)
	f.console.Notifications().Drain()

	require.True(t, f.console.SaveProduct(ctx, console.ProductForm{
		Name: "Pixel 9", SubcategoryID: "1", Price: "599,50",
		Image: &images.File{Name: "a.png", Data: pngData},
	}))
	products := f.catalog.Products(ctx)
	require.Len(t, products, 5)
	created := products[4]
	require.Equal(t, 599.5, created.Price)
	require.Equal(t, f.images.URL(created.ID), created.ImageURL)

	img, err := f.images.Fetch(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, pngData, img.Data)

	require.True(t, f.console.SaveProduct(ctx, console.ProductForm{ID: created.ID, Name: "Pixel 9", SubcategoryID: "1", Price: "599.5", RemoveImage: true}))
	require.Empty(t, f.catalog.Products(ctx)[4].ImageURL)

	require.False(t, f.console.DeleteProduct(ctx, created.ID, false))
	require.True(t, f.console.DeleteProduct(ctx, created.ID, true))
	require.Len(t, f.catalog.Products(ctx), 4)
}

func TestSaveCourier(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.False(t, f.console.SaveCourier(ctx, console.CourierForm{Username: "courier3"}))
	require.True(t, f.console.SaveCourier(ctx, console.CourierForm{Username: "courier3", Password: "secret123", Cities: []string{"Bonn"}}))
	require.Len(t, f.couriers.Couriers(ctx), 3)

	require.True(t, f.console.SaveCourier(ctx, console.CourierForm{ID: "2", Username: "rider1"}))
	require.True(t, f.console.SaveCourier(ctx, console.CourierForm{ID: "3", Username: "rider2", Password: "newpass123"}))

	notes := f.console.Notifications().Drain()
	require.Equal(t, "Courier created", notes[0].Title)
	require.Equal(t, "Login changed", notes[1].Description)
	require.Equal(t, "Login and password changed", notes[2].Description)

	view := f.console.CouriersPage(ctx, console.Query{Sort: &sorting.Config{Key: "username", Direction: sorting.Ascending}, Edit: "2"})
	require.Equal(t, []string{"courier3", "rider1", "rider2"}, cellTexts(view.Table, 1))
	require.Equal(t, "rider1", view.Editing.Username)
	require.Equal(t, couriers.ReferenceCities(), view.Cities)

	require.True(t, f.console.DeleteCourier(ctx, "2", true))
	require.Len(t, f.couriers.Couriers(ctx), 2)
}

func TestCitySelectionDiff(t *testing.T) {
	s := console.NewCitySelection()
	s.Load("2", []string{"Bocholt", "Köln"}, []string{"Bocholt", "Köln", "Bonn", "Bad Honnef", "Moers"})
	require.False(t, s.HasChanges())
	require.True(t, s.LoadedFor("2"))
	require.False(t, s.LoadedFor("3"))

	s.Add("Bonn")
	s.Add("Bonn")
	require.Equal(t, []string{"Bocholt", "Köln", "Bonn"}, s.Selected())
	require.True(t, s.HasChanges())
	require.Equal(t, []string{"Bad Honnef"}, s.Filtered("bad"))
	require.Equal(t, []string{"Bad Honnef", "Moers"}, s.Filtered(""))

	s.Remove("Köln")
	s.Reset()
	require.Equal(t, []string{"Bocholt", "Köln"}, s.Selected())
	require.False(t, s.HasChanges())

	s.Remove("Bocholt")
	s.Add("Bocholt")
	require.False(t, s.HasChanges())

	s.Add("Moers")
	s.MarkSaved()
	require.False(t, s.HasChanges())
	require.Equal(t, s.Selected(), s.Saved())

	s.Clear()
	require.False(t, s.LoadedFor("2"))
}

func TestCitySelectionClearKeepsLockUsable(t *testing.T) {
	s := console.NewCitySelection()
	s.Load("2", []string{"Bocholt"}, []string{"Bocholt", "Bonn"})
	s.Add("Bonn")

	s.Clear()
	require.False(t, s.LoadedFor("2"))
	require.Empty(t, s.Selected())
	require.Empty(t, s.Saved())
	require.False(t, s.HasChanges())

	// the selection is reusable by the next courier after a sign-out
	s.Clear()
	s.Load("3", []string{"Herne"}, []string{"Herne", "Moers"})
	require.True(t, s.LoadedFor("3"))
	require.Equal(t, []string{"Moers"}, s.Filtered(""))
}

func TestSaveCourierRejectsWeakPassword(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.False(t, f.console.SaveCourier(ctx, console.CourierForm{Username: "courier3", Password: "secret"}))
	require.False(t, f.console.SaveCourier(ctx, console.CourierForm{ID: "2", Username: "courier1", Password: "lettersonly"}))
	require.Len(t, f.couriers.Couriers(ctx), 2)

	notes := f.console.Notifications().Drain()
	require.Len(t, notes, 2)
	for _, n := range notes {
		require.Equal(t, "Weak password", n.Title)
		require.True(t, n.Destructive)
	}

	// a rejected password change leaves the login alone
	view := f.console.CouriersPage(ctx, console.Query{})
	require.Equal(t, []string{"courier1", "courier2"}, cellTexts(view.Table, 1))
}

func TestChangeCitiesAppliesSelection(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	view := f.console.CitiesPage(ctx, courier1, console.Query{Search: "b"})
	require.Equal(t, []string{"Bocholt", "Köln"}, view.Selected)
	require.Equal(t, []string{"Bonn", "Bad Honnef", "Rheinbach"}, view.Available)
	require.False(t, view.HasChanges)

	require.True(t, f.console.ChangeCities(ctx, courier1, console.CityAdd, "Bonn"))
	require.True(t, f.console.ChangeCities(ctx, courier1, console.CityRemove, "Köln"))
	require.True(t, f.console.CitiesPage(ctx, courier1, console.Query{}).HasChanges)
	require.Equal(t, []string{"Bocholt", "Köln"}, f.couriers.CourierCities(ctx, "2"))

	require.True(t, f.console.ChangeCities(ctx, courier1, console.CityApply, ""))
	require.Equal(t, []string{"Bocholt", "Bonn"}, f.couriers.CourierCities(ctx, "2"))
	require.False(t, f.console.CitiesPage(ctx, courier1, console.Query{}).HasChanges)
	require.False(t, f.console.ChangeCities(ctx, courier1, console.CityAction("shuffle"), ""))
}

func TestChangeCitiesApplyFailureKeepsSelection(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	ghost := session.Claims{Subject: "99", Username: "ghost"}

	require.True(t, f.console.ChangeCities(ctx, ghost, console.CityAdd, "Bonn"))
	require.False(t, f.console.ChangeCities(ctx, ghost, console.CityApply, ""))
	require.True(t, f.console.Cities().HasChanges())
	require.Equal(t, []string{"Bonn"}, f.console.Cities().Selected())

	notes := f.console.Notifications().Drain()
	require.True(t, notes[len(notes)-1].Destructive)
}
