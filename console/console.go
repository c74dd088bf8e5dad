// Package console holds the page controllers of the admin dashboard. Each page loads
// its records through the domain services, sorts them into a Table and handles its
// own form submissions, reporting the outcome through Notifications.
package console

import (
	"net/url"
	"strings"

	"github.com/jrsteele09/courier-admin/catalog"
	"github.com/jrsteele09/courier-admin/couriers"
	"github.com/jrsteele09/courier-admin/images"
	"github.com/jrsteele09/courier-admin/sorting"
)

// Query is the page state carried in the URL.
type Query struct {
	Sort   *sorting.Config
	Edit   string
	Search string
}

// ParseQuery reads sort, dir, edit and q.
func ParseQuery(v url.Values) Query {
	return Query{
		Sort:   sorting.ParseConfig(v.Get("sort"), v.Get("dir")),
		Edit:   strings.TrimSpace(v.Get("edit")),
		Search: strings.TrimSpace(v.Get("q")),
	}
}

// Values are the parts of the query a header sort link keeps.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	return v
}

type Services struct {
	Catalog  *catalog.Service
	Couriers *couriers.Service
	Images   *images.Service
}

type Console struct {
	catalog  *catalog.Service
	couriers *couriers.Service
	images   *images.Service
	notes    *Notifications
	cities   *CitySelection
}

func New(s Services, notes *Notifications) *Console {
	return &Console{
		catalog:  s.Catalog,
		couriers: s.Couriers,
		images:   s.Images,
		notes:    notes,
		cities:   NewCitySelection(),
	}
}

func (c *Console) Notifications() *Notifications {
	return c.notes
}

// Cities is the city selection of the signed-in courier.
func (c *Console) Cities() *CitySelection {
	return c.cities
}

// Option is one entry of a form select.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

func findByID[T any](list []T, id string, idOf func(T) string) (T, bool) {
	for _, item := range list {
		if idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}
