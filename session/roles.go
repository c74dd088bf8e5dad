package session

// Page is a console view.
type Page string

const (
	PageCategories    Page = "categories"
	PageSubcategories Page = "subcategories"
	PageProducts      Page = "products"
	PageCouriers      Page = "couriers"
	PageCities        Page = "cities"
)

type MenuItem struct {
	Page  Page   `json:"page"`
	Label string `json:"label"`
}

var managerMenu = []MenuItem{
	{Page: PageCategories, Label: "Categories"},
	{Page: PageSubcategories, Label: "Subcategories"},
	{Page: PageProducts, Label: "Products"},
	{Page: PageCouriers, Label: "Couriers"},
}

var courierMenu = []MenuItem{
	{Page: PageProducts, Label: "Products"},
	{Page: PageCities, Label: "Cities"},
}

// Menu lists the pages reachable for the role in c.
func Menu(c Claims) []MenuItem {
	items := courierMenu
	if c.IsManager {
		items = managerMenu
	}
	out := make([]MenuItem, len(items))
	copy(out, items)
	return out
}

// Allowed reports whether the role in c may see page.
func Allowed(c Claims, page Page) bool {
	for _, item := range Menu(c) {
		if item.Page == page {
			return true
		}
	}
	return false
}

// ResolvePage picks the page to show for a request. Managers get what they asked for
// (categories when nothing was asked). Couriers are kept on products or cities.
func ResolvePage(c Claims, requested Page) Page {
	if c.IsManager {
		if requested == "" {
			return PageCategories
		}
		return requested
	}
	if requested == PageProducts || requested == PageCities {
		return requested
	}
	return PageProducts
}

func RoleLabel(c Claims) string {
	if c.IsManager {
		return "Manager"
	}
	return "Courier"
}
