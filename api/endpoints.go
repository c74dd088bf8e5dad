package api

import "net/url"

// Auth endpoints
const (
	PathLogin  = "/login"
	PathLogout = "/auth/logout"
	PathMe     = "/auth/me"
)

// Catalog endpoints
const (
	PathCategories    = "/admin/categories"
	PathCategory      = "/admin/category"
	PathSubcategories = "/admin/subcategories"
	PathSubcategory   = "/admin/subcategory"
	PathProducts      = "/admin/products"
	PathProduct       = "/admin/product"
)

// Courier and reference endpoints
const (
	PathCouriers        = "/couriers"
	PathReferenceCities = "/references/cities"
)

func CategoryPath(id string) string {
	return PathCategory + "/" + url.PathEscape(id)
}

func SubcategoryPath(id string) string {
	return PathSubcategory + "/" + url.PathEscape(id)
}

func ProductPath(id string) string {
	return PathProduct + "/" + url.PathEscape(id)
}

func CourierProductsPath(courierID string) string {
	return "/products/courier/" + url.PathEscape(courierID)
}

func CourierQuantityPath(courierID string) string {
	return CourierProductsPath(courierID) + "/quantity"
}

func CourierPath(id string) string {
	return PathCouriers + "/" + url.PathEscape(id)
}

func CourierCitiesPath(id string) string {
	return CourierPath(id) + "/cities"
}

func ImagePath(id string) string {
	return "/images/" + url.PathEscape(id)
}
