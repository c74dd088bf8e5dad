package catalog

// NewDemoRepo returns an in-memory catalog with the demo data the console starts with
// in memory mode. Courier ids match couriers.DemoCouriers.
func NewDemoRepo() *InMemoryRepo {
	stock := func(a, b int) []CourierStock {
		return []CourierStock{
			{ID: "2", Username: "courier1", Quantity: a},
			{ID: "3", Username: "courier2", Quantity: b},
		}
	}

	return &InMemoryRepo{
		categories: []*storedCategory{
			{id: "1", name: "Elektronik"},
			{id: "2", name: "Kleidung"},
		},
		subcategories: []*storedSubcategory{
			{id: "1", name: "Smartphones", categoryID: "1"},
			{id: "2", name: "Laptops", categoryID: "1"},
			{id: "3", name: "T-Shirts", categoryID: "2"},
		},
		products: []*storedProduct{
			{id: "1", name: "iPhone 15", subcategoryID: "1", price: 800, perCourier: stock(5, 10)},
			{id: "2", name: "Samsung Galaxy S24", subcategoryID: "1", price: 700, perCourier: stock(3, 10)},
			{id: "3", name: "MacBook Pro", subcategoryID: "2", price: 1500, perCourier: stock(2, 5)},
			{id: "4", name: "Basic T-Shirt", subcategoryID: "3", price: 25, perCourier: stock(8, 12)},
		},
	}
}
