package menuitems

// Seed returns the sample catalog every fresh page starts from.
func Seed() []Item {
	return []Item{
		{ID: "1", Name: "Wheat Bread Loaf", Category: "Bakery", SKU: "BK-001", UnitCost: "$2.40", Status: StatusActive, Recipe: "R-101"},
		{ID: "2", Name: "Chocolate Chip Cookies", Category: "Bakery", SKU: "BK-015", UnitCost: "$4.80", Status: StatusActive, Recipe: "R-115"},
		{ID: "3", Name: "Tomato Pasta Sauce", Category: "Sauces", SKU: "SC-003", UnitCost: "$3.20", Status: StatusActive, Recipe: "R-203"},
		{ID: "4", Name: "Vanilla Ice Cream 1L", Category: "Frozen", SKU: "FR-022", UnitCost: "$5.60", Status: StatusActive, Recipe: "R-322"},
		{ID: "5", Name: "Granola Bars (6-pack)", Category: "Snacks", SKU: "SN-008", UnitCost: "$3.90", Status: StatusActive, Recipe: "R-408"},
		{ID: "6", Name: "Organic Apple Juice 1L", Category: "Beverages", SKU: "BV-011", UnitCost: "$2.10", Status: StatusInactive, Recipe: "R-511"},
		{ID: "7", Name: "Sourdough Bread", Category: "Bakery", SKU: "BK-003", UnitCost: "$3.80", Status: StatusActive, Recipe: "R-103"},
		{ID: "8", Name: "Blueberry Muffins (4-pack)", Category: "Bakery", SKU: "BK-020", UnitCost: "$5.20", Status: StatusActive, Recipe: "R-120"},
	}
}
