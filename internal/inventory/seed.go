package inventory

// Seed returns the sample stock every fresh page starts from.
func Seed() []Item {
	return []Item{
		{ID: "1", Name: "Wheat Flour", Category: "Dry Goods", Stock: "2,400", Unit: "kg", MinLevel: "500 kg", Status: StatusActive, LastRestocked: "Feb 20"},
		{ID: "2", Name: "Sugar", Category: "Dry Goods", Stock: "1,800", Unit: "kg", MinLevel: "300 kg", Status: StatusActive, LastRestocked: "Feb 18"},
		{ID: "3", Name: "Butter", Category: "Dairy", Stock: "320", Unit: "kg", MinLevel: "200 kg", Status: StatusWarning, LastRestocked: "Feb 15"},
		{ID: "4", Name: "Chocolate Chips", Category: "Confectionery", Stock: "680", Unit: "kg", MinLevel: "150 kg", Status: StatusActive, LastRestocked: "Feb 19"},
		{ID: "5", Name: "Crushed Tomatoes", Category: "Canned Goods", Stock: "1,200", Unit: "kg", MinLevel: "400 kg", Status: StatusActive, LastRestocked: "Feb 17"},
		{ID: "6", Name: "Eggs", Category: "Dairy", Stock: "150", Unit: "pcs", MinLevel: "500 pcs", Status: StatusWarning, LastRestocked: "Feb 22"},
		{ID: "7", Name: "Olive Oil", Category: "Oils", Stock: "85", Unit: "L", MinLevel: "50 L", Status: StatusActive, LastRestocked: "Feb 14"},
		{ID: "8", Name: "Yeast", Category: "Baking", Stock: "12", Unit: "kg", MinLevel: "10 kg", Status: StatusWarning, LastRestocked: "Feb 16"},
	}
}
