package recipes

// Seed returns the sample recipes every fresh page starts from.
func Seed() []Recipe {
	return []Recipe{
		{
			ID:       "R-101",
			Name:     "Classic Wheat Bread",
			Product:  "Wheat Bread Loaf",
			Category: "Bakery",
			Yield:    "200 loaves",
			PrepTime: "4h 30m",
			Status:   StatusActive,
			Ingredients: []Ingredient{
				{Name: "Wheat Flour", Quantity: "50", Unit: "kg"},
				{Name: "Water", Quantity: "30", Unit: "L"},
				{Name: "Yeast", Quantity: "1.5", Unit: "kg"},
				{Name: "Salt", Quantity: "1", Unit: "kg"},
				{Name: "Sugar", Quantity: "2", Unit: "kg"},
			},
			Steps: []string{"Mix dry ingredients", "Add water gradually", "Knead for 15 minutes", "Proof for 2 hours", "Shape into loaves", "Bake at 200°C for 35 minutes"},
		},
		{
			ID:       "R-115",
			Name:     "Chocolate Chip Cookie",
			Product:  "Chocolate Chip Cookies",
			Category: "Bakery",
			Yield:    "500 cookies",
			PrepTime: "2h 15m",
			Status:   StatusActive,
			Ingredients: []Ingredient{
				{Name: "All-Purpose Flour", Quantity: "25", Unit: "kg"},
				{Name: "Butter", Quantity: "15", Unit: "kg"},
				{Name: "Sugar", Quantity: "12", Unit: "kg"},
				{Name: "Chocolate Chips", Quantity: "10", Unit: "kg"},
				{Name: "Eggs", Quantity: "200", Unit: "pcs"},
				{Name: "Vanilla Extract", Quantity: "0.5", Unit: "L"},
			},
			Steps: []string{"Cream butter and sugar", "Add eggs and vanilla", "Mix in flour", "Fold in chocolate chips", "Scoop onto trays", "Bake at 180°C for 12 minutes"},
		},
		{
			ID:       "R-203",
			Name:     "Traditional Tomato Sauce",
			Product:  "Tomato Pasta Sauce",
			Category: "Sauces",
			Yield:    "600 jars",
			PrepTime: "3h",
			Status:   StatusActive,
			Ingredients: []Ingredient{
				{Name: "Crushed Tomatoes", Quantity: "100", Unit: "kg"},
				{Name: "Olive Oil", Quantity: "5", Unit: "L"},
				{Name: "Garlic", Quantity: "3", Unit: "kg"},
				{Name: "Basil", Quantity: "2", Unit: "kg"},
				{Name: "Salt", Quantity: "1.5", Unit: "kg"},
			},
			Steps: []string{"Sauté garlic in olive oil", "Add crushed tomatoes", "Simmer for 2 hours", "Add basil and seasoning", "Blend to desired consistency", "Fill and seal jars"},
		},
	}
}
