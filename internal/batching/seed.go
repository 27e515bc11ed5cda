package batching

// Seed returns the sample batches every fresh page starts from.
func Seed() []Batch {
	return []Batch{
		{ID: "B-2401", Product: "Wheat Bread Loaf", Recipe: "R-101", Quantity: "2,400 units", Line: "Line A", Status: StatusCompleted, StartTime: "06:00 AM", Progress: 100, Operator: "John D."},
		{ID: "B-2402", Product: "Chocolate Chip Cookies", Recipe: "R-115", Quantity: "5,000 units", Line: "Line B", Status: StatusInProgress, StartTime: "08:30 AM", Progress: 65, Operator: "Sarah M."},
		{ID: "B-2403", Product: "Tomato Pasta Sauce", Recipe: "R-203", Quantity: "1,800 jars", Line: "Line C", Status: StatusPending, StartTime: NotStarted, Progress: 0, Operator: "Mike R."},
		{ID: "B-2404", Product: "Vanilla Ice Cream", Recipe: "R-322", Quantity: "3,200 units", Line: "Line A", Status: StatusInProgress, StartTime: "10:00 AM", Progress: 38, Operator: "Lisa K."},
		{ID: "B-2405", Product: "Granola Bars", Recipe: "R-408", Quantity: "10,000 units", Line: "Line D", Status: StatusPending, StartTime: NotStarted, Progress: 0, Operator: "Tom W."},
		{ID: "B-2406", Product: "Sourdough Bread", Recipe: "R-103", Quantity: "1,600 loaves", Line: "Line A", Status: StatusCompleted, StartTime: "04:00 AM", Progress: 100, Operator: "John D."},
	}
}
