package lines

// Seed returns the sample lines every fresh page starts from.
func Seed() []Line {
	return []Line{
		{ID: "1", Name: "Line A — Bakery", Status: StatusActive, CurrentProduct: "Vanilla Ice Cream", Throughput: "420 units/hr", Temperature: "200°C", Efficiency: 94, Uptime: "99.2%", LastMaintenance: "Feb 10", Operator: "John D."},
		{ID: "2", Name: "Line B — Bakery", Status: StatusWarning, CurrentProduct: "Chocolate Chip Cookies", Throughput: "380 units/hr", Temperature: "185°C", Efficiency: 78, Uptime: "95.8%", LastMaintenance: "Jan 28", Operator: "Sarah M."},
		{ID: "3", Name: "Line C — Sauces", Status: StatusActive, CurrentProduct: "Tomato Pasta Sauce", Throughput: "250 jars/hr", Temperature: "95°C", Efficiency: 91, Uptime: "98.5%", LastMaintenance: "Feb 15", Operator: "Mike R."},
		{ID: "4", Name: "Line D — Snacks", Status: StatusActive, CurrentProduct: "Granola Bars", Throughput: "600 units/hr", Temperature: "170°C", Efficiency: 96, Uptime: "99.7%", LastMaintenance: "Feb 18", Operator: "Tom W."},
		{ID: "5", Name: "Line E — Beverages", Status: StatusInactive, CurrentProduct: Idle, Throughput: Idle, Temperature: Idle, Efficiency: 0, Uptime: Idle, LastMaintenance: "Feb 20", Operator: Idle},
	}
}
