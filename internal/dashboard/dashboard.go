// Package dashboard holds the read-only pages: the production overview,
// settings and the catch-all not-found page.
package dashboard

import "github.com/starford/plantdesk/internal/crud"

// Routes of the pages in this package. RouteNotFound is never requested
// directly; it is what unknown routes resolve to.
const (
	Route         = "dashboard"
	RouteSettings = "settings"
	RouteNotFound = "not-found"
)

// Trend is the direction a stat card's change points in.
type Trend string

// Trends.
const (
	TrendPositive Trend = "positive"
	TrendNeutral  Trend = "neutral"
	TrendNegative Trend = "negative"
)

// StatCard is one headline metric.
type StatCard struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  Trend  `json:"trend"`
}

// RecentBatch is a row of the recent batches table.
type RecentBatch struct {
	ID      string     `json:"id"`
	Product string     `json:"product"`
	Qty     string     `json:"qty"`
	Line    string     `json:"line"`
	Badge   crud.Badge `json:"badge"`
	Time    string     `json:"time"`
}

// Alert is a plant notification.
type Alert struct {
	Tone    crud.Tone `json:"tone"`
	Message string    `json:"message"`
	Time    string    `json:"time"`
}

// View is the rendered overview.
type View struct {
	Route         string        `json:"route"`
	Title         string        `json:"title"`
	Subtitle      string        `json:"subtitle"`
	Stats         []StatCard    `json:"stats"`
	RecentBatches []RecentBatch `json:"recentBatches"`
	Alerts        []Alert       `json:"alerts"`
}

// Page is the production overview. It has no mutable state.
type Page struct{}

// New returns the overview page.
func New() *Page { return &Page{} }

// Route implements the session page contract.
func (*Page) Route() string { return Route }

// View projects the overview.
func (*Page) View() any {
	return View{
		Route:    Route,
		Title:    "Dashboard",
		Subtitle: "Production overview & key metrics",
		Stats: []StatCard{
			{Title: "Active Products", Value: "48", Change: "+3 this week", Trend: TrendPositive},
			{Title: "Active Batches", Value: "12", Change: "2 completing soon", Trend: TrendNeutral},
			{Title: "Production Lines", Value: "4/5", Change: "1 under maintenance", Trend: TrendNegative},
			{Title: "Yield Rate", Value: "96.4%", Change: "+1.2% vs last month", Trend: TrendPositive},
		},
		RecentBatches: []RecentBatch{
			{ID: "B-2401", Product: "Wheat Bread Loaf", Qty: "2,400 units", Line: "Line A", Badge: crud.NewBadge("completed"), Time: "2h ago"},
			{ID: "B-2402", Product: "Chocolate Chip Cookies", Qty: "5,000 units", Line: "Line B", Badge: crud.NewBadge("in-progress"), Time: "Active"},
			{ID: "B-2403", Product: "Tomato Pasta Sauce", Qty: "1,800 jars", Line: "Line C", Badge: crud.NewBadge("pending"), Time: "Queued"},
			{ID: "B-2404", Product: "Vanilla Ice Cream", Qty: "3,200 units", Line: "Line A", Badge: crud.NewBadge("in-progress"), Time: "Active"},
			{ID: "B-2405", Product: "Granola Bars", Qty: "10,000 units", Line: "Line D", Badge: crud.NewBadge("pending"), Time: "Queued"},
		},
		Alerts: []Alert{
			{Tone: crud.ToneWarning, Message: "Line B temperature above threshold", Time: "12 min ago"},
			{Tone: crud.ToneInfo, Message: "Raw material shipment arriving at 3 PM", Time: "1h ago"},
			{Tone: crud.ToneSuccess, Message: "Quality check passed for Batch B-2401", Time: "2h ago"},
		},
	}
}

// Notice is the body of a page that only shows a message.
type Notice struct {
	Route    string `json:"route"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Message  string `json:"message"`
	Path     string `json:"path,omitempty"`
}

// Settings is the placeholder configuration page.
type Settings struct{}

// NewSettings returns the settings page.
func NewSettings() *Settings { return &Settings{} }

// Route implements the session page contract.
func (*Settings) Route() string { return RouteSettings }

// View projects the settings page.
func (*Settings) View() any {
	return Notice{
		Route:    RouteSettings,
		Title:    "Settings",
		Subtitle: "Application configuration",
		Message:  "Configuration options coming soon.",
	}
}

// NotFound is shown for any route that does not exist.
type NotFound struct {
	path string
}

// NewNotFound returns the not-found page for the requested path.
func NewNotFound(path string) *NotFound { return &NotFound{path: path} }

// Route implements the session page contract.
func (*NotFound) Route() string { return RouteNotFound }

// View projects the not-found page.
func (n *NotFound) View() any {
	return Notice{
		Route:   RouteNotFound,
		Title:   "404",
		Message: "Oops! Page not found",
		Path:    n.path,
	}
}
