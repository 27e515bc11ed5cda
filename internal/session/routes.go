// Package session activates pages and keeps each activation alive for the
// client that requested it.
//
// Every activation builds its page from a fresh copy of the current
// fixtures; nothing is shared between sessions.
package session

import (
	"time"

	"github.com/starford/plantdesk/internal/batching"
	"github.com/starford/plantdesk/internal/dashboard"
	"github.com/starford/plantdesk/internal/fixtures"
	"github.com/starford/plantdesk/internal/inventory"
	"github.com/starford/plantdesk/internal/lines"
	"github.com/starford/plantdesk/internal/menuitems"
	"github.com/starford/plantdesk/internal/recipes"
)

// Page is implemented by every activated page.
type Page interface {
	Route() string
	View() any
}

// Seeds supplies the records pages are activated with.
type Seeds interface {
	Snapshot() fixtures.Set
}

// Route describes one navigation entry.
type Route struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

// Catalog is the fixed route table.
type Catalog struct {
	seeds Seeds
	now   func() time.Time
}

// NewCatalog returns the route table over seeds. now stamps batch start
// times; nil means the wall clock.
func NewCatalog(seeds Seeds, now func() time.Time) *Catalog {
	if now == nil {
		now = time.Now
	}
	return &Catalog{seeds: seeds, now: now}
}

var routes = []Route{
	{Name: dashboard.Route, Title: "Dashboard", Path: "/"},
	{Name: menuitems.Route, Title: "Menu Items", Path: "/menu-items"},
	{Name: recipes.Route, Title: "Recipes", Path: "/recipes"},
	{Name: batching.Route, Title: "Batching", Path: "/batching"},
	{Name: lines.Route, Title: "Production Lines", Path: "/production-lines"},
	{Name: inventory.Route, Title: "Inventory", Path: "/inventory"},
	{Name: dashboard.RouteSettings, Title: "Settings", Path: "/settings"},
}

// Routes returns the navigable routes in menu order. The not-found route
// is implicit.
func (c *Catalog) Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Activate builds a fresh page for name. Names may be given with or
// without a leading slash; "" and "/" select the dashboard. Unknown names
// yield the not-found page and false.
func (c *Catalog) Activate(name string) (Page, bool) {
	switch name {
	case "", "/", dashboard.Route:
		return dashboard.New(), true
	}
	if name[0] == '/' {
		name = name[1:]
	}
	set := c.seeds.Snapshot()
	switch name {
	case menuitems.Route:
		return menuitems.New(set.MenuItems), true
	case recipes.Route:
		return recipes.New(set.Recipes), true
	case batching.Route:
		return batching.New(set.Batches, batching.WithClock(c.now)), true
	case lines.Route:
		return lines.New(set.Lines), true
	case inventory.Route:
		return inventory.New(set.Inventory), true
	case dashboard.RouteSettings:
		return dashboard.NewSettings(), true
	case dashboard.Route:
		return dashboard.New(), true
	default:
		return dashboard.NewNotFound("/" + name), false
	}
}
