// Package menuitems implements the product catalog page.
package menuitems

import (
	"fmt"

	"github.com/starford/plantdesk/internal/apperr"
	"github.com/starford/plantdesk/internal/crud"
)

// Route is the navigation name of the page.
const Route = "menu-items"

// Status of a catalog item.
type Status string

// Item statuses.
const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Categories lists the filter chips in display order; the first entry is
// the sentinel.
var Categories = []string{"All", "Bakery", "Sauces", "Frozen", "Snacks", "Beverages"}

// Item is one product of the catalog.
type Item struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
	SKU      string `json:"sku" yaml:"sku"`
	UnitCost string `json:"unitCost" yaml:"unitCost"`
	Status   Status `json:"status" yaml:"status"`
	Recipe   string `json:"recipe" yaml:"recipe"`
}

// RecordID implements crud.Record.
func (i Item) RecordID() string { return i.ID }

// Clone implements crud.Record.
func (i Item) Clone() Item { return i }

// Draft is the add/edit form of an item.
type Draft struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	SKU      string `json:"sku"`
	UnitCost string `json:"unitCost"`
	Recipe   string `json:"recipe"`
}

// Clone implements crud.Draft.
func (d Draft) Clone() Draft { return d }

// Set replaces the field named by its JSON name.
func (d *Draft) Set(field, value string) error {
	switch field {
	case "name":
		d.Name = value
	case "category":
		d.Category = value
	case "sku":
		d.SKU = value
	case "unitCost":
		d.UnitCost = value
	case "recipe":
		d.Recipe = value
	default:
		return fmt.Errorf("menu item field %q: %w", field, apperr.ErrUnknownField)
	}
	return nil
}

func schema() crud.Schema[Item, Draft] {
	return crud.Schema[Item, Draft]{
		Searchable: func(i Item) []string { return []string{i.Name, i.SKU} },
		Facet:      func(i Item) string { return i.Category },
		BlankDraft: func() Draft { return Draft{Category: Categories[1]} },
		DraftOf: func(i Item) Draft {
			return Draft{Name: i.Name, Category: i.Category, SKU: i.SKU, UnitCost: i.UnitCost, Recipe: i.Recipe}
		},
		Create: func(id string, d Draft) Item {
			return Item{ID: id, Name: d.Name, Category: d.Category, SKU: d.SKU, UnitCost: d.UnitCost, Recipe: d.Recipe, Status: StatusActive}
		},
		Merge: func(i Item, d Draft) Item {
			i.Name, i.Category, i.SKU, i.UnitCost, i.Recipe = d.Name, d.Category, d.SKU, d.UnitCost, d.Recipe
			return i
		},
		SetField: func(d *Draft, name, value string) error { return d.Set(name, value) },
		IDs:      crud.NewTimestamp(""),
	}
}

// Page is an activated catalog page.
type Page struct {
	*crud.Page[Item, Draft]
}

var (
	_ crud.Editor  = (*Page)(nil)
	_ crud.Viewer  = (*Page)(nil)
	_ crud.Toggler = (*Page)(nil)
)

// New activates the page over a copy of seed.
func New(seed []Item) *Page {
	return &Page{Page: crud.NewPage(schema(), seed)}
}

// Route implements the session page contract.
func (p *Page) Route() string { return Route }

// ToggleStatus flips id between active and inactive.
func (p *Page) ToggleStatus(id string) bool {
	return p.Store().Update(id, func(i *Item) {
		if i.Status == StatusActive {
			i.Status = StatusInactive
		} else {
			i.Status = StatusActive
		}
	})
}

// Row is an item as listed, with its rendered badge.
type Row struct {
	Item
	Badge crud.Badge `json:"badge"`
}

// CategoryCount is one filter chip.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// View is the rendered page.
type View struct {
	Route      string                 `json:"route"`
	Title      string                 `json:"title"`
	Subtitle   string                 `json:"subtitle"`
	Query      crud.Query             `json:"query"`
	Categories []CategoryCount        `json:"categories"`
	Rows       []Row                  `json:"rows"`
	Form       *crud.FormState[Draft] `json:"form,omitempty"`
	Overlay    *Row                   `json:"overlay,omitempty"`
}

// View projects the page state.
func (p *Page) View() any {
	all := p.Store().List()
	v := View{
		Route:    Route,
		Title:    "Menu Items",
		Subtitle: "Manage your product catalog",
		Query:    p.Query(),
		Rows:     []Row{},
		Form:     p.Form(),
	}
	for _, c := range Categories {
		n := 0
		for _, i := range all {
			if c == Categories[0] || i.Category == c {
				n++
			}
		}
		v.Categories = append(v.Categories, CategoryCount{Name: c, Count: n})
	}
	for _, i := range p.Visible() {
		v.Rows = append(v.Rows, row(i))
	}
	if sel, ok := p.Selected(); ok {
		r := row(sel)
		v.Overlay = &r
	}
	return v
}

func row(i Item) Row {
	return Row{Item: i, Badge: crud.NewBadge(string(i.Status))}
}
