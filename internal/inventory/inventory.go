// Package inventory implements the raw material stock page.
package inventory

import (
	"fmt"

	"github.com/starford/plantdesk/internal/apperr"
	"github.com/starford/plantdesk/internal/crud"
)

// Route is the navigation name of the page.
const Route = "inventory"

// Status of a stock item.
type Status string

// Stock statuses. StatusWarning marks an item at or near its minimum level.
const (
	StatusActive   Status = "active"
	StatusWarning  Status = "warning"
	StatusInactive Status = "inactive"
)

// Filters lists the status chips in display order.
var Filters = []string{crud.All, string(StatusActive), string(StatusWarning), string(StatusInactive)}

// Item is one raw material.
type Item struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Category      string `json:"category" yaml:"category"`
	Stock         string `json:"stock" yaml:"stock"`
	Unit          string `json:"unit" yaml:"unit"`
	MinLevel      string `json:"minLevel" yaml:"minLevel"`
	Status        Status `json:"status" yaml:"status"`
	LastRestocked string `json:"lastRestocked" yaml:"lastRestocked"`
}

// RecordID implements crud.Record.
func (i Item) RecordID() string { return i.ID }

// Clone implements crud.Record.
func (i Item) Clone() Item { return i }

// Draft is the add/edit form of a stock item.
type Draft struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	Stock         string `json:"stock"`
	Unit          string `json:"unit"`
	MinLevel      string `json:"minLevel"`
	LastRestocked string `json:"lastRestocked"`
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
	case "stock":
		d.Stock = value
	case "unit":
		d.Unit = value
	case "minLevel":
		d.MinLevel = value
	case "lastRestocked":
		d.LastRestocked = value
	default:
		return fmt.Errorf("inventory field %q: %w", field, apperr.ErrUnknownField)
	}
	return nil
}

func (d Draft) apply(i Item) Item {
	i.Name, i.Category, i.Stock = d.Name, d.Category, d.Stock
	i.Unit, i.MinLevel, i.LastRestocked = d.Unit, d.MinLevel, d.LastRestocked
	return i
}

// Page is an activated inventory page.
type Page struct {
	*crud.Page[Item, Draft]
}

var (
	_ crud.Editor  = (*Page)(nil)
	_ crud.Viewer  = (*Page)(nil)
	_ crud.Remover = (*Page)(nil)
)

// New activates the page over a copy of seed.
func New(seed []Item) *Page {
	s := crud.Schema[Item, Draft]{
		Searchable: func(i Item) []string { return []string{i.Name} },
		Facet:      func(i Item) string { return string(i.Status) },
		BlankDraft: func() Draft { return Draft{Unit: "kg"} },
		DraftOf: func(i Item) Draft {
			return Draft{Name: i.Name, Category: i.Category, Stock: i.Stock, Unit: i.Unit, MinLevel: i.MinLevel, LastRestocked: i.LastRestocked}
		},
		Create:   func(id string, d Draft) Item { return d.apply(Item{ID: id, Status: StatusActive}) },
		Merge:    func(i Item, d Draft) Item { return d.apply(i) },
		SetField: func(d *Draft, name, value string) error { return d.Set(name, value) },
		IDs:      crud.NewSequence("", crud.NextAfter("", crud.IDs(seed), 1)),
	}
	return &Page{Page: crud.NewPage(s, seed)}
}

// Route implements the session page contract.
func (p *Page) Route() string { return Route }

// Stats counts stock items over the whole store.
type Stats struct {
	Total    int `json:"total"`
	LowStock int `json:"lowStock"`
	Adequate int `json:"adequate"`
}

// Stats summarizes the store, ignoring the current query.
func (p *Page) Stats() Stats {
	var s Stats
	for _, i := range p.Store().List() {
		s.Total++
		if i.Status == StatusWarning {
			s.LowStock++
		}
	}
	s.Adequate = s.Total - s.LowStock
	return s
}

// Row is a stock item as listed.
type Row struct {
	Item
	Badge crud.Badge `json:"badge"`
}

// View is the rendered page.
type View struct {
	Route    string                 `json:"route"`
	Title    string                 `json:"title"`
	Subtitle string                 `json:"subtitle"`
	Query    crud.Query             `json:"query"`
	Filters  []string               `json:"filters"`
	Stats    Stats                  `json:"stats"`
	Rows     []Row                  `json:"rows"`
	Form     *crud.FormState[Draft] `json:"form,omitempty"`
	Overlay  *Row                   `json:"overlay,omitempty"`
}

// View projects the page state.
func (p *Page) View() any {
	v := View{
		Route:    Route,
		Title:    "Inventory",
		Subtitle: "Raw materials & stock levels",
		Query:    p.Query(),
		Filters:  Filters,
		Stats:    p.Stats(),
		Rows:     []Row{},
		Form:     p.Form(),
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
	b := crud.NewBadge(string(i.Status))
	if i.Status == StatusWarning {
		b = b.WithLabel("Low Stock")
	} else {
		b = b.WithLabel("Adequate")
	}
	return Row{Item: i, Badge: b}
}
