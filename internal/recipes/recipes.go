// Package recipes implements the recipe and formula editor page.
//
// Recipes carry two nested ordered lists, ingredients and steps. The form
// draft owns private copies of both so row edits never reach the stored
// record before save.
package recipes

import (
	"fmt"
	"slices"

	"github.com/starford/plantdesk/internal/apperr"
	"github.com/starford/plantdesk/internal/crud"
)

// Route is the navigation name of the page.
const Route = "recipes"

// Status of a recipe.
type Status string

// Recipe statuses.
const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Units offered for ingredient quantities. New rows default to the first.
var Units = []string{"kg", "g", "L", "mL", "pcs"}

// Ingredient is one row of a recipe's bill of materials.
type Ingredient struct {
	Name     string `json:"name" yaml:"name"`
	Quantity string `json:"quantity" yaml:"quantity"`
	Unit     string `json:"unit" yaml:"unit"`
}

// Recipe is a production formula.
type Recipe struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Product     string       `json:"product" yaml:"product"`
	Category    string       `json:"category" yaml:"category"`
	Yield       string       `json:"yield" yaml:"yield"`
	PrepTime    string       `json:"prepTime" yaml:"prepTime"`
	Status      Status       `json:"status" yaml:"status"`
	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients"`
	Steps       []string     `json:"steps" yaml:"steps"`
}

// RecordID implements crud.Record.
func (r Recipe) RecordID() string { return r.ID }

// Clone implements crud.Record.
func (r Recipe) Clone() Recipe {
	r.Ingredients = slices.Clone(r.Ingredients)
	r.Steps = slices.Clone(r.Steps)
	return r
}

// Draft is the add/edit form of a recipe.
type Draft struct {
	Name        string       `json:"name"`
	Product     string       `json:"product"`
	Category    string       `json:"category"`
	Yield       string       `json:"yield"`
	PrepTime    string       `json:"prepTime"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
}

// Clone implements crud.Draft.
func (d Draft) Clone() Draft {
	d.Ingredients = slices.Clone(d.Ingredients)
	d.Steps = slices.Clone(d.Steps)
	return d
}

// Set replaces the scalar field named by its JSON name.
func (d *Draft) Set(field, value string) error {
	switch field {
	case "name":
		d.Name = value
	case "product":
		d.Product = value
	case "category":
		d.Category = value
	case "yield":
		d.Yield = value
	case "prepTime":
		d.PrepTime = value
	default:
		return fmt.Errorf("recipe field %q: %w", field, apperr.ErrUnknownField)
	}
	return nil
}

func blankIngredient() Ingredient {
	return Ingredient{Unit: Units[0]}
}

func schema() crud.Schema[Recipe, Draft] {
	return crud.Schema[Recipe, Draft]{
		Searchable: func(r Recipe) []string { return []string{r.Name, r.Product} },
		Facet:      func(r Recipe) string { return r.Category },
		BlankDraft: func() Draft {
			return Draft{
				Category:    "Bakery",
				Ingredients: []Ingredient{blankIngredient()},
				Steps:       []string{""},
			}
		},
		DraftOf: func(r Recipe) Draft {
			return Draft{
				Name:        r.Name,
				Product:     r.Product,
				Category:    r.Category,
				Yield:       r.Yield,
				PrepTime:    r.PrepTime,
				Ingredients: slices.Clone(r.Ingredients),
				Steps:       slices.Clone(r.Steps),
			}
		},
		Create: func(id string, d Draft) Recipe {
			return Recipe{
				ID:          id,
				Name:        d.Name,
				Product:     d.Product,
				Category:    d.Category,
				Yield:       d.Yield,
				PrepTime:    d.PrepTime,
				Status:      StatusActive,
				Ingredients: slices.Clone(d.Ingredients),
				Steps:       slices.Clone(d.Steps),
			}
		},
		Merge: func(r Recipe, d Draft) Recipe {
			r.Name, r.Product, r.Category = d.Name, d.Product, d.Category
			r.Yield, r.PrepTime = d.Yield, d.PrepTime
			r.Ingredients = slices.Clone(d.Ingredients)
			r.Steps = slices.Clone(d.Steps)
			return r
		},
		SetField: func(d *Draft, name, value string) error { return d.Set(name, value) },
		IDs:      crud.NewTimestamp("R-"),
	}
}

// Page is an activated recipe page.
type Page struct {
	*crud.Page[Recipe, Draft]
}

var (
	_ crud.Editor    = (*Page)(nil)
	_ crud.Viewer    = (*Page)(nil)
	_ crud.RowEditor = (*Page)(nil)
)

// New activates the page over a copy of seed.
func New(seed []Recipe) *Page {
	return &Page{Page: crud.NewPage(schema(), seed)}
}

// Route implements the session page contract.
func (p *Page) Route() string { return Route }

// AddIngredientRow appends an empty ingredient to the draft.
func (p *Page) AddIngredientRow() error {
	return p.EditDraft(func(d *Draft) error {
		d.Ingredients = append(d.Ingredients, blankIngredient())
		return nil
	})
}

// RemoveIngredientRow drops the ingredient at index i. Other rows keep
// their relative order; an index out of range changes nothing.
func (p *Page) RemoveIngredientRow(i int) error {
	return p.EditDraft(func(d *Draft) error {
		if i >= 0 && i < len(d.Ingredients) {
			d.Ingredients = slices.Delete(d.Ingredients, i, i+1)
		}
		return nil
	})
}

// SetIngredientField replaces one field of the ingredient at index i.
func (p *Page) SetIngredientField(i int, name, value string) error {
	return p.EditDraft(func(d *Draft) error {
		if i < 0 || i >= len(d.Ingredients) {
			return nil
		}
		row := &d.Ingredients[i]
		switch name {
		case "name":
			row.Name = value
		case "quantity":
			row.Quantity = value
		case "unit":
			row.Unit = value
		default:
			return fmt.Errorf("ingredient field %q: %w", name, apperr.ErrUnknownField)
		}
		return nil
	})
}

// AddStepRow appends an empty step to the draft.
func (p *Page) AddStepRow() error {
	return p.EditDraft(func(d *Draft) error {
		d.Steps = append(d.Steps, "")
		return nil
	})
}

// RemoveStepRow drops the step at index i.
func (p *Page) RemoveStepRow(i int) error {
	return p.EditDraft(func(d *Draft) error {
		if i >= 0 && i < len(d.Steps) {
			d.Steps = slices.Delete(d.Steps, i, i+1)
		}
		return nil
	})
}

// SetStep replaces the text of step i.
func (p *Page) SetStep(i int, value string) error {
	return p.EditDraft(func(d *Draft) error {
		if i >= 0 && i < len(d.Steps) {
			d.Steps[i] = value
		}
		return nil
	})
}

// Card is a recipe as listed.
type Card struct {
	Recipe
	Badge           crud.Badge `json:"badge"`
	IngredientCount int        `json:"ingredientCount"`
	StepCount       int        `json:"stepCount"`
}

// View is the rendered page.
type View struct {
	Route    string                 `json:"route"`
	Title    string                 `json:"title"`
	Subtitle string                 `json:"subtitle"`
	Query    crud.Query             `json:"query"`
	Filters  []string               `json:"filters"`
	Units    []string               `json:"units"`
	Cards    []Card                 `json:"cards"`
	Form     *crud.FormState[Draft] `json:"form,omitempty"`
	Overlay  *Card                  `json:"overlay,omitempty"`
}

// View projects the page state.
func (p *Page) View() any {
	v := View{
		Route:    Route,
		Title:    "Recipes",
		Subtitle: "Production formulas & instructions",
		Query:    p.Query(),
		Filters:  p.filters(),
		Units:    slices.Clone(Units),
		Cards:    []Card{},
		Form:     p.Form(),
	}
	for _, r := range p.Visible() {
		v.Cards = append(v.Cards, card(r))
	}
	if sel, ok := p.Selected(); ok {
		c := card(sel)
		v.Overlay = &c
	}
	return v
}

// filters lists "all" followed by the categories in use, in store order.
func (p *Page) filters() []string {
	out := []string{crud.All}
	for _, r := range p.Store().List() {
		if !slices.Contains(out, r.Category) {
			out = append(out, r.Category)
		}
	}
	return out
}

func card(r Recipe) Card {
	return Card{
		Recipe:          r,
		Badge:           crud.NewBadge(string(r.Status)),
		IngredientCount: len(r.Ingredients),
		StepCount:       len(r.Steps),
	}
}
