// Package batching implements batch production tracking.
//
// A batch moves strictly forward through pending, in-progress and
// completed. Start and Complete reject any other move with
// apperr.ErrInvalidTransition and leave the batch untouched.
package batching

import (
	"fmt"
	"time"

	"github.com/starford/plantdesk/internal/apperr"
	"github.com/starford/plantdesk/internal/crud"
)

// Route is the navigation name of the page.
const Route = "batching"

// Status of a batch.
type Status string

// Batch statuses.
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

const (
	// StartProgress is the progress a batch reports right after Start.
	StartProgress = 10
	// DoneProgress is the progress of a completed batch.
	DoneProgress = 100
	// NotStarted is shown as the start time of pending batches.
	NotStarted = "—"
	// TimeLayout formats the start stamp as hour:minute.
	TimeLayout = "03:04 PM"
	// idBase is the number the first batch created on an empty page gets.
	idBase = 2407
)

// Filters lists the status chips in display order.
var Filters = []string{crud.All, string(StatusPending), string(StatusInProgress), string(StatusCompleted)}

// Lines lists the production lines a batch can be scheduled on.
var Lines = []string{"Line A", "Line B", "Line C", "Line D", "Line E"}

// Batch is one production run.
type Batch struct {
	ID        string `json:"id" yaml:"id"`
	Product   string `json:"product" yaml:"product"`
	Recipe    string `json:"recipe" yaml:"recipe"`
	Quantity  string `json:"quantity" yaml:"quantity"`
	Line      string `json:"line" yaml:"line"`
	Status    Status `json:"status" yaml:"status"`
	StartTime string `json:"startTime" yaml:"startTime"`
	Progress  int    `json:"progress" yaml:"progress"`
	Operator  string `json:"operator" yaml:"operator"`
}

// RecordID implements crud.Record.
func (b Batch) RecordID() string { return b.ID }

// Clone implements crud.Record.
func (b Batch) Clone() Batch { return b }

// Draft is the scheduling form of a batch.
type Draft struct {
	Product  string `json:"product"`
	Recipe   string `json:"recipe"`
	Quantity string `json:"quantity"`
	Line     string `json:"line"`
	Operator string `json:"operator"`
}

// Clone implements crud.Draft.
func (d Draft) Clone() Draft { return d }

// Set replaces the field named by its JSON name.
func (d *Draft) Set(field, value string) error {
	switch field {
	case "product":
		d.Product = value
	case "recipe":
		d.Recipe = value
	case "quantity":
		d.Quantity = value
	case "line":
		d.Line = value
	case "operator":
		d.Operator = value
	default:
		return fmt.Errorf("batch field %q: %w", field, apperr.ErrUnknownField)
	}
	return nil
}

// Option configures a Page.
type Option func(*Page)

// WithClock replaces the wall clock used to stamp start times.
func WithClock(now func() time.Time) Option {
	return func(p *Page) { p.now = now }
}

// Page is an activated batching page.
type Page struct {
	*crud.Page[Batch, Draft]
	now func() time.Time
}

var (
	_ crud.Editor       = (*Page)(nil)
	_ crud.Viewer       = (*Page)(nil)
	_ crud.Transitioner = (*Page)(nil)
	_ crud.Charter      = (*Page)(nil)
)

// New activates the page over a copy of seed.
func New(seed []Batch, opts ...Option) *Page {
	start := max(idBase+len(seed), crud.NextAfter("B-", crud.IDs(seed), 0))
	s := crud.Schema[Batch, Draft]{
		Searchable: func(b Batch) []string { return []string{b.Product, b.ID} },
		Facet:      func(b Batch) string { return string(b.Status) },
		BlankDraft: func() Draft { return Draft{Line: Lines[0]} },
		DraftOf: func(b Batch) Draft {
			return Draft{Product: b.Product, Recipe: b.Recipe, Quantity: b.Quantity, Line: b.Line, Operator: b.Operator}
		},
		Create: func(id string, d Draft) Batch {
			return Batch{
				ID:        id,
				Product:   d.Product,
				Recipe:    d.Recipe,
				Quantity:  d.Quantity,
				Line:      d.Line,
				Operator:  d.Operator,
				Status:    StatusPending,
				StartTime: NotStarted,
			}
		},
		Merge: func(b Batch, d Draft) Batch {
			b.Product, b.Recipe, b.Quantity, b.Line, b.Operator = d.Product, d.Recipe, d.Quantity, d.Line, d.Operator
			return b
		},
		SetField: func(d *Draft, name, value string) error { return d.Set(name, value) },
		IDs:      crud.NewSequence("B-", start),
	}
	p := &Page{Page: crud.NewPage(s, seed), now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Route implements the session page contract.
func (p *Page) Route() string { return Route }

// Start moves a pending batch to in-progress, stamping the current time.
// Absent ids report false with no error.
func (p *Page) Start(id string) (bool, error) {
	return p.transition(id, StatusPending, func(b *Batch) {
		b.Status = StatusInProgress
		b.StartTime = p.now().Format(TimeLayout)
		b.Progress = StartProgress
	})
}

// Complete moves an in-progress batch to completed.
func (p *Page) Complete(id string) (bool, error) {
	return p.transition(id, StatusInProgress, func(b *Batch) {
		b.Status = StatusCompleted
		b.Progress = DoneProgress
	})
}

func (p *Page) transition(id string, from Status, apply func(*Batch)) (bool, error) {
	b, ok := p.Store().Get(id)
	if !ok {
		return false, nil
	}
	if b.Status != from {
		return false, fmt.Errorf("batch %s is %s, want %s: %w", id, b.Status, from, apperr.ErrInvalidTransition)
	}
	return p.Store().Update(id, apply), nil
}

// Stats counts batches per status over the whole store.
type Stats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// Stats summarizes the store, ignoring the current query.
func (p *Page) Stats() Stats {
	var s Stats
	for _, b := range p.Store().List() {
		s.Total++
		switch b.Status {
		case StatusInProgress:
			s.Active++
		case StatusCompleted:
			s.Completed++
		case StatusPending:
			s.Pending++
		}
	}
	return s
}

// Actions returns the transitions offered for a batch in status s.
func Actions(s Status) []string {
	switch s {
	case StatusPending:
		return []string{"start"}
	case StatusInProgress:
		return []string{"complete"}
	default:
		return []string{}
	}
}

// Series reports the progress of every visible batch.
func (p *Page) Series() crud.Series {
	out := crud.Series{Title: "Batch progress (%)", Points: []crud.Point{}}
	for _, b := range p.Visible() {
		out.Points = append(out.Points, crud.Point{Label: b.ID, Value: float64(b.Progress)})
	}
	return out
}

// Row is a batch as listed.
type Row struct {
	Batch
	Badge   crud.Badge `json:"badge"`
	Actions []string   `json:"actions"`
}

// View is the rendered page.
type View struct {
	Route    string                 `json:"route"`
	Title    string                 `json:"title"`
	Subtitle string                 `json:"subtitle"`
	Query    crud.Query             `json:"query"`
	Filters  []string               `json:"filters"`
	Lines    []string               `json:"lines"`
	Stats    Stats                  `json:"stats"`
	Rows     []Row                  `json:"rows"`
	Form     *crud.FormState[Draft] `json:"form,omitempty"`
	Overlay  *Row                   `json:"overlay,omitempty"`
}

// View projects the page state.
func (p *Page) View() any {
	v := View{
		Route:    Route,
		Title:    "Batching",
		Subtitle: "Batch production tracking & management",
		Query:    p.Query(),
		Filters:  Filters,
		Lines:    Lines,
		Stats:    p.Stats(),
		Rows:     []Row{},
		Form:     p.Form(),
	}
	for _, b := range p.Visible() {
		v.Rows = append(v.Rows, row(b))
	}
	if sel, ok := p.Selected(); ok {
		r := row(sel)
		v.Overlay = &r
	}
	return v
}

func row(b Batch) Row {
	return Row{Batch: b, Badge: crud.NewBadge(string(b.Status)), Actions: Actions(b.Status)}
}
