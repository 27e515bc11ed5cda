// Package lines implements production line monitoring.
package lines

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/starford/plantdesk/internal/apperr"
	"github.com/starford/plantdesk/internal/crud"
)

// Route is the navigation name of the page.
const Route = "production-lines"

// Status of a production line.
type Status string

// Line statuses.
const (
	StatusActive   Status = "active"
	StatusWarning  Status = "warning"
	StatusInactive Status = "inactive"
)

// Idle is shown in place of telemetry a line does not report.
const Idle = "—"

// Filters lists the status chips in display order.
var Filters = []string{crud.All, string(StatusActive), string(StatusWarning), string(StatusInactive)}

// Line is one manufacturing line with its last known readings.
type Line struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	Status          Status `json:"status" yaml:"status"`
	CurrentProduct  string `json:"currentProduct" yaml:"currentProduct"`
	Throughput      string `json:"throughput" yaml:"throughput"`
	Temperature     string `json:"temperature" yaml:"temperature"`
	Efficiency      int    `json:"efficiency" yaml:"efficiency"`
	Uptime          string `json:"uptime" yaml:"uptime"`
	LastMaintenance string `json:"lastMaintenance" yaml:"lastMaintenance"`
	Operator        string `json:"operator" yaml:"operator"`
}

// RecordID implements crud.Record.
func (l Line) RecordID() string { return l.ID }

// Clone implements crud.Record.
func (l Line) Clone() Line { return l }

// Draft is the add/edit form of a line. Efficiency is kept as typed;
// values that do not parse as a percentage save as 0.
type Draft struct {
	Name            string `json:"name"`
	CurrentProduct  string `json:"currentProduct"`
	Throughput      string `json:"throughput"`
	Temperature     string `json:"temperature"`
	Efficiency      string `json:"efficiency"`
	Uptime          string `json:"uptime"`
	LastMaintenance string `json:"lastMaintenance"`
	Operator        string `json:"operator"`
}

// Clone implements crud.Draft.
func (d Draft) Clone() Draft { return d }

// Set replaces the field named by its JSON name.
func (d *Draft) Set(field, value string) error {
	switch field {
	case "name":
		d.Name = value
	case "currentProduct":
		d.CurrentProduct = value
	case "throughput":
		d.Throughput = value
	case "temperature":
		d.Temperature = value
	case "efficiency":
		d.Efficiency = value
	case "uptime":
		d.Uptime = value
	case "lastMaintenance":
		d.LastMaintenance = value
	case "operator":
		d.Operator = value
	default:
		return fmt.Errorf("line field %q: %w", field, apperr.ErrUnknownField)
	}
	return nil
}

func percent(s string) int {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return 0
	}
	return min(max(n, 0), 100)
}

func (d Draft) apply(l Line) Line {
	l.Name = d.Name
	l.CurrentProduct = d.CurrentProduct
	l.Throughput = d.Throughput
	l.Temperature = d.Temperature
	l.Efficiency = percent(d.Efficiency)
	l.Uptime = d.Uptime
	l.LastMaintenance = d.LastMaintenance
	l.Operator = d.Operator
	return l
}

// Page is an activated production lines page.
type Page struct {
	*crud.Page[Line, Draft]
}

var (
	_ crud.Editor  = (*Page)(nil)
	_ crud.Viewer  = (*Page)(nil)
	_ crud.Toggler = (*Page)(nil)
	_ crud.Charter = (*Page)(nil)
)

// New activates the page over a copy of seed. New lines start inactive.
func New(seed []Line) *Page {
	s := crud.Schema[Line, Draft]{
		Searchable: func(l Line) []string { return []string{l.Name, l.CurrentProduct, l.Operator} },
		Facet:      func(l Line) string { return string(l.Status) },
		BlankDraft: func() Draft { return Draft{} },
		DraftOf: func(l Line) Draft {
			return Draft{
				Name:            l.Name,
				CurrentProduct:  l.CurrentProduct,
				Throughput:      l.Throughput,
				Temperature:     l.Temperature,
				Efficiency:      strconv.Itoa(l.Efficiency),
				Uptime:          l.Uptime,
				LastMaintenance: l.LastMaintenance,
				Operator:        l.Operator,
			}
		},
		Create: func(id string, d Draft) Line {
			return d.apply(Line{ID: id, Status: StatusInactive})
		},
		Merge:    func(l Line, d Draft) Line { return d.apply(l) },
		SetField: func(d *Draft, name, value string) error { return d.Set(name, value) },
		IDs:      crud.NewSequence("", crud.NextAfter("", crud.IDs(seed), 1)),
	}
	return &Page{Page: crud.NewPage(s, seed)}
}

// Route implements the session page contract.
func (p *Page) Route() string { return Route }

// ToggleStatus takes a running line offline, or brings an inactive one up.
func (p *Page) ToggleStatus(id string) bool {
	return p.Store().Update(id, func(l *Line) {
		if l.Status == StatusInactive {
			l.Status = StatusActive
		} else {
			l.Status = StatusInactive
		}
	})
}

// Series reports the efficiency of every visible line.
func (p *Page) Series() crud.Series {
	out := crud.Series{Title: "Line efficiency (%)", Points: []crud.Point{}}
	for _, l := range p.Visible() {
		out.Points = append(out.Points, crud.Point{Label: l.Name, Value: float64(l.Efficiency)})
	}
	return out
}

// Card is a line as displayed. Telemetry is false for inactive lines, whose
// readings are not shown.
type Card struct {
	Line
	Badge          crud.Badge `json:"badge"`
	Telemetry      bool       `json:"telemetry"`
	EfficiencyTone crud.Tone  `json:"efficiencyTone"`
}

// View is the rendered page.
type View struct {
	Route    string                 `json:"route"`
	Title    string                 `json:"title"`
	Subtitle string                 `json:"subtitle"`
	Query    crud.Query             `json:"query"`
	Filters  []string               `json:"filters"`
	Running  string                 `json:"running"`
	Cards    []Card                 `json:"cards"`
	Form     *crud.FormState[Draft] `json:"form,omitempty"`
	Overlay  *Card                  `json:"overlay,omitempty"`
}

// View projects the page state.
func (p *Page) View() any {
	all := p.Store().List()
	running := 0
	for _, l := range all {
		if l.Status != StatusInactive {
			running++
		}
	}
	v := View{
		Route:    Route,
		Title:    "Production Lines",
		Subtitle: "Monitor and manage manufacturing lines",
		Query:    p.Query(),
		Filters:  Filters,
		Running:  fmt.Sprintf("%d/%d", running, len(all)),
		Cards:    []Card{},
		Form:     p.Form(),
	}
	for _, l := range p.Visible() {
		v.Cards = append(v.Cards, card(l))
	}
	if sel, ok := p.Selected(); ok {
		c := card(sel)
		v.Overlay = &c
	}
	return v
}

func card(l Line) Card {
	return Card{
		Line:           l,
		Badge:          crud.NewBadge(string(l.Status)),
		Telemetry:      l.Status != StatusInactive,
		EfficiencyTone: crud.LevelTone(l.Efficiency),
	}
}
