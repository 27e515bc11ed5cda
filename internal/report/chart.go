// Package report renders page series as images.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/starford/plantdesk/internal/crud"
)

// ErrEmptySeries is returned when there is nothing to draw.
var ErrEmptySeries = errors.New("report: series has no points")

// Percent renders s as a PNG bar chart on a fixed 0-100 axis.
func Percent(w io.Writer, s crud.Series) error {
	if len(s.Points) == 0 {
		return ErrEmptySeries
	}

	bars := make([]chart.Value, 0, len(s.Points))
	for _, p := range s.Points {
		bars = append(bars, chart.Value{Label: p.Label, Value: p.Value})
	}

	graph := chart.BarChart{
		Title: s.Title,
		Background: chart.Style{
			Padding: chart.Box{
				Top: 40,
			},
		},
		Width:    max(320, 120*len(bars)),
		Height:   400,
		BarWidth: 60,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("report: render %q: %w", s.Title, err)
	}
	return nil
}
