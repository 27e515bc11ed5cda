package crud

import "strings"

// Tone is the colour family a status badge or progress bar renders with.
type Tone string

// Tones.
const (
	ToneSuccess     Tone = "success"
	ToneMuted       Tone = "muted"
	ToneWarning     Tone = "warning"
	ToneInfo        Tone = "info"
	ToneDestructive Tone = "destructive"
)

// Badge is the rendered form of a record status.
type Badge struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Tone   Tone   `json:"tone"`
}

// NewBadge derives the label and tone of a status value.
func NewBadge(status string) Badge {
	return Badge{Status: status, Label: capitalize(status), Tone: statusTone(status)}
}

// WithLabel overrides the display label.
func (b Badge) WithLabel(label string) Badge {
	b.Label = label
	return b
}

func statusTone(status string) Tone {
	switch status {
	case "active", "completed":
		return ToneSuccess
	case "pending", "warning":
		return ToneWarning
	case "in-progress":
		return ToneInfo
	default:
		return ToneMuted
	}
}

// LevelTone grades a 0-100 percentage: >=90 success, >=75 warning.
func LevelTone(pct int) Tone {
	switch {
	case pct >= 90:
		return ToneSuccess
	case pct >= 75:
		return ToneWarning
	default:
		return ToneDestructive
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Point is one labelled value of a chart series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is a titled set of points a page exposes for charting.
type Series struct {
	Title  string  `json:"title"`
	Points []Point `json:"points"`
}
