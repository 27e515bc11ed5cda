package lines

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/plantdesk/internal/crud"
)

func TestCreateLineStartsInactive(t *testing.T) {
	p := New(Seed())
	p.OpenAdd()
	_ = p.SetField("name", "Line F — Frozen")
	_ = p.SetField("efficiency", "88%")

	id, err := p.Save()
	if err != nil {
		t.Fatal(err)
	}
	if id != "6" {
		t.Errorf("id = %q, want 6", id)
	}
	l, _ := p.Store().Get(id)
	if l.Status != StatusInactive || l.Efficiency != 88 {
		t.Errorf("created = %+v", l)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"94", 94},
		{" 78% ", 78},
		{"", 0},
		{"fast", 0},
		{"140", 100},
		{"-5", 0},
	}
	for _, tt := range tests {
		if got := percent(tt.in); got != tt.want {
			t.Errorf("percent(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestEditRoundTripsEfficiency(t *testing.T) {
	p := New(Seed())
	p.OpenEdit("2")
	if got := p.Form().Draft.Efficiency; got != "78" {
		t.Errorf("draft efficiency = %q, want 78", got)
	}
	_, _ = p.Save()
	l, _ := p.Store().Get("2")
	if l.Efficiency != 78 || l.Status != StatusWarning {
		t.Errorf("saved = %+v", l)
	}
}

func TestToggleStatus(t *testing.T) {
	tests := []struct {
		id   string
		want Status
	}{
		{"1", StatusInactive},
		{"2", StatusInactive},
		{"5", StatusActive},
	}
	for _, tt := range tests {
		p := New(Seed())
		if !p.ToggleStatus(tt.id) {
			t.Fatalf("toggle %s reported false", tt.id)
		}
		if l, _ := p.Store().Get(tt.id); l.Status != tt.want {
			t.Errorf("line %s status = %q, want %q", tt.id, l.Status, tt.want)
		}
	}
}

func TestViewRunningAndTelemetry(t *testing.T) {
	p := New(Seed())
	p.SetQuery(crud.Query{Filter: string(StatusInactive)})
	v := p.View().(View)

	if v.Running != "4/5" {
		t.Errorf("running = %q, want 4/5", v.Running)
	}
	if len(v.Cards) != 1 || v.Cards[0].Telemetry {
		t.Errorf("inactive cards = %+v", v.Cards)
	}
}

func TestEfficiencyTone(t *testing.T) {
	p := New(Seed())
	v := p.View().(View)
	got := map[string]crud.Tone{}
	for _, c := range v.Cards {
		got[c.ID] = c.EfficiencyTone
	}
	want := map[string]crud.Tone{
		"1": crud.ToneSuccess, "2": crud.ToneWarning, "3": crud.ToneSuccess,
		"4": crud.ToneSuccess, "5": crud.ToneDestructive,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tones (-want +got):\n%s", diff)
	}
}

func TestSearchOperator(t *testing.T) {
	p := New(Seed())
	p.SetQuery(crud.Query{Search: "sarah"})
	v := p.View().(View)
	if len(v.Cards) != 1 || v.Cards[0].ID != "2" {
		t.Errorf("cards = %+v", v.Cards)
	}
}
