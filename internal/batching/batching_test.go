package batching

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/plantdesk/internal/apperr"
	"github.com/starford/plantdesk/internal/crud"
)

var twoThirty = time.Date(2026, 3, 14, 14, 30, 0, 0, time.UTC)

func clock() time.Time { return twoThirty }

func TestStartThenComplete(t *testing.T) {
	p := New([]Batch{{ID: "B-1", Product: "Rye Loaf", Status: StatusPending, StartTime: NotStarted}}, WithClock(clock))

	ok, err := p.Start("B-1")
	if err != nil || !ok {
		t.Fatalf("start = %v, %v", ok, err)
	}
	b, _ := p.Store().Get("B-1")
	if b.Status != StatusInProgress || b.Progress != StartProgress || b.StartTime != "02:30 PM" {
		t.Errorf("after start = %+v", b)
	}

	ok, err = p.Complete("B-1")
	if err != nil || !ok {
		t.Fatalf("complete = %v, %v", ok, err)
	}
	b, _ = p.Store().Get("B-1")
	if b.Status != StatusCompleted || b.Progress != DoneProgress || b.StartTime != "02:30 PM" {
		t.Errorf("after complete = %+v", b)
	}
}

func TestIllegalTransitions(t *testing.T) {
	tests := []struct {
		name string
		id   string
		op   func(*Page, string) (bool, error)
	}{
		{"complete pending", "B-2403", (*Page).Complete},
		{"start in-progress", "B-2402", (*Page).Start},
		{"start completed", "B-2401", (*Page).Start},
		{"complete completed", "B-2401", (*Page).Complete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(Seed(), WithClock(clock))
			before, _ := p.Store().Get(tt.id)

			ok, err := tt.op(p, tt.id)
			if ok || !errors.Is(err, apperr.ErrInvalidTransition) {
				t.Fatalf("got %v, %v; want false, ErrInvalidTransition", ok, err)
			}
			after, _ := p.Store().Get(tt.id)
			if diff := cmp.Diff(before, after); diff != "" {
				t.Errorf("batch changed (-before +after):\n%s", diff)
			}
		})
	}
}

func TestTransitionMissingBatch(t *testing.T) {
	p := New(Seed())
	ok, err := p.Start("B-9999")
	if ok || err != nil {
		t.Errorf("start missing = %v, %v; want false, nil", ok, err)
	}
}

func TestCreateBatch(t *testing.T) {
	p := New(Seed())
	p.OpenAdd()
	if d := p.Form().Draft; d.Line != "Line A" {
		t.Errorf("blank draft line = %q, want Line A", d.Line)
	}
	_ = p.SetField("product", "Rye Loaf")
	_ = p.SetField("quantity", "800 loaves")
	_ = p.SetField("line", "Line B")

	id, err := p.Save()
	if err != nil {
		t.Fatal(err)
	}
	if id != "B-2413" {
		t.Errorf("id = %q, want B-2413", id)
	}
	b, _ := p.Store().Get(id)
	want := Batch{ID: id, Product: "Rye Loaf", Quantity: "800 loaves", Line: "Line B", Status: StatusPending, StartTime: NotStarted}
	if diff := cmp.Diff(want, b); diff != "" {
		t.Errorf("created (-want +got):\n%s", diff)
	}
}

func TestBatchIDsNeverCollideAfterDelete(t *testing.T) {
	p := New(Seed())
	p.OpenAdd()
	first, _ := p.Save()
	p.Remove("B-2401")
	p.OpenAdd()
	second, err := p.Save()
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if first == second {
		t.Errorf("ids collide: %s", first)
	}
}

func TestEditKeepsLifecycle(t *testing.T) {
	p := New(Seed())
	p.OpenEdit("B-2402")
	_ = p.SetField("operator", "Ana P.")
	_, _ = p.Save()

	b, _ := p.Store().Get("B-2402")
	if b.Status != StatusInProgress || b.Progress != 65 || b.StartTime != "08:30 AM" || b.Operator != "Ana P." {
		t.Errorf("edited = %+v", b)
	}
}

func TestStatsIgnoreQuery(t *testing.T) {
	p := New(Seed())
	p.SetQuery(crud.Query{Filter: string(StatusPending)})

	v := p.View().(View)
	want := Stats{Total: 6, Active: 2, Completed: 2, Pending: 2}
	if diff := cmp.Diff(want, v.Stats); diff != "" {
		t.Errorf("stats (-want +got):\n%s", diff)
	}
	if len(v.Rows) != 2 {
		t.Errorf("rows = %d, want 2 pending", len(v.Rows))
	}
}

func TestRowActions(t *testing.T) {
	p := New(Seed())
	v := p.View().(View)
	got := map[string][]string{}
	for _, r := range v.Rows {
		got[r.ID] = r.Actions
	}
	want := map[string][]string{
		"B-2401": {}, "B-2402": {"complete"}, "B-2403": {"start"},
		"B-2404": {"complete"}, "B-2405": {"start"}, "B-2406": {},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("actions (-want +got):\n%s", diff)
	}
}

func TestSearchByID(t *testing.T) {
	p := New(Seed())
	p.SetQuery(crud.Query{Search: "b-2404"})
	v := p.View().(View)
	if len(v.Rows) != 1 || v.Rows[0].Product != "Vanilla Ice Cream" {
		t.Errorf("rows = %+v", v.Rows)
	}
}

func TestSeries(t *testing.T) {
	p := New(Seed())
	p.SetQuery(crud.Query{Filter: string(StatusInProgress)})
	want := crud.Series{
		Title:  "Batch progress (%)",
		Points: []crud.Point{{Label: "B-2402", Value: 65}, {Label: "B-2404", Value: 38}},
	}
	if diff := cmp.Diff(want, p.Series()); diff != "" {
		t.Errorf("series (-want +got):\n%s", diff)
	}
}
