package inventory

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/plantdesk/internal/crud"
)

func TestStats(t *testing.T) {
	p := New(Seed())
	p.SetQuery(crud.Query{Search: "flour"})
	v := p.View().(View)

	want := Stats{Total: 8, LowStock: 3, Adequate: 5}
	if diff := cmp.Diff(want, v.Stats); diff != "" {
		t.Errorf("stats (-want +got):\n%s", diff)
	}
	if len(v.Rows) != 1 || v.Rows[0].Name != "Wheat Flour" {
		t.Errorf("rows = %+v", v.Rows)
	}
}

func TestLowStockFilter(t *testing.T) {
	p := New(Seed())
	p.SetQuery(crud.Query{Filter: string(StatusWarning)})
	v := p.View().(View)

	var names []string
	for _, r := range v.Rows {
		names = append(names, r.Name)
		if r.Badge.Label != "Low Stock" || r.Badge.Tone != crud.ToneWarning {
			t.Errorf("%s badge = %+v", r.Name, r.Badge)
		}
	}
	if diff := cmp.Diff([]string{"Butter", "Eggs", "Yeast"}, names); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}

func TestAdequateBadge(t *testing.T) {
	p := New(Seed())
	v := p.View().(View)
	if b := v.Rows[0].Badge; b.Label != "Adequate" || b.Tone != crud.ToneSuccess {
		t.Errorf("badge = %+v", b)
	}
}

func TestAddAndRemove(t *testing.T) {
	p := New(Seed())
	p.OpenAdd()
	if u := p.Form().Draft.Unit; u != "kg" {
		t.Errorf("blank unit = %q, want kg", u)
	}
	_ = p.SetField("name", "Cocoa Powder")
	_ = p.SetField("stock", "90")

	id, err := p.Save()
	if err != nil {
		t.Fatal(err)
	}
	if id != "9" {
		t.Errorf("id = %q, want 9", id)
	}
	got, _ := p.Store().Get(id)
	want := Item{ID: "9", Name: "Cocoa Powder", Stock: "90", Unit: "kg", Status: StatusActive}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("created (-want +got):\n%s", diff)
	}

	if !p.Remove(id) || p.Store().Len() != 8 {
		t.Error("remove failed")
	}
}
