package dashboard

import (
	"testing"

	"github.com/starford/plantdesk/internal/crud"
)

func TestOverview(t *testing.T) {
	v := New().View().(View)
	if len(v.Stats) != 4 || len(v.RecentBatches) != 5 || len(v.Alerts) != 3 {
		t.Fatalf("overview sizes = %d/%d/%d", len(v.Stats), len(v.RecentBatches), len(v.Alerts))
	}
	if b := v.RecentBatches[1].Badge; b.Tone != crud.ToneInfo {
		t.Errorf("in-progress badge tone = %q, want info", b.Tone)
	}
}

func TestSettings(t *testing.T) {
	n := NewSettings().View().(Notice)
	if n.Message != "Configuration options coming soon." {
		t.Errorf("message = %q", n.Message)
	}
}

func TestNotFound(t *testing.T) {
	p := NewNotFound("/warehouse")
	if p.Route() != RouteNotFound {
		t.Errorf("route = %q", p.Route())
	}
	n := p.View().(Notice)
	if n.Title != "404" || n.Message != "Oops! Page not found" || n.Path != "/warehouse" {
		t.Errorf("notice = %+v", n)
	}
}
