package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/plantdesk/internal/batching"
	"github.com/starford/plantdesk/internal/dashboard"
	"github.com/starford/plantdesk/internal/fixtures"
	"github.com/starford/plantdesk/internal/menuitems"
)

type staticSeeds struct{ set fixtures.Set }

func (s staticSeeds) Snapshot() fixtures.Set { return s.set }

func testCatalog() *Catalog {
	return NewCatalog(staticSeeds{fixtures.Defaults()}, func() time.Time {
		return time.Date(2026, 3, 14, 9, 5, 0, 0, time.UTC)
	})
}

func TestRoutes(t *testing.T) {
	var names []string
	for _, r := range testCatalog().Routes() {
		names = append(names, r.Name)
	}
	want := []string{"dashboard", "menu-items", "recipes", "batching", "production-lines", "inventory", "settings"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("routes (-want +got):\n%s", diff)
	}
}

func TestActivate(t *testing.T) {
	tests := []struct {
		name      string
		wantRoute string
		wantOK    bool
	}{
		{"", dashboard.Route, true},
		{"/", dashboard.Route, true},
		{"dashboard", dashboard.Route, true},
		{"/menu-items", menuitems.Route, true},
		{"batching", batching.Route, true},
		{"production-lines", "production-lines", true},
		{"inventory", "inventory", true},
		{"recipes", "recipes", true},
		{"settings", dashboard.RouteSettings, true},
		{"warehouse", dashboard.RouteNotFound, false},
		{"/a/b", dashboard.RouteNotFound, false},
	}
	c := testCatalog()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := c.Activate(tt.name)
			if ok != tt.wantOK || p.Route() != tt.wantRoute {
				t.Errorf("Activate(%q) = %q, %v; want %q, %v", tt.name, p.Route(), ok, tt.wantRoute, tt.wantOK)
			}
		})
	}
}

func TestActivateNotFoundPath(t *testing.T) {
	p, _ := testCatalog().Activate("/warehouse")
	if n := p.View().(dashboard.Notice); n.Path != "/warehouse" {
		t.Errorf("path = %q, want /warehouse", n.Path)
	}
}

func TestActivationsAreIndependent(t *testing.T) {
	c := testCatalog()
	a, _ := c.Activate("menu-items")
	b, _ := c.Activate("menu-items")

	a.(*menuitems.Page).Remove("1")

	if _, ok := b.(*menuitems.Page).Store().Get("1"); !ok {
		t.Error("removing from one activation changed another")
	}
	if _, ok := menuitems.New(fixtures.Defaults().MenuItems).Store().Get("1"); !ok {
		t.Error("seed lost its record")
	}
}

func TestBatchingUsesCatalogClock(t *testing.T) {
	p, _ := testCatalog().Activate("batching")
	bp := p.(*batching.Page)
	if _, err := bp.Start("B-2403"); err != nil {
		t.Fatal(err)
	}
	b, _ := bp.Store().Get("B-2403")
	if b.StartTime != "09:05 AM" {
		t.Errorf("start time = %q, want 09:05 AM", b.StartTime)
	}
}

func TestRegistryOpenGetClose(t *testing.T) {
	var mu sync.Mutex
	var opened, closed []string
	reg := NewRegistry(testCatalog(), 8, time.Hour,
		WithOnOpen(func(s *Session) {
			mu.Lock()
			opened = append(opened, s.Route)
			mu.Unlock()
		}),
		WithOnClose(func(s *Session) {
			mu.Lock()
			closed = append(closed, s.Route)
			mu.Unlock()
		}),
	)
	t.Cleanup(reg.Purge)

	s, ok := reg.Open("inventory")
	if !ok || s.ID == "" || s.Route != "inventory" {
		t.Fatalf("open = %+v, %v", s, ok)
	}
	if got, ok := reg.Get(s.ID); !ok || got != s {
		t.Errorf("get = %v, %v", got, ok)
	}
	if !reg.Close(s.ID) {
		t.Error("close reported false")
	}
	if _, ok := reg.Get(s.ID); ok {
		t.Error("closed session still reachable")
	}
	if reg.Close(s.ID) {
		t.Error("second close reported true")
	}

	mu.Lock()
	defer mu.Unlock()
	if diff := cmp.Diff([]string{"inventory"}, opened); diff != "" {
		t.Errorf("opened (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"inventory"}, closed); diff != "" {
		t.Errorf("closed (-want +got):\n%s", diff)
	}
}

func TestRegistryCloseWhileGetting(t *testing.T) {
	var mu sync.Mutex
	closes := map[string]int{}
	reg := NewRegistry(testCatalog(), 64, time.Hour, WithOnClose(func(s *Session) {
		mu.Lock()
		closes[s.ID]++
		mu.Unlock()
	}))
	t.Cleanup(reg.Purge)

	for range 200 {
		s, _ := reg.Open("batching")

		var wg sync.WaitGroup
		stop := make(chan struct{})
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					select {
					case <-stop:
						return
					default:
						reg.Get(s.ID)
					}
				}
			}()
		}
		reg.Close(s.ID)
		close(stop)
		wg.Wait()

		if _, ok := reg.Get(s.ID); ok {
			t.Fatalf("session %s reachable after close", s.ID)
		}
	}

	if n := reg.Len(); n != 0 {
		t.Errorf("len = %d, want 0", n)
	}
	reg.Purge()
	mu.Lock()
	defer mu.Unlock()
	if len(closes) != 200 {
		t.Errorf("close hook saw %d sessions, want 200", len(closes))
	}
	for id, n := range closes {
		if n != 1 {
			t.Errorf("session %s closed %d times", id, n)
		}
	}
}

func TestRegistryUnknownRoute(t *testing.T) {
	reg := NewRegistry(testCatalog(), 8, time.Hour)
	t.Cleanup(reg.Purge)

	s, ok := reg.Open("warehouse")
	if ok {
		t.Error("unknown route reported found")
	}
	if s.Route != dashboard.RouteNotFound || reg.Len() != 1 {
		t.Errorf("session = %+v, len = %d", s, reg.Len())
	}
}

func TestRegistryEvictsLeastRecentlyUsed(t *testing.T) {
	var mu sync.Mutex
	var closed []string
	reg := NewRegistry(testCatalog(), 2, time.Hour, WithOnClose(func(s *Session) {
		mu.Lock()
		closed = append(closed, s.ID)
		mu.Unlock()
	}))
	t.Cleanup(reg.Purge)

	a, _ := reg.Open("recipes")
	b, _ := reg.Open("recipes")
	reg.Get(a.ID)
	reg.Open("recipes")

	if _, ok := reg.Get(b.ID); ok {
		t.Error("least recently used session survived")
	}
	if _, ok := reg.Get(a.ID); !ok {
		t.Error("recently used session evicted")
	}
	mu.Lock()
	defer mu.Unlock()
	if diff := cmp.Diff([]string{b.ID}, closed); diff != "" {
		t.Errorf("closed (-want +got):\n%s", diff)
	}
}

func TestRegistryExpiresIdleSessions(t *testing.T) {
	reg := NewRegistry(testCatalog(), 8, 50*time.Millisecond)
	t.Cleanup(reg.Purge)

	s, _ := reg.Open("dashboard")
	time.Sleep(120 * time.Millisecond)
	if _, ok := reg.Get(s.ID); ok {
		t.Error("idle session still reachable after ttl")
	}
}

func TestSessionDo(t *testing.T) {
	reg := NewRegistry(testCatalog(), 8, time.Hour)
	t.Cleanup(reg.Purge)
	s, _ := reg.Open("settings")

	errBoom := errors.New("boom")
	if err := s.Do(func(Page) error { return errBoom }); !errors.Is(err, errBoom) {
		t.Errorf("err = %v", err)
	}

	var wg sync.WaitGroup
	counter := 0
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(func(Page) error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()
	if counter != 50 {
		t.Errorf("counter = %d, want 50", counter)
	}
}
