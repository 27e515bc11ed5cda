// Package testutil provides shared test helpers for setting up page sessions.
package testutil

import (
	"testing"
	"time"

	"github.com/starford/plantdesk/internal/fixtures"
	"github.com/starford/plantdesk/internal/pageservice"
	"github.com/starford/plantdesk/internal/session"
)

// Now is the fixed wall clock every helper hands to pages.
var Now = time.Date(2026, 3, 14, 14, 30, 0, 0, time.UTC)

// Clock returns Now.
func Clock() time.Time { return Now }

type defaultSeeds struct{}

func (defaultSeeds) Snapshot() fixtures.Set { return fixtures.Defaults() }

// TestCatalog creates a route catalog over the built-in sample data.
func TestCatalog(t *testing.T) *session.Catalog {
	t.Helper()
	return session.NewCatalog(defaultSeeds{}, Clock)
}

// TestRegistry creates a session registry that is purged when the test ends.
func TestRegistry(t *testing.T, opts ...session.Option) *session.Registry {
	t.Helper()
	reg := session.NewRegistry(TestCatalog(t), 64, time.Hour, opts...)
	t.Cleanup(reg.Purge)
	return reg
}

// TestService creates a page service over a fresh registry.
func TestService(t *testing.T, opts ...pageservice.Option) *pageservice.Service {
	t.Helper()
	return pageservice.NewService(TestRegistry(t), opts...)
}
