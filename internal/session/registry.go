package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Session is one activated page. Do serializes every operation on it, so
// a page behaves as if driven by a single user even when requests for the
// same session race.
type Session struct {
	ID       string
	Route    string
	OpenedAt time.Time

	mu     sync.Mutex
	page   Page
	closed atomic.Bool
}

// Do runs fn with exclusive access to the page.
func (s *Session) Do(fn func(Page) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.page)
}

// View renders the page.
func (s *Session) View() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page.View()
}

// Hook is notified about session lifecycle changes. Close hooks run while
// the registry holds its lock and must not call back into it.
type Hook func(s *Session)

// Option configures a Registry.
type Option func(*Registry)

// WithOnOpen registers a hook run after a session is created.
func WithOnOpen(h Hook) Option {
	return func(r *Registry) { r.onOpen = append(r.onOpen, h) }
}

// WithOnClose registers a hook run after a session is discarded, evicted
// or expired.
func WithOnClose(h Hook) Option {
	return func(r *Registry) { r.onClose = append(r.onClose, h) }
}

// Registry keeps at most capacity sessions, dropping the least recently
// used one when full and any session idle for longer than ttl.
type Registry struct {
	mu      sync.Mutex
	catalog *Catalog
	cache   *expirable.LRU[string, *Session]
	onOpen  []Hook
	onClose []Hook
	now     func() time.Time
}

// NewRegistry creates a registry over catalog.
func NewRegistry(catalog *Catalog, capacity int, ttl time.Duration, opts ...Option) *Registry {
	r := &Registry{catalog: catalog, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	r.cache = expirable.NewLRU[string, *Session](capacity, func(_ string, s *Session) {
		if !s.closed.CompareAndSwap(false, true) {
			return
		}
		for _, h := range r.onClose {
			h(s)
		}
	}, ttl)
	return r
}

// Catalog returns the route table sessions are activated from.
func (r *Registry) Catalog() *Catalog { return r.catalog }

// Open activates route in a new session. Unknown routes still get a
// session, holding the not-found page, and report false.
func (r *Registry) Open(route string) (*Session, bool) {
	page, ok := r.catalog.Activate(route)
	s := &Session{
		ID:       uuid.NewString(),
		Route:    page.Route(),
		OpenedAt: r.now(),
		page:     page,
	}
	r.mu.Lock()
	r.cache.Add(s.ID, s)
	r.mu.Unlock()
	for _, h := range r.onOpen {
		h(s)
	}
	return s, ok
}

// Get returns the session and marks it as recently used.
// A session that expired between the lookup and the refresh is dropped
// again rather than revived.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.cache.Get(id)
	if !ok {
		return nil, false
	}
	r.cache.Add(id, s)
	if s.closed.Load() {
		r.cache.Remove(id)
		return nil, false
	}
	return s, true
}

// Close discards the session.
func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.Remove(id)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	return r.cache.Len()
}

// Purge discards every session.
func (r *Registry) Purge() {
	r.cache.Purge()
}
