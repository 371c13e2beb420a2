package views

import (
	"sync"
	"time"

	"sweetshop-web/internal/admin"
	"sweetshop-web/internal/api"
	"sweetshop-web/internal/catalog"
	"sweetshop-web/internal/session"

	"go.uber.org/zap"
)

// Registry hands each browser session its own catalog and admin view. Views
// are deliberately not shared: two sessions (or the two views of one session)
// can display divergent data until each independently reloads. Idle entries
// are evicted on a timer.
type Registry struct {
	mu      sync.Mutex
	client  api.Client
	logger  *zap.Logger
	ttl     time.Duration
	entries map[string]*entry
	cleanup *time.Ticker
}

type entry struct {
	catalog  *catalog.View
	admin    *admin.View
	token    string
	lastSeen time.Time
}

// NewRegistry creates a new view registry
func NewRegistry(client api.Client, logger *zap.Logger, ttl time.Duration) *Registry {
	r := &Registry{
		client:  client,
		logger:  logger,
		ttl:     ttl,
		entries: make(map[string]*entry),
		cleanup: time.NewTicker(1 * time.Minute),
	}

	go r.evictIdle()

	return r
}

// CatalogFor returns the session's catalog view, creating it on first use
func (r *Registry) CatalogFor(sess *session.Session) *catalog.View {
	e := r.entryFor(sess)

	r.mu.Lock()
	defer r.mu.Unlock()
	if e.catalog == nil {
		e.catalog = catalog.NewView(r.client, sess.Token, r.logger)
	}
	return e.catalog
}

// AdminFor returns the session's admin view, creating it on first use
func (r *Registry) AdminFor(sess *session.Session) *admin.View {
	e := r.entryFor(sess)

	r.mu.Lock()
	defer r.mu.Unlock()
	if e.admin == nil {
		e.admin = admin.NewView(r.client, sess.Token, r.logger)
	}
	return e.admin
}

// Drop discards the session's views, typically on logout
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	delete(r.entries, sessionID)
	r.mu.Unlock()
}

func (r *Registry) entryFor(sess *session.Session) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, exists := r.entries[sess.ID]
	if !exists || e.token != sess.Token {
		e = &entry{token: sess.Token}
		r.entries[sess.ID] = e
	}
	e.lastSeen = time.Now()
	return e
}

func (r *Registry) evictIdle() {
	for range r.cleanup.C {
		r.mu.Lock()
		cutoff := time.Now().Add(-r.ttl)
		for id, e := range r.entries {
			if e.lastSeen.Before(cutoff) {
				delete(r.entries, id)
			}
		}
		r.mu.Unlock()
	}
}
